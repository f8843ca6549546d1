/*
DESCRIPTION
  device.go provides FrameSource, an interface that describes a configurable
  video device that can be started and stopped, and from which decoded frames
  may be pulled once per update.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package device provides an interface and implementations for video input
// devices that can be started and stopped and from which frames can be obtained.
package device

import (
	"fmt"
	"image"

	"github.com/ausocean/blobribbon/config"
)

// FrameSource describes a configurable video device from which frames can be
// pulled. A FrameSource is driven by its owner's update loop: Update is called
// once per tick, after which IsFrameNew reports whether Frame holds a frame
// that has not been seen before.
type FrameSource interface {
	// Name returns the name of the FrameSource.
	Name() string

	// Set allows for configuration of the FrameSource using a Config struct. All,
	// some or none of the fields of the Config struct may be used for configuration
	// by an implementation. An implementation should specify what fields are
	// considered.
	Set(c config.Config) error

	// Start will start the FrameSource capturing frames; after which Update
	// may be called.
	Start() error

	// Stop will stop the FrameSource from capturing. From this point Update
	// will no longer produce new frames.
	Stop() error

	// IsRunning is used to determine if the device is running.
	IsRunning() bool

	// Update pulls the next frame if one is available. Not having a new frame
	// is not an error.
	Update() error

	// IsFrameNew reports whether the last call to Update produced a new frame.
	IsFrameNew() bool

	// Frame returns the most recent frame, or nil if none has been produced.
	// The returned image is only valid until the next call to Update.
	Frame() image.Image
}

// MultiError implements the built in error interface. MultiError is used here
// to collect multiple errors during validation of configuration parameters for
// FrameSources.
type MultiError []error

func (me MultiError) Error() string {
	if len(me) == 0 {
		panic("device: invalid use of MultiError")
	}
	return fmt.Sprintf("%v", []error(me))
}
