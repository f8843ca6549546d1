//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  Replaces the OpenCV webcam when building without OpenCV. The device can be
  configured but will not start.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package webcam provides an implementation of FrameSource for webcams.
package webcam

import (
	"errors"
	"image"

	"github.com/ausocean/blobribbon/config"
	"github.com/ausocean/blobribbon/device"
	"github.com/ausocean/utils/logging"
)

// ErrNoOpenCV is returned by Start when built without the withcv tag.
var ErrNoOpenCV = errors.New("webcam: built without OpenCV support, rebuild with -tags withcv")

// Webcam is a stand-in for the OpenCV webcam that cannot be started.
type Webcam struct {
	log logging.Logger
	cfg config.Config
}

// New returns a new Webcam.
func New(l logging.Logger) *Webcam { return &Webcam{log: l} }

// Name returns the name of the device.
func (w *Webcam) Name() string { return "Webcam" }

// Set validates the relevant fields of c in the same way as the OpenCV webcam.
func (w *Webcam) Set(c config.Config) error {
	var errs device.MultiError
	if c.CameraID < 0 {
		errs = append(errs, errBadCameraID)
		c.CameraID = 0
	}
	if c.Width == 0 {
		errs = append(errs, errBadWidth)
		c.Width = defaultWidth
	}
	if c.Height == 0 {
		errs = append(errs, errBadHeight)
		c.Height = defaultHeight
	}
	w.cfg = c
	if len(errs) != 0 {
		return errs
	}
	return nil
}

// Start always fails with ErrNoOpenCV.
func (w *Webcam) Start() error {
	w.log.Error(pkg + "cannot start webcam without OpenCV")
	return ErrNoOpenCV
}

func (w *Webcam) Stop() error        { return nil }
func (w *Webcam) IsRunning() bool    { return false }
func (w *Webcam) Update() error      { return ErrNoOpenCV }
func (w *Webcam) IsFrameNew() bool   { return false }
func (w *Webcam) Frame() image.Image { return nil }
