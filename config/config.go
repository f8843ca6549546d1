/*
NAME
  config.go

DESCRIPTION
  config.go provides the Config struct holding the settings for a blobribbon
  session, along with validation and update from string variable maps.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config contains the configuration settings for blobribbon.
package config

import (
	"github.com/ausocean/utils/logging"
)

// Enums to define inputs.
const (
	// Indicates no option has been set.
	NothingDefined = iota

	InputFile
	InputWebcam
)

// Blob finder implementations.
const (
	FinderContour = iota
	FinderOpenCV
)

// Frame dimensions used by the tracker. The tracking buffers are allocated
// once at this size; inputs of another size are resampled.
const (
	FrameWidth  = 320
	FrameHeight = 240
)

// Config provides parameters relevant to a blobribbon session. A new config
// must be passed to the constructors. Default values for these fields are
// defined in variables.go.
type Config struct {
	// BlobFinder selects the blob extraction implementation. Valid values
	// are FinderContour (pure Go) and FinderOpenCV (requires the withcv
	// build tag, otherwise FinderContour is used).
	BlobFinder uint8

	CameraID int // Index of the video capture device for webcam input.

	DepthStep float64 // Distance ribbon points recede per frame.
	FileFPS   uint    // Rate at which frames from a file source are produced. 0 means every update.
	FrameRate uint    // Target update rate of the run loop.
	Height    uint    // Requested capture height.

	// Input defines the frame source.
	//
	// Valid values are defined by enums:
	// InputFile:
	//		Play back an MJPEG file located at InputPath.
	// InputWebcam:
	//		Capture from the camera identified by CameraID.
	Input uint8

	// InputPath defines the input file location for File input. This must be
	// defined if File input is to be used.
	InputPath string

	// Logger holds an implementation of the Logger interface.
	// This must be set for anything to work correctly.
	Logger logging.Logger

	// LogLevel is the logging verbosity level.
	// Valid values are defined by enums from the logger package: logging.Debug,
	// logging.Info, logging.Warning logging.Error, logging.Fatal.
	LogLevel int8

	Loop     bool    // If true will restart reading of input after an io.EOF.
	MaxArea  float64 // Largest blob area, in pixels, reported by the tracker.
	MaxBlobs uint    // Maximum number of blobs reported per frame.
	MinArea  float64 // Smallest blob area, in pixels, reported by the tracker.

	// SkipHoles stops the tracker reporting enclosed background regions as
	// hole blobs. Holes are reported by default.
	SkipHoles bool

	// Threshold is the initial intensity difference at or above which a pixel
	// is foreground. Adjusted at runtime within [0,255]. A zero Threshold is
	// only kept if it was given to Update; otherwise it is treated as unset.
	Threshold int

	// thresholdSet records that Threshold came from Update.
	thresholdSet bool

	// UseCamera starts the ribbon view through the orbiting perspective camera
	// rather than flat.
	UseCamera bool

	Width        uint // Requested capture width.
	WindowHeight uint // Height of the display window.
	WindowWidth  uint // Width of the display window.
}

// Validate checks for any errors in the config fields and defaults settings
// if particular parameters have not been defined.
func (c *Config) Validate() error {
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}
	return nil
}

// Update takes a map of configuration variable names and their corresponding
// values, parses the string values and converting into correct type, and then
// sets the config struct fields as appropriate.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}

func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}
