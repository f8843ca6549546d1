/*
DESCRIPTION
  variables.go contains a list of structs that provide a variable Name, type in
  a string format, a function for updating the variable in the Config struct
  from a string, and finally, a validation function to check the validity of the
  corresponding field value in the Config.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ausocean/utils/logging"
)

// Config map Keys.
const (
	KeyBlobFinder   = "BlobFinder"
	KeyCameraID     = "CameraID"
	KeyDepthStep    = "DepthStep"
	KeyFileFPS      = "FileFPS"
	KeyFrameRate    = "FrameRate"
	KeyHeight       = "Height"
	KeyInput        = "Input"
	KeyInputPath    = "InputPath"
	KeyLogging      = "logging"
	KeyLoop         = "Loop"
	KeyMaxArea      = "MaxArea"
	KeyMaxBlobs     = "MaxBlobs"
	KeyMinArea      = "MinArea"
	KeySkipHoles    = "SkipHoles"
	KeyThreshold    = "Threshold"
	KeyUseCamera    = "UseCamera"
	KeyWidth        = "Width"
	KeyWindowHeight = "WindowHeight"
	KeyWindowWidth  = "WindowWidth"
)

// Config map parameter types.
const (
	typeString = "string"
	typeInt    = "int"
	typeUint   = "uint"
	typeBool   = "bool"
	typeFloat  = "float"
)

// Default variable values.
const (
	defaultInput      = InputWebcam
	defaultBlobFinder = FinderContour
	defaultVerbosity  = logging.Info
	defaultFrameRate  = 60
	defaultDepthStep  = 4.0

	// Tracker defaults. The maximum area is a third of a 340x240 frame.
	defaultThreshold = 100
	defaultMinArea   = 20.0
	defaultMaxArea   = (340 * 240) / 3
	defaultMaxBlobs  = 10

	defaultWindowWidth  = 1024
	defaultWindowHeight = 768
)

// Variables describes the variables that can be used for blobribbon control.
// These structs provide the name and type of variable, a function for updating
// this variable in a Config, and a function for validating the value of the variable.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name: KeyBlobFinder,
		Type: "enum:contour,opencv",
		Update: func(c *Config, v string) {
			c.BlobFinder = parseEnum(KeyBlobFinder, v, map[string]uint8{"contour": FinderContour, "opencv": FinderOpenCV}, c)
		},
		Validate: func(c *Config) {
			switch c.BlobFinder {
			case FinderContour, FinderOpenCV:
			default:
				c.LogInvalidField(KeyBlobFinder, defaultBlobFinder)
				c.BlobFinder = defaultBlobFinder
			}
		},
	},
	{
		Name:   KeyCameraID,
		Type:   typeInt,
		Update: func(c *Config, v string) { c.CameraID = parseInt(KeyCameraID, v, c) },
		Validate: func(c *Config) {
			if c.CameraID < 0 {
				c.LogInvalidField(KeyCameraID, 0)
				c.CameraID = 0
			}
		},
	},
	{
		Name:   KeyDepthStep,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.DepthStep = parseFloat(KeyDepthStep, v, c) },
		Validate: func(c *Config) {
			if c.DepthStep <= 0 {
				c.LogInvalidField(KeyDepthStep, defaultDepthStep)
				c.DepthStep = defaultDepthStep
			}
		},
	},
	{
		Name:   KeyFileFPS,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.FileFPS = parseUint(KeyFileFPS, v, c) },
	},
	{
		Name:   KeyFrameRate,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.FrameRate = parseUint(KeyFrameRate, v, c) },
		Validate: func(c *Config) {
			if c.FrameRate <= 0 || c.FrameRate > 240 {
				c.LogInvalidField(KeyFrameRate, defaultFrameRate)
				c.FrameRate = defaultFrameRate
			}
		},
	},
	{
		Name:   KeyHeight,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Height = parseUint(KeyHeight, v, c) },
		Validate: func(c *Config) {
			if c.Height == 0 {
				c.LogInvalidField(KeyHeight, FrameHeight)
				c.Height = FrameHeight
			}
		},
	},
	{
		Name: KeyInput,
		Type: "enum:file,webcam",
		Update: func(c *Config, v string) {
			c.Input = parseEnum(KeyInput, v, map[string]uint8{"file": InputFile, "webcam": InputWebcam}, c)
		},
		Validate: func(c *Config) {
			switch c.Input {
			case InputFile, InputWebcam:
			default:
				c.LogInvalidField(KeyInput, defaultInput)
				c.Input = defaultInput
			}
		},
	},
	{
		Name:   KeyInputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.InputPath = v },
		Validate: func(c *Config) {
			if c.Input == InputFile && c.InputPath == "" {
				c.Logger.Warning("file input selected without " + KeyInputPath)
			}
		},
	},
	{
		Name: KeyLogging,
		Type: "enum:Debug,Info,Warning,Error,Fatal",
		Update: func(c *Config, v string) {
			switch v {
			case "Debug":
				c.LogLevel = logging.Debug
			case "Info":
				c.LogLevel = logging.Info
			case "Warning":
				c.LogLevel = logging.Warning
			case "Error":
				c.LogLevel = logging.Error
			case "Fatal":
				c.LogLevel = logging.Fatal
			default:
				c.Logger.Warning("invalid logging param", "value", v)
			}
		},
		Validate: func(c *Config) {
			switch c.LogLevel {
			case logging.Debug, logging.Info, logging.Warning, logging.Error, logging.Fatal:
			default:
				c.LogInvalidField("LogLevel", defaultVerbosity)
				c.LogLevel = defaultVerbosity
			}
		},
	},
	{
		Name:   KeyLoop,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.Loop = parseBool(KeyLoop, v, c) },
	},
	{
		Name:   KeyMaxArea,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.MaxArea = parseFloat(KeyMaxArea, v, c) },
		Validate: func(c *Config) {
			if c.MaxArea <= 0 {
				c.LogInvalidField(KeyMaxArea, defaultMaxArea)
				c.MaxArea = defaultMaxArea
			}
		},
	},
	{
		Name:   KeyMaxBlobs,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.MaxBlobs = parseUint(KeyMaxBlobs, v, c) },
		Validate: func(c *Config) {
			if c.MaxBlobs == 0 {
				c.LogInvalidField(KeyMaxBlobs, defaultMaxBlobs)
				c.MaxBlobs = defaultMaxBlobs
			}
		},
	},
	{
		Name:   KeyMinArea,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.MinArea = parseFloat(KeyMinArea, v, c) },
		Validate: func(c *Config) {
			if c.MinArea <= 0 || c.MinArea > c.MaxArea {
				c.LogInvalidField(KeyMinArea, defaultMinArea)
				c.MinArea = defaultMinArea
			}
		},
	},
	{
		Name:   KeySkipHoles,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.SkipHoles = parseBool(KeySkipHoles, v, c) },
	},
	{
		Name:   KeyThreshold,
		Type:   typeInt,
		Update: func(c *Config, v string) {
			t, err := strconv.Atoi(v)
			if err != nil {
				c.Logger.Warning(fmt.Sprintf("expected integer for param %s", KeyThreshold), "value", v)
			}
			c.Threshold, c.thresholdSet = t, err == nil
		},
		Validate: func(c *Config) {
			if c.Threshold < 0 || c.Threshold > 255 || (c.Threshold == 0 && !c.thresholdSet) {
				c.LogInvalidField(KeyThreshold, defaultThreshold)
				c.Threshold = defaultThreshold
			}
		},
	},
	{
		Name:   KeyUseCamera,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.UseCamera = parseBool(KeyUseCamera, v, c) },
	},
	{
		Name:   KeyWidth,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Width = parseUint(KeyWidth, v, c) },
		Validate: func(c *Config) {
			if c.Width == 0 {
				c.LogInvalidField(KeyWidth, FrameWidth)
				c.Width = FrameWidth
			}
		},
	},
	{
		Name:   KeyWindowHeight,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.WindowHeight = parseUint(KeyWindowHeight, v, c) },
		Validate: func(c *Config) {
			c.WindowHeight = lessThan(KeyWindowHeight, c.WindowHeight, FrameHeight, c, defaultWindowHeight)
		},
	},
	{
		Name:   KeyWindowWidth,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.WindowWidth = parseUint(KeyWindowWidth, v, c) },
		Validate: func(c *Config) {
			c.WindowWidth = lessThan(KeyWindowWidth, c.WindowWidth, FrameWidth, c, defaultWindowWidth)
		},
	},
}

func parseUint(n, v string, c *Config) uint {
	_v, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected unsigned int for param %s", n), "value", v)
	}
	return uint(_v)
}

func parseInt(n, v string, c *Config) int {
	_v, err := strconv.Atoi(v)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected integer for param %s", n), "value", v)
	}
	return _v
}

func parseFloat(n, v string, c *Config) float64 {
	_v, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected float for param %s", n), "value", v)
	}
	return _v
}

func parseBool(n, v string, c *Config) (b bool) {
	switch strings.ToLower(v) {
	case "true":
		b = true
	case "false":
		b = false
	default:
		c.Logger.Warning(fmt.Sprintf("expect bool for param %s", n), "value", v)
	}
	return
}

func parseEnum(n, v string, enums map[string]uint8, c *Config) uint8 {
	_v, ok := enums[strings.ToLower(v)]
	if !ok {
		c.Logger.Warning(fmt.Sprintf("invalid value for %s param", n), "value", v)
	}
	return _v
}

// lessThan returns def, logging the invalid field, if v is less than min.
func lessThan(n string, v, min uint, c *Config, def uint) uint {
	if v < min {
		c.LogInvalidField(n, def)
		return def
	}
	return v
}
