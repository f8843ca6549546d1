//go:build withcv
// +build withcv

/*
DESCRIPTION
  webcam.go provides an implementation of FrameSource for webcams using an
  OpenCV video capture.

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
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ausocean/blobribbon/config"
	"github.com/ausocean/blobribbon/device"
	"github.com/ausocean/utils/logging"
)

// Webcam is an implementation of the FrameSource interface for a webcam.
// Webcam uses a gocv VideoCapture to grab frames from the device.
type Webcam struct {
	log       logging.Logger
	cfg       config.Config
	cap       *gocv.VideoCapture
	mat       gocv.Mat
	frame     image.Image
	isNew     bool
	isRunning bool
}

// New returns a new Webcam.
func New(l logging.Logger) *Webcam {
	return &Webcam{log: l}
}

// Name returns the name of the device.
func (w *Webcam) Name() string {
	return "Webcam"
}

// Set will validate the relevant fields of the given Config struct and assign
// the struct to the Webcam's Config. If fields are not valid, an error is
// added to the MultiError and a default value is used.
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

// Start opens the capture device and requests the configured frame size.
func (w *Webcam) Start() error {
	vc, err := gocv.OpenVideoCapture(w.cfg.CameraID)
	if err != nil {
		return fmt.Errorf("could not open video capture device %d: %w", w.cfg.CameraID, err)
	}
	vc.Set(gocv.VideoCaptureFrameWidth, float64(w.cfg.Width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(w.cfg.Height))

	w.cap = vc
	w.mat = gocv.NewMat()
	w.isRunning = true
	w.log.Info(pkg+"webcam started", "id", w.cfg.CameraID, "width", w.cfg.Width, "height", w.cfg.Height)
	return nil
}

// Stop closes the capture device.
func (w *Webcam) Stop() error {
	if !w.isRunning {
		return nil
	}
	w.isRunning = false
	w.isNew = false
	err := w.mat.Close()
	if err != nil {
		w.log.Warning(pkg+"could not close frame matrix", "error", err.Error())
	}
	err = w.cap.Close()
	if err != nil {
		return fmt.Errorf("could not close video capture: %w", err)
	}
	return nil
}

// Update grabs the next frame from the device. A failed or empty read is not
// an error; no new frame is reported.
func (w *Webcam) Update() error {
	w.isNew = false
	if !w.isRunning {
		return errors.New("webcam not streaming")
	}
	if ok := w.cap.Read(&w.mat); !ok || w.mat.Empty() {
		return nil
	}
	img, err := w.mat.ToImage()
	if err != nil {
		return fmt.Errorf("could not convert frame: %w", err)
	}
	w.frame = img
	w.isNew = true
	return nil
}

// IsFrameNew reports whether the last Update grabbed a new frame.
func (w *Webcam) IsFrameNew() bool { return w.isNew }

// Frame returns the most recently grabbed frame.
func (w *Webcam) Frame() image.Image { return w.frame }

// IsRunning is used to determine if the webcam is running.
func (w *Webcam) IsRunning() bool {
	return w.isRunning
}
