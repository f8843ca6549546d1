/*
DESCRIPTION
  input.go selects and configures the frame source and blob finder, and
  applies configuration changes to a running App.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package app

import (
	"fmt"

	"github.com/ausocean/blobribbon/config"
	"github.com/ausocean/blobribbon/device"
	"github.com/ausocean/blobribbon/device/file"
	"github.com/ausocean/blobribbon/device/webcam"
	"github.com/ausocean/blobribbon/tracker"
)

// NewSource returns the frame source selected by c.Input.
func NewSource(c config.Config) (device.FrameSource, error) {
	switch c.Input {
	case config.InputFile:
		c.Logger.Debug(pkg + "using file input")
		return file.New(c.Logger), nil
	case config.InputWebcam:
		c.Logger.Debug(pkg + "using webcam input")
		return webcam.New(c.Logger), nil
	default:
		return nil, fmt.Errorf("unrecognised input type: %v", c.Input)
	}
}

// NewFinder returns the blob finder selected by c.BlobFinder.
func NewFinder(c config.Config) tracker.BlobFinder {
	if c.BlobFinder == config.FinderOpenCV {
		c.Logger.Debug(pkg + "using OpenCV blob finder")
		return tracker.NewCVFinder(c.Logger)
	}
	c.Logger.Debug(pkg + "using contour blob finder")
	return tracker.NewContourFinder()
}

// Reconfigure updates the config from vars. Threshold and view mode are only
// changed if named in vars, so runtime adjustments survive unrelated
// updates. A change of input starts a new frame source before the current
// one is stopped, and a change of blob settings restarts the tracker,
// learning a new background. If the new source cannot be started nothing
// is changed and the current source keeps running.
func (a *App) Reconfigure(vars map[string]string) error {
	a.log.Debug(pkg+"checking vars", "vars", vars)
	next := a.cfg
	next.Update(vars)
	err := next.Validate()
	if err != nil {
		return fmt.Errorf("config struct is bad: %w", err)
	}

	if sourceChanged(a.cfg, next) {
		src, err := a.startSource(next)
		if err != nil {
			return fmt.Errorf("could not change input, keeping %s: %w", a.src.Name(), err)
		}
		a.stopSource()
		a.src = src
	}

	old := a.cfg
	a.cfg = next
	a.log.SetLevel(a.cfg.LogLevel)

	if finderChanged(old, a.cfg) {
		err = a.tracker.Close()
		if err != nil {
			a.log.Warning(pkg+"could not close tracker", "error", err.Error())
		}
		threshold := a.tracker.Threshold()
		if old.BlobFinder != a.cfg.BlobFinder {
			a.finder = NewFinder(a.cfg)
		}
		a.tracker = tracker.New(a.cfg, a.finder)
		a.tracker.SetThreshold(threshold)
	}

	if _, ok := vars[config.KeyThreshold]; ok {
		a.tracker.SetThreshold(a.cfg.Threshold)
	}
	if _, ok := vars[config.KeyUseCamera]; ok {
		a.setCamera(a.cfg.UseCamera)
	}
	a.log.Info(pkg + "finished reconfig")
	return nil
}

// startSource creates, configures and starts a frame source for c. A camera
// may refuse to open while the current source holds it, in which case the
// current source is stopped for a second attempt and restarted if that also
// fails.
func (a *App) startSource(c config.Config) (device.FrameSource, error) {
	src, err := NewSource(c)
	if err != nil {
		return nil, err
	}
	err = src.Set(c)
	if err != nil {
		a.log.Warning(pkg+"errors from configuring input device", "errors", err)
	}

	err = src.Start()
	if err == nil {
		a.log.Info(pkg+"input started", "device", src.Name())
		return src, nil
	}
	if !sameCamera(a.cfg, c) || !a.src.IsRunning() {
		return nil, fmt.Errorf("could not start %s: %w", src.Name(), err)
	}

	a.log.Debug(pkg+"retrying with current input stopped", "error", err.Error())
	a.stopSource()
	err = src.Start()
	if err == nil {
		a.log.Info(pkg+"input started", "device", src.Name())
		return src, nil
	}
	rerr := a.src.Start()
	if rerr != nil {
		a.log.Error(pkg+"could not restart previous input", "error", rerr.Error())
	}
	return nil, fmt.Errorf("could not start %s: %w", src.Name(), err)
}

// stopSource stops the current source if it is running.
func (a *App) stopSource() {
	if !a.src.IsRunning() {
		return
	}
	err := a.src.Stop()
	if err != nil {
		a.log.Warning(pkg+"could not stop input", "error", err.Error())
		return
	}
	a.log.Info(pkg+"input stopped", "device", a.src.Name())
}

func sameCamera(a, b config.Config) bool {
	return a.Input == config.InputWebcam && b.Input == config.InputWebcam && a.CameraID == b.CameraID
}

func sourceChanged(a, b config.Config) bool {
	return a.Input != b.Input ||
		a.InputPath != b.InputPath ||
		a.CameraID != b.CameraID ||
		a.Loop != b.Loop ||
		a.FileFPS != b.FileFPS ||
		a.Width != b.Width ||
		a.Height != b.Height
}

func finderChanged(a, b config.Config) bool {
	return a.BlobFinder != b.BlobFinder ||
		a.MinArea != b.MinArea ||
		a.MaxArea != b.MaxArea ||
		a.MaxBlobs != b.MaxBlobs ||
		a.SkipHoles != b.SkipHoles
}

// Ensure the sources satisfy FrameSource.
var (
	_ device.FrameSource = (*file.AVFile)(nil)
	_ device.FrameSource = (*webcam.Webcam)(nil)
)
