/*
DESCRIPTION
  app.go provides App, the blobribbon application state, driven by a host
  through the Handler callbacks.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package app composes the tracker, ribbon and view into an application that
// a host window drives one update and one draw per frame.
package app

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ausocean/blobribbon/config"
	"github.com/ausocean/blobribbon/device"
	"github.com/ausocean/blobribbon/ribbon"
	"github.com/ausocean/blobribbon/tracker"
	"github.com/ausocean/blobribbon/view"
	"github.com/ausocean/utils/logging"
)

// Used to indicate package in logging.
const pkg = "app: "

// Report shown below the tracker images.
const reportFmt = "bg subtraction and blob detection\npress ' ' to capture bg\nthreshold %d (press: +/-)\nnum blobs found %d, fps: %f"

// Key bindings.
const (
	keyRelearn       = ' '
	keyThresholdUp   = '+'
	keyThresholdDown = '-'
	keyCamera        = 'c'
)

// Layout of the tracker panels.
var (
	colorPos  = image.Pt(20, 20)
	grayPos   = image.Pt(360, 20)
	bgPos     = image.Pt(20, 280)
	diffPos   = image.Pt(360, 280)
	blobPanel = image.Rect(360, 540, 360+config.FrameWidth, 540+config.FrameHeight)
	reportPos = image.Pt(20, 600)
)

var (
	panelColor  = color.RGBA{0x33, 0x33, 0x33, 0xff}
	blobColor   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	textColor   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ribbonColor = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

var errNoSource = errors.New("no frame source")

// Handler is the set of callbacks a host invokes. Update and Draw are called
// once per frame, in that order; input callbacks are called between frames.
type Handler interface {
	Setup() error
	Update()
	Draw(c Canvas)
	KeyPressed(key rune)
	PointerMoved(x, y float64)
	Close() error
}

// Canvas is the drawing surface a host provides to Draw.
type Canvas interface {
	// Width returns the width of the window in pixels.
	Width() int

	// DrawImage draws img with its top left corner at (x, y). name identifies
	// the image between frames so that hosts can reuse GPU resources.
	DrawImage(name string, img image.Image, x, y int)

	FillRect(r image.Rectangle, c color.RGBA)

	// DrawPolyline draws the closed polygon pts translated by offset.
	DrawPolyline(pts []image.Point, offset image.Point, c color.RGBA)

	DrawText(s string, x, y int, c color.RGBA)

	// BeginCamera starts drawing in 3D through cam until EndCamera.
	BeginCamera(cam view.Camera)
	EndCamera()

	// DrawStrip draws a triangle strip. Outside a camera the X and Y of each
	// vertex are used as window coordinates.
	DrawStrip(vertices []r3.Vec, c color.RGBA)

	// FPS returns the host's measured frame rate.
	FPS() float64
}

// App holds the state of a blobribbon session.
type App struct {
	cfg     config.Config
	log     logging.Logger
	src     device.FrameSource
	finder  tracker.BlobFinder
	tracker *tracker.Tracker
	ribbon  ribbon.Builder
	view    view.Switch
	camera  view.Camera
	fps     fpsMeter
	width   float64
	pointer r3.Vec // Last pointer position, z = 0.

	// vars delivers configuration updates, drained in Update.
	vars <-chan map[string]string

	// lastErr suppresses repeated logging of the same source error.
	lastErr string
}

// New returns a new App reading frames from src and extracting blobs with f.
// c is validated before use.
func New(c config.Config, src device.FrameSource, f tracker.BlobFinder) (*App, error) {
	if src == nil {
		return nil, errNoSource
	}
	c.Logger.Debug(pkg + "validating config")
	err := c.Validate()
	if err != nil {
		return nil, fmt.Errorf("config struct is bad: %w", err)
	}
	c.Logger.SetLevel(c.LogLevel)

	a := &App{
		cfg:     c,
		log:     c.Logger,
		src:     src,
		finder:  f,
		tracker: tracker.New(c, f),
		camera:  view.NewCamera(),
		width:   float64(c.WindowWidth),
	}
	a.setCamera(c.UseCamera)

	a.log.Debug(pkg+"configuring input device", "device", src.Name())
	err = src.Set(c)
	if err != nil {
		a.log.Warning(pkg+"errors from configuring input device", "errors", err)
	}
	a.log.Info(pkg + "input device configured")
	return a, nil
}

// Config returns a copy of the current config.
func (a *App) Config() config.Config { return a.cfg }

// Tracker returns the blob tracker.
func (a *App) Tracker() *tracker.Tracker { return a.tracker }

// Ribbon returns the ribbon builder.
func (a *App) Ribbon() *ribbon.Builder { return &a.ribbon }

// Camera returns the current camera pose.
func (a *App) Camera() view.Camera { return a.camera }

// UseCamera reports whether the ribbon is shown through the camera.
func (a *App) UseCamera() bool { return a.view.UseCamera() }

// Watch sets a channel of configuration updates to be applied between
// frames.
func (a *App) Watch(vars <-chan map[string]string) { a.vars = vars }

// Setup starts the frame source.
func (a *App) Setup() error {
	a.log.Debug(pkg+"starting input", "device", a.src.Name())
	err := a.src.Start()
	if err != nil {
		return fmt.Errorf("could not start %s: %w", a.src.Name(), err)
	}
	a.log.Info(pkg+"input started", "device", a.src.Name())
	return nil
}

// Update applies any pending configuration, recedes the ribbon when drawing
// flat and processes the next frame. Source errors are logged.
func (a *App) Update() {
	select {
	case vars := <-a.vars:
		err := a.Reconfigure(vars)
		if err != nil {
			a.log.Error(pkg+"could not reconfigure", "error", err.Error())
		}
	default:
	}

	if !a.view.UseCamera() {
		a.ribbon.Advance(a.cfg.DepthStep)
	}

	_, err := a.tracker.Process(a.src)
	if err == nil {
		a.lastErr = ""
		return
	}
	if err.Error() != a.lastErr {
		a.log.Warning(pkg+"could not process frame", "error", err.Error())
		a.lastErr = err.Error()
	}
}

// Draw draws the tracker panels, the blobs, the report and the ribbon.
func (a *App) Draw(c Canvas) {
	a.width = float64(c.Width())

	t := a.tracker
	c.DrawImage("color", t.Color(), colorPos.X, colorPos.Y)
	c.DrawImage("gray", t.Gray(), grayPos.X, grayPos.Y)
	c.DrawImage("background", t.Background(), bgPos.X, bgPos.Y)
	c.DrawImage("diff", t.Diff(), diffPos.X, diffPos.Y)

	c.FillRect(blobPanel, panelColor)
	blobs := t.Blobs()
	for _, b := range blobs {
		c.DrawPolyline(b.Points, blobPanel.Min, blobColor)
	}

	c.DrawText(a.Report(len(blobs), a.fps.add(c.FPS())), reportPos.X, reportPos.Y, textColor)

	strip := a.ribbon.Mesh()
	if !a.view.UseCamera() {
		c.DrawStrip(strip.Vertices, ribbonColor)
		return
	}
	c.BeginCamera(a.camera)
	c.DrawStrip(strip.Vertices, ribbonColor)
	c.EndCamera()
}

// Report returns the status text for n blobs at the given frame rate.
func (a *App) Report(n int, fps float64) string {
	return fmt.Sprintf(reportFmt, a.tracker.Threshold(), n, fps)
}

// KeyPressed handles a typed character.
func (a *App) KeyPressed(key rune) {
	switch key {
	case keyRelearn:
		a.tracker.Relearn()
		a.log.Info(pkg + "capturing background")
	case keyThresholdUp:
		a.tracker.AdjustThreshold(1)
	case keyThresholdDown:
		a.tracker.AdjustThreshold(-1)
	case keyCamera:
		a.setCamera(!a.view.UseCamera())
		a.log.Info(pkg+"view changed", "camera", a.view.UseCamera())
	}
}

// PointerMoved adds a ribbon point when flat, or orbits the camera about the
// ribbon when viewing through the camera.
func (a *App) PointerMoved(x, y float64) {
	a.pointer = r3.Vec{X: x, Y: y}
	if !a.view.UseCamera() {
		a.ribbon.AddPoint(a.pointer)
		return
	}
	a.orbit()
}

// setCamera sets the view mode. Entering the camera view places the camera
// for the last pointer position so that it is never drawn from an unset pose.
func (a *App) setCamera(v bool) {
	a.view.Set(v)
	if v {
		a.orbit()
	}
}

// orbit moves the camera about the ribbon centroid by the angle of the last
// pointer position, starting from the oldest point or, for an empty ribbon,
// the pointer itself.
func (a *App) orbit() {
	first, ok := a.ribbon.First()
	if !ok {
		first = a.pointer
	}
	a.camera.Orbit(a.ribbon.Centroid(), first, view.OrbitAngle(a.pointer.X, a.width))
}

// Close stops the frame source and releases tracker resources.
func (a *App) Close() error {
	var errs []error
	if a.src.IsRunning() {
		a.log.Debug(pkg + "stopping input")
		err := a.src.Stop()
		if err != nil {
			errs = append(errs, fmt.Errorf("could not stop input: %w", err))
		} else {
			a.log.Info(pkg + "input stopped")
		}
	}
	err := a.tracker.Close()
	if err != nil {
		errs = append(errs, fmt.Errorf("could not close tracker: %w", err))
	}
	return errors.Join(errs...)
}
