/*
DESCRIPTION
  app_test.go drives App through the host callbacks with a recording canvas
  and a scripted frame source.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package app

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ausocean/blobribbon/config"
	"github.com/ausocean/blobribbon/tracker"
	"github.com/ausocean/blobribbon/view"
	"github.com/ausocean/utils/logging"
)

// source produces a new copy of frame on every update.
type source struct {
	frame   image.Image
	running bool
	err     error
	started int
}

func (s *source) Name() string              { return "test" }
func (s *source) Set(c config.Config) error { return nil }
func (s *source) Start() error              { s.running = true; s.started++; return nil }
func (s *source) Stop() error               { s.running = false; return nil }
func (s *source) IsRunning() bool           { return s.running }
func (s *source) Update() error             { return s.err }
func (s *source) IsFrameNew() bool          { return s.err == nil && s.frame != nil }
func (s *source) Frame() image.Image        { return s.frame }

// canvas records draw calls.
type canvas struct {
	width    int
	images   []string
	rects    []image.Rectangle
	lines    int
	text     []string
	strips   [][]r3.Vec
	inCam    bool
	camStrip bool
	ended    bool
}

func (c *canvas) Width() int                                       { return c.width }
func (c *canvas) DrawImage(name string, img image.Image, x, y int) { c.images = append(c.images, name) }
func (c *canvas) FillRect(r image.Rectangle, col color.RGBA)       { c.rects = append(c.rects, r) }
func (c *canvas) DrawText(s string, x, y int, col color.RGBA)      { c.text = append(c.text, s) }
func (c *canvas) BeginCamera(cam view.Camera)                      { c.inCam = true }
func (c *canvas) EndCamera()                                       { c.inCam = false; c.ended = true }
func (c *canvas) FPS() float64                                     { return 60 }

func (c *canvas) DrawPolyline(pts []image.Point, o image.Point, col color.RGBA) { c.lines++ }

func (c *canvas) DrawStrip(v []r3.Vec, col color.RGBA) {
	c.strips = append(c.strips, v)
	c.camStrip = c.inCam
}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		Logger:      (*logging.TestLogger)(t),
		Input:       config.InputFile,
		InputPath:   "unused",
		WindowWidth: 1024,
	}
}

func newApp(t *testing.T, src *source) *App {
	a, err := New(testConfig(t), src, tracker.NewContourFinder())
	if err != nil {
		t.Fatalf("could not create app: %v", err)
	}
	err = a.Setup()
	if err != nil {
		t.Fatalf("could not set up app: %v", err)
	}
	return a
}

func TestNewNoSource(t *testing.T) {
	_, err := New(testConfig(t), nil, tracker.NewContourFinder())
	if !errors.Is(err, errNoSource) {
		t.Errorf("unexpected error.\nGot: %v\nWant: %v", err, errNoSource)
	}
}

func TestRibbonAndCamera(t *testing.T) {
	src := &source{}
	a := newApp(t, src)

	a.PointerMoved(0, 0)
	a.PointerMoved(10, 0)
	a.PointerMoved(10, 10)
	if n := a.Ribbon().Len(); n != 3 {
		t.Fatalf("unexpected number of points.\nGot: %d\nWant: 3", n)
	}

	c := &canvas{width: 1024}
	a.Draw(c)
	if len(c.strips) != 1 || len(c.strips[0]) != 4 {
		t.Fatalf("unexpected ribbon strip: %v", c.strips)
	}
	if c.camStrip || c.ended {
		t.Error("flat ribbon drawn through camera")
	}

	a.Update()
	for _, p := range a.Ribbon().Points() {
		if p.Z != -4 {
			t.Errorf("point did not recede: %v", p)
		}
	}

	a.KeyPressed('c')
	if !a.UseCamera() {
		t.Fatal("camera mode not enabled")
	}
	a.PointerMoved(512, 0)
	if n := a.Ribbon().Len(); n != 3 {
		t.Errorf("pointer added point in camera mode: %d", n)
	}

	approx := cmpopts.EquateApprox(0, 1e-9)
	centroid := r3.Vec{X: 20.0 / 3, Y: 10.0 / 3, Z: -4}
	want := r3.Vec{X: 40.0 / 3, Y: 0, Z: -4}
	cam := a.Camera()
	if !cmp.Equal(cam.Target, centroid, approx) {
		t.Errorf("unexpected camera target.\n%s", cmp.Diff(centroid, cam.Target, approx))
	}
	if !cmp.Equal(cam.Position, want, approx) {
		t.Errorf("unexpected camera position.\n%s", cmp.Diff(want, cam.Position, approx))
	}

	a.Update()
	if p := a.Ribbon().Points()[0]; p.Z != -4 {
		t.Errorf("ribbon receded in camera mode: %v", p)
	}

	c = &canvas{width: 1024}
	a.Draw(c)
	if !c.camStrip || !c.ended {
		t.Error("ribbon not drawn through camera")
	}
}

func TestCameraEmptyRibbon(t *testing.T) {
	a := newApp(t, &source{})
	a.KeyPressed('c')
	a.PointerMoved(0, 7)

	cam := a.Camera()
	approx := cmpopts.EquateApprox(0, 1e-9)
	if !cmp.Equal(cam.Position, r3.Vec{X: 0, Y: 7}, approx) || cam.Target != (r3.Vec{}) {
		t.Errorf("unexpected camera for empty ribbon: %+v", cam)
	}
}

func TestCameraBeforePointer(t *testing.T) {
	a := newApp(t, &source{})
	a.KeyPressed('c')

	c := &canvas{width: 1024}
	a.Draw(c)
	cam := a.Camera()
	if cam.Position == cam.Target {
		t.Errorf("camera drawn from its own target: %+v", cam)
	}
	if c.inCam || !c.ended {
		t.Error("camera pass not completed")
	}
}

func TestKeys(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	src := &source{frame: img}
	a := newApp(t, src)

	a.KeyPressed('+')
	a.KeyPressed('+')
	a.KeyPressed('-')
	if got := a.Tracker().Threshold(); got != 101 {
		t.Errorf("unexpected threshold.\nGot: %d\nWant: 101", got)
	}

	a.Update()
	for y := 10; y < 30; y++ {
		for x := 10; x < 30; x++ {
			img.SetRGBA(x, y, color.RGBA{0xff, 0xff, 0xff, 0xff})
		}
	}
	a.Update()
	if n := len(a.Tracker().Blobs()); n != 1 {
		t.Fatalf("unexpected blobs.\nGot: %d\nWant: 1", n)
	}

	c := &canvas{width: 1024}
	a.Draw(c)
	if c.lines != 1 {
		t.Errorf("unexpected number of blob outlines: %d", c.lines)
	}
	wantImages := []string{"color", "gray", "background", "diff"}
	if !cmp.Equal(c.images, wantImages) {
		t.Errorf("unexpected images.\n%s", cmp.Diff(wantImages, c.images))
	}
	if len(c.rects) != 1 || c.rects[0] != image.Rect(360, 540, 680, 780) {
		t.Errorf("unexpected blob panel: %v", c.rects)
	}
	want := "bg subtraction and blob detection\npress ' ' to capture bg\nthreshold 101 (press: +/-)\nnum blobs found 1, fps: 60.000000"
	if len(c.text) != 1 || c.text[0] != want {
		t.Errorf("unexpected report.\nGot: %q\nWant: %q", c.text, want)
	}

	a.KeyPressed(' ')
	a.Update()
	if n := len(a.Tracker().Blobs()); n != 0 {
		t.Errorf("blobs found after relearn: %d", n)
	}
}

func TestSourceErrorNotFatal(t *testing.T) {
	src := &source{err: errors.New("no camera")}
	a := newApp(t, src)
	a.Update()
	a.Update()
	if a.lastErr != "could not update test: no camera" {
		t.Errorf("unexpected last error: %q", a.lastErr)
	}
	src.err = nil
	a.Update()
	if a.lastErr != "" {
		t.Errorf("last error not cleared: %q", a.lastErr)
	}
}

func TestReconfigure(t *testing.T) {
	src := &source{}
	a := newApp(t, src)
	a.KeyPressed('+')

	err := a.Reconfigure(map[string]string{config.KeyDepthStep: "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.Tracker().Threshold(); got != 101 {
		t.Errorf("unrelated update reset threshold: %d", got)
	}
	if got := a.Config().DepthStep; got != 2 {
		t.Errorf("depth step not updated: %v", got)
	}

	err = a.Reconfigure(map[string]string{config.KeyThreshold: "50", config.KeyUseCamera: "true"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.Tracker().Threshold(); got != 50 {
		t.Errorf("threshold not updated.\nGot: %d\nWant: 50", got)
	}
	if !a.UseCamera() {
		t.Error("camera mode not updated")
	}

	err = a.Reconfigure(map[string]string{config.KeyMinArea: "30"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.Tracker().Threshold(); got != 50 {
		t.Errorf("tracker restart lost threshold: %d", got)
	}
	if src.started != 1 {
		t.Errorf("source restarted without input change: %d", src.started)
	}
}

func TestWatch(t *testing.T) {
	a := newApp(t, &source{})
	vars := make(chan map[string]string, 1)
	a.Watch(vars)

	vars <- map[string]string{config.KeyThreshold: "20"}
	a.Update()
	if got := a.Tracker().Threshold(); got != 20 {
		t.Errorf("watched update not applied.\nGot: %d\nWant: 20", got)
	}
	a.Update()
}

func TestClose(t *testing.T) {
	src := &source{}
	a := newApp(t, src)
	err := a.Close()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.running {
		t.Error("source still running after close")
	}
}

func TestReport(t *testing.T) {
	a := newApp(t, &source{})
	got := a.Report(3, 59.5)
	if !strings.HasSuffix(got, "num blobs found 3, fps: 59.500000") {
		t.Errorf("unexpected report: %q", got)
	}
}
