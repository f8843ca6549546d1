/*
DESCRIPTION
  host.go provides the raylib window that drives an app.Handler, polling
  input between frames and drawing through a raylib backed app.Canvas.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package host runs an app.Handler in a raylib window.
package host

import (
	"fmt"
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ausocean/blobribbon/app"
	"github.com/ausocean/blobribbon/config"
	"github.com/ausocean/blobribbon/view"
	"github.com/ausocean/utils/logging"
)

// Used to indicate package in logging.
const pkg = "host: "

const (
	title    = "blobribbon"
	fontSize = 10

	// Scene distance kept in front of the camera, inside raylib's default
	// far clip plane of 1000.
	farClip = 900
)

// GPU resource functions, replaced in testing.
var (
	genImage      = rl.GenImageColor
	unloadImage   = rl.UnloadImage
	loadTexture   = rl.LoadTextureFromImage
	unloadTexture = rl.UnloadTexture
)

var background = color.RGBA{100, 100, 100, 0xff}

// Host owns the window and the GPU resources used to draw.
type Host struct {
	log      logging.Logger
	width    int32
	height   int32
	fps      int32
	textures map[string]*texture
	inCamera bool
	camera   view.Camera
}

// texture is a GPU texture with a staging buffer for its pixels.
type texture struct {
	tex  rl.Texture2D
	size image.Point
	pix  []color.RGBA
}

// New returns a new Host with window size and frame rate taken from c.
func New(c config.Config) *Host {
	return &Host{
		log:      c.Logger,
		width:    int32(c.WindowWidth),
		height:   int32(c.WindowHeight),
		fps:      int32(c.FrameRate),
		textures: make(map[string]*texture),
	}
}

// Run opens the window and drives h until the window is closed. Run must be
// called from the main goroutine.
func (h *Host) Run(a app.Handler) error {
	rl.InitWindow(h.width, h.height, title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(h.fps)

	err := a.Setup()
	if err != nil {
		return fmt.Errorf("could not set up: %w", err)
	}
	defer func() {
		err := a.Close()
		if err != nil {
			h.log.Error(pkg+"could not close", "error", err.Error())
		}
		h.unload()
	}()

	h.log.Info(pkg+"running", "width", h.width, "height", h.height, "fps", h.fps)
	last := rl.GetMousePosition()
	for !rl.WindowShouldClose() {
		for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
			a.KeyPressed(rune(ch))
		}
		p := rl.GetMousePosition()
		if p != last {
			a.PointerMoved(float64(p.X), float64(p.Y))
			last = p
		}

		a.Update()

		rl.BeginDrawing()
		rl.ClearBackground(background)
		a.Draw(h)
		rl.EndDrawing()
	}
	h.log.Info(pkg + "window closed")
	return nil
}

func (h *Host) unload() {
	for name, t := range h.textures {
		unloadTexture(t.tex)
		delete(h.textures, name)
	}
}

func (h *Host) Width() int { return rl.GetScreenWidth() }

func (h *Host) FPS() float64 { return float64(rl.GetFPS()) }

// DrawImage uploads img to the texture named name, creating or resizing it
// as needed, and draws it at (x, y).
func (h *Host) DrawImage(name string, img image.Image, x, y int) {
	size := img.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return
	}
	t := h.textureFor(name, size)
	toRGBA(t.pix, img)
	rl.UpdateTexture(t.tex, t.pix)
	rl.DrawTexture(t.tex, int32(x), int32(y), rl.White)
}

// textureFor returns the texture named name, creating it, or replacing it if
// its size is not size.
func (h *Host) textureFor(name string, size image.Point) *texture {
	t, ok := h.textures[name]
	if ok && t.size == size {
		return t
	}
	if ok {
		unloadTexture(t.tex)
	}
	img := genImage(size.X, size.Y, rl.Black)
	t = &texture{
		tex:  loadTexture(img),
		size: size,
		pix:  make([]color.RGBA, size.X*size.Y),
	}
	unloadImage(img)
	h.textures[name] = t
	return t
}

func (h *Host) FillRect(r image.Rectangle, c color.RGBA) {
	rl.DrawRectangle(int32(r.Min.X), int32(r.Min.Y), int32(r.Dx()), int32(r.Dy()), c)
}

// DrawPolyline draws the closed polygon pts offset by o.
func (h *Host) DrawPolyline(pts []image.Point, o image.Point, c color.RGBA) {
	switch len(pts) {
	case 0:
		return
	case 1:
		p := pts[0].Add(o)
		rl.DrawPixel(int32(p.X), int32(p.Y), c)
		return
	}
	line := make([]rl.Vector2, 0, len(pts)+1)
	for _, p := range pts {
		line = append(line, rl.NewVector2(float32(p.X+o.X), float32(p.Y+o.Y)))
	}
	line = append(line, line[0])
	rl.DrawLineStrip(line, c)
}

func (h *Host) DrawText(s string, x, y int, c color.RGBA) {
	rl.DrawText(s, int32(x), int32(y), fontSize, c)
}

func (h *Host) BeginCamera(cam view.Camera) {
	rl.BeginMode3D(rl.Camera3D{
		Position:   vec3(cam.Position),
		Target:     vec3(cam.Target),
		Up:         vec3(cam.Up),
		Fovy:       float32(cam.Fovy),
		Projection: rl.CameraPerspective,
	})
	h.inCamera = true
	h.camera = cam
}

func (h *Host) EndCamera() {
	rl.EndMode3D()
	h.inCamera = false
}

// DrawStrip draws a triangle strip in 3D inside a camera, or using X and Y
// as window coordinates otherwise. In 3D the strip is drawn scaled toward the
// camera so that it lies within the far clip plane. Strip winding
// alternates, so culling is disabled while drawing.
func (h *Host) DrawStrip(v []r3.Vec, c color.RGBA) {
	if len(v) < 3 {
		return
	}
	rl.DisableBackfaceCulling()
	defer rl.EnableBackfaceCulling()
	if h.inCamera {
		pts := make([]rl.Vector3, len(v))
		for i, p := range h.camera.FitDepth(v, farClip) {
			pts[i] = vec3(p)
		}
		rl.DrawTriangleStrip3D(pts, c)
		return
	}
	pts := make([]rl.Vector2, len(v))
	for i, p := range v {
		pts[i] = rl.NewVector2(float32(p.X), float32(p.Y))
	}
	rl.DrawTriangleStrip(pts, c)
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// Ensure Host satisfies app.Canvas.
var _ app.Canvas = (*Host)(nil)
