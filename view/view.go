/*
DESCRIPTION
  view.go provides the Switch between flat and camera views and the orbiting
  perspective camera.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package view provides the view mode and camera used to show the ribbon.
package view

import (
	"math"

	"github.com/ausocean/blobribbon/ribbon"
	"gonum.org/v1/gonum/spatial/r3"
)

// Camera defaults. Scene units are window pixels.
const (
	defaultFovy     = 60 // Degrees.
	defaultDistance = 600
)

// Switch selects between the flat view, where pointer motion draws the
// ribbon, and the camera view, where pointer motion orbits the camera.
type Switch struct {
	useCamera bool
}

func (s *Switch) UseCamera() bool { return s.useCamera }
func (s *Switch) Set(v bool)      { s.useCamera = v }

// Toggle flips the mode and returns the new value.
func (s *Switch) Toggle() bool {
	s.useCamera = !s.useCamera
	return s.useCamera
}

// OrbitAngle maps a pointer x position across a window of the given width to
// an orbit angle in degrees, 0 at the left edge and 360 at the right.
func OrbitAngle(x, width float64) float64 {
	return ribbon.Map(x, 0, width, 0, 360, false)
}

// Camera is a perspective camera pose.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
	Fovy     float64 // Degrees.
}

// NewCamera returns a camera at the origin with +Y up.
func NewCamera() Camera {
	return Camera{Up: r3.Vec{Y: 1}, Fovy: defaultFovy}
}

// Orbit places the camera at first rotated angle degrees about the vertical
// axis through centroid, looking at centroid. If first is the centroid the
// camera starts from a point in front of it along +Z instead, so that
// Position never equals Target.
func (c *Camera) Orbit(centroid, first r3.Vec, angle float64) {
	rel := r3.Sub(first, centroid)
	if rel == (r3.Vec{}) {
		rel = r3.Vec{Z: defaultDistance}
	}
	rel = r3.Rotate(rel, angle*math.Pi/180, r3.Vec{Y: 1})
	c.Position = r3.Add(centroid, rel)
	c.Target = centroid
}

// FitDepth returns v scaled about the camera position so that no point is
// further than far from it. The scaled points look the same from the camera.
// v is returned unchanged if it already fits.
func (c *Camera) FitDepth(v []r3.Vec, far float64) []r3.Vec {
	var max float64
	for _, p := range v {
		max = math.Max(max, r3.Norm(r3.Sub(p, c.Position)))
	}
	if max <= far {
		return v
	}
	s := far / max
	fit := make([]r3.Vec, len(v))
	for i, p := range v {
		fit[i] = r3.Add(c.Position, r3.Scale(s, r3.Sub(p, c.Position)))
	}
	return fit
}
