/*
DESCRIPTION
  ribbon.go provides the Builder, which accumulates pointer positions as a
  ribbon of points receding into the scene.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ribbon builds a triangle strip ribbon from a history of 3D points.
package ribbon

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultStep is the distance points recede per advance if not configured.
const DefaultStep = 4

// Builder holds an ordered, unbounded history of points and their centroid.
// The zero value is ready to use.
type Builder struct {
	points   []r3.Vec
	centroid r3.Vec
}

// AddPoint appends p to the history.
func (b *Builder) AddPoint(p r3.Vec) { b.points = append(b.points, p) }

// Advance moves every point step units along -Z and recomputes the
// centroid. The centroid of an empty history is left unchanged.
func (b *Builder) Advance(step float64) {
	if len(b.points) == 0 {
		return
	}
	var sum r3.Vec
	for i := range b.points {
		b.points[i].Z -= step
		sum = r3.Add(sum, b.points[i])
	}
	b.centroid = r3.Scale(1/float64(len(b.points)), sum)
}

// Centroid returns the centroid computed by the last Advance.
func (b *Builder) Centroid() r3.Vec { return b.centroid }

// Points returns a copy of the point history.
func (b *Builder) Points() []r3.Vec {
	p := make([]r3.Vec, len(b.points))
	copy(p, b.points)
	return p
}

// Len returns the number of points.
func (b *Builder) Len() int { return len(b.points) }

// First returns the oldest point, and false if there are none.
func (b *Builder) First() (r3.Vec, bool) {
	if len(b.points) == 0 {
		return r3.Vec{}, false
	}
	return b.points[0], true
}

// Reset clears the history and centroid.
func (b *Builder) Reset() {
	b.points = b.points[:0]
	b.centroid = r3.Vec{}
}

// Mesh returns the ribbon as a triangle strip. Each segment contributes two
// vertices at its start point, offset perpendicular to the segment in the XY
// plane by Thickness of the segment length.
func (b *Builder) Mesh() Strip {
	if len(b.points) < 2 {
		return Strip{}
	}
	zAxis := r3.Vec{Z: 1}
	verts := make([]r3.Vec, 0, 2*(len(b.points)-1))
	for i := 1; i < len(b.points); i++ {
		this, next := b.points[i-1], b.points[i]
		dir := r3.Sub(next, this)
		dist := r3.Norm(dir)

		var left, right r3.Vec
		if dist > 0 {
			u := r3.Scale(1/dist, dir)
			left = r3.Rotate(u, -math.Pi/2, zAxis)
			right = r3.Rotate(u, math.Pi/2, zAxis)
		}
		t := Thickness(dist)
		verts = append(verts, r3.Add(this, r3.Scale(t, left)), r3.Add(this, r3.Scale(t, right)))
	}
	return Strip{Vertices: verts}
}
