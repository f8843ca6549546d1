/*
DESCRIPTION
  mesh.go provides the triangle strip type and the scalar mapping used to
  size the ribbon.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ribbon

import "gonum.org/v1/gonum/spatial/r3"

// Ribbon half width limits. Short segments are thick, long ones thin.
const (
	maxThickness  = 20
	minThickness  = 2
	thickDistance = 60
)

// Strip is a triangle strip: triangle k uses vertices k, k+1 and k+2.
type Strip struct {
	Vertices []r3.Vec
}

// Len returns the number of vertices.
func (s Strip) Len() int { return len(s.Vertices) }

// Triangles returns the vertex indices of each triangle in the strip.
func (s Strip) Triangles() [][3]int {
	if len(s.Vertices) < 3 {
		return nil
	}
	tris := make([][3]int, 0, len(s.Vertices)-2)
	for k := 0; k+2 < len(s.Vertices); k++ {
		tris = append(tris, [3]int{k, k + 1, k + 2})
	}
	return tris
}

// Thickness returns the ribbon half width for a segment of length d.
func Thickness(d float64) float64 {
	return Map(d, 0, thickDistance, maxThickness, minThickness, true)
}

// Map linearly maps v from [inMin, inMax] to [outMin, outMax]. If clamp is
// true the result is limited to the output range. A degenerate input range
// maps everything to outMin.
func Map(v, inMin, inMax, outMin, outMax float64, clamp bool) float64 {
	if inMin == inMax {
		return outMin
	}
	out := (v-inMin)/(inMax-inMin)*(outMax-outMin) + outMin
	if !clamp {
		return out
	}
	lo, hi := outMin, outMax
	if lo > hi {
		lo, hi = hi, lo
	}
	switch {
	case out < lo:
		return lo
	case out > hi:
		return hi
	}
	return out
}
