/*
DESCRIPTION
  contour.go provides ContourFinder, a BlobFinder that labels connected
  regions of a binary image and traces the boundary of each with Moore
  neighbour tracing.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

import (
	"image"
)

// Moore neighbourhood, clockwise on screen starting west.
var moore = [8]image.Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// direction maps an offset in [-1,1]^2 to its index in moore.
var direction = [3][3]int{
	{1, 0, 7}, // dx = -1; dy = -1, 0, 1
	{2, -1, 6},
	{3, 4, 5},
}

var (
	neighbours8 = moore[:]
	neighbours4 = []image.Point{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
)

// ContourFinder is a pure Go BlobFinder. Foreground regions are 8-connected
// and holes are 4-connected background regions that do not touch the image
// border. Area is the pixel count of the region.
type ContourFinder struct {
	labels []int32
	stack  []int
}

// NewContourFinder returns a new ContourFinder.
func NewContourFinder() *ContourFinder { return &ContourFinder{} }

// region accumulates the statistics of one labelled component.
type region struct {
	start       image.Point
	n           int
	sumX, sumY  int
	bounds      image.Rectangle
	touchesEdge bool
	hole        bool
	label       int32
}

// Find implements BlobFinder.
func (f *ContourFinder) Find(img *image.Gray, minArea, maxArea float64, n int, holes bool) []Blob {
	r := img.Rect
	w, h := r.Dx(), r.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	if cap(f.labels) < w*h {
		f.labels = make([]int32, w*h)
	}
	f.labels = f.labels[:w*h]
	for i := range f.labels {
		f.labels[i] = 0
	}

	fg := func(x, y int) bool { return img.Pix[y*img.Stride+x] != 0 }
	bg := func(x, y int) bool { return img.Pix[y*img.Stride+x] == 0 }

	var regions []region
	next := int32(1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if f.labels[y*w+x] != 0 {
				continue
			}
			switch {
			case fg(x, y):
				regions = append(regions, f.fill(x, y, w, h, next, fg, neighbours8))
			case holes && bg(x, y):
				reg := f.fill(x, y, w, h, next, bg, neighbours4)
				if reg.touchesEdge {
					next++
					continue
				}
				reg.hole = true
				regions = append(regions, reg)
			default:
				continue
			}
			next++
		}
	}

	blobs := make([]Blob, 0, len(regions))
	for _, reg := range regions {
		area := float64(reg.n)
		if area < minArea || area > maxArea {
			continue
		}
		label := reg.label
		in := func(p image.Point) bool {
			return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h && f.labels[p.Y*w+p.X] == label
		}
		pts := trace(reg.start, in, 4*reg.n+8)
		for i := range pts {
			pts[i] = pts[i].Add(r.Min)
		}
		blobs = append(blobs, Blob{
			Area:     area,
			Length:   perimeter(pts),
			Bounds:   reg.bounds.Add(r.Min),
			Centroid: image.Pt((2*reg.sumX+reg.n)/(2*reg.n), (2*reg.sumY+reg.n)/(2*reg.n)).Add(r.Min),
			Hole:     reg.hole,
			Points:   pts,
		})
	}
	return largest(blobs, minArea, maxArea, n)
}

// fill labels the component containing (x, y) whose pixels satisfy in,
// connected through nbrs, and returns its statistics.
func (f *ContourFinder) fill(x, y, w, h int, label int32, in func(x, y int) bool, nbrs []image.Point) region {
	reg := region{
		start:  image.Pt(x, y),
		bounds: image.Rect(x, y, x+1, y+1),
		label:  label,
	}
	f.labels[y*w+x] = label
	f.stack = append(f.stack[:0], y*w+x)
	for len(f.stack) > 0 {
		i := f.stack[len(f.stack)-1]
		f.stack = f.stack[:len(f.stack)-1]
		px, py := i%w, i/w

		reg.n++
		reg.sumX += px
		reg.sumY += py
		reg.bounds = reg.bounds.Union(image.Rect(px, py, px+1, py+1))
		if px == 0 || py == 0 || px == w-1 || py == h-1 {
			reg.touchesEdge = true
		}

		for _, d := range nbrs {
			nx, ny := px+d.X, py+d.Y
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			j := ny*w + nx
			if f.labels[j] != 0 || !in(nx, ny) {
				continue
			}
			f.labels[j] = label
			f.stack = append(f.stack, j)
		}
	}
	return reg
}

// trace follows the outer boundary of the region containing s, clockwise on
// screen. s must be the first pixel of the region in raster order so that
// its west neighbour is outside the region. Tracing stops when the first
// move is repeated, or after limit steps.
func trace(s image.Point, in func(image.Point) bool, limit int) []image.Point {
	pts := []image.Point{s}
	c, b := s, 0
	for i := 0; i < limit; i++ {
		next, nb, ok := step(c, b, in)
		if !ok {
			return pts
		}
		if c == s && len(pts) > 1 && next == pts[1] {
			return pts[:len(pts)-1]
		}
		pts = append(pts, next)
		c, b = next, nb
	}
	return pts
}

// step searches clockwise around c, starting after the backtrack direction b,
// for the next pixel in the region. It returns that pixel and the direction
// from it back to the last pixel examined outside the region.
func step(c image.Point, b int, in func(image.Point) bool) (image.Point, int, bool) {
	for i := 1; i <= 8; i++ {
		d := (b + i) % 8
		n := c.Add(moore[d])
		if !in(n) {
			continue
		}
		prev := c.Add(moore[(d+7)%8])
		off := prev.Sub(n)
		return n, direction[off.X+1][off.Y+1], true
	}
	return c, b, false
}
