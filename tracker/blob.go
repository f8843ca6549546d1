/*
DESCRIPTION
  blob.go provides the Blob type produced by blob finders and helpers shared
  by the finder implementations.

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
	"math"
	"sort"
)

// Blob is a connected foreground region, or an enclosed hole within one.
type Blob struct {
	Area     float64         // Area in pixels.
	Length   float64         // Perimeter of the boundary polygon.
	Bounds   image.Rectangle // Bounding box, Max exclusive.
	Centroid image.Point
	Hole     bool
	Points   []image.Point // Closed boundary polygon.
}

// BlobFinder extracts blobs from a binary image in which non-zero pixels are
// foreground. Blobs with minArea <= Area <= maxArea are returned, largest
// first, at most n of them. Holes are reported only if holes is true.
type BlobFinder interface {
	Find(img *image.Gray, minArea, maxArea float64, n int, holes bool) []Blob
}

// largest keeps blobs within [minArea, maxArea], sorts them by area
// descending and truncates to n. Blobs of equal area keep their order.
func largest(blobs []Blob, minArea, maxArea float64, n int) []Blob {
	kept := blobs[:0]
	for _, b := range blobs {
		if b.Area >= minArea && b.Area <= maxArea {
			kept = append(kept, b)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Area > kept[j].Area })
	if n >= 0 && len(kept) > n {
		kept = kept[:n]
	}
	return kept
}

// perimeter returns the length of the closed polygon pts.
func perimeter(pts []image.Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	var l float64
	prev := pts[len(pts)-1]
	for _, p := range pts {
		l += math.Hypot(float64(p.X-prev.X), float64(p.Y-prev.Y))
		prev = p
	}
	return l
}
