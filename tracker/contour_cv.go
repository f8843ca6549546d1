//go:build withcv
// +build withcv

/*
DESCRIPTION
  contour_cv.go provides CVFinder, a BlobFinder backed by OpenCV contour
  extraction.

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

	"github.com/ausocean/utils/logging"
	"gocv.io/x/gocv"
)

// CVFinder finds blobs using gocv.FindContoursWithParams with two level
// retrieval, so contours whose parent is another contour are holes. Area is
// the contour polygon area rather than a pixel count.
type CVFinder struct {
	log logging.Logger
}

// NewCVFinder returns a new CVFinder.
func NewCVFinder(l logging.Logger) BlobFinder { return &CVFinder{log: l} }

// Find implements BlobFinder.
func (f *CVFinder) Find(img *image.Gray, minArea, maxArea float64, n int, holes bool) []Blob {
	src, err := gocv.ImageGrayToMatGray(img)
	if err != nil {
		f.log.Error(pkg+"could not convert image to mat", "error", err.Error())
		return nil
	}
	defer src.Close()

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()
	contours := gocv.FindContoursWithParams(src, &hierarchy, gocv.RetrievalCComp, gocv.ChainApproxNone)
	defer contours.Close()

	var blobs []Blob
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		hole := !hierarchy.Empty() && hierarchy.GetVeciAt(0, i)[3] >= 0
		if hole && !holes {
			continue
		}
		area := gocv.ContourArea(c)
		if area < minArea || area > maxArea {
			continue
		}
		pts := c.ToPoints()
		blobs = append(blobs, Blob{
			Area:     area,
			Length:   gocv.ArcLength(c, true),
			Bounds:   gocv.BoundingRect(c),
			Centroid: mean(pts),
			Hole:     hole,
			Points:   pts,
		})
	}
	return largest(blobs, minArea, maxArea, n)
}

// mean returns the mean of pts, rounded toward zero.
func mean(pts []image.Point) image.Point {
	if len(pts) == 0 {
		return image.Point{}
	}
	var s image.Point
	for _, p := range pts {
		s = s.Add(p)
	}
	return s.Div(len(pts))
}
