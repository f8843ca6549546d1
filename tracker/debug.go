//go:build debug && withcv
// +build debug,withcv

/*
DESCRIPTION
  Displays debug information for the tracker.

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
	"image/color"

	"gocv.io/x/gocv"
)

// debugWindows is used for displaying debug information for the tracker.
type debugWindows struct {
	windows []*gocv.Window
}

// close frees resources used by gocv.
func (d *debugWindows) close() error {
	for _, window := range d.windows {
		err := window.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// newWindows creates debugging windows for the tracker.
func newWindows(name string) debugWindows {
	return debugWindows{
		windows: []*gocv.Window{
			gocv.NewWindow(name + ": Video"),
			gocv.NewWindow(name + ": Difference"),
		},
	}
}

// show displays the frame with blob bounds and the thresholded difference.
func (d *debugWindows) show(img image.Image, diff *image.Gray, blobs []Blob, text ...string) {
	drkRed := color.RGBA{191, 0, 0, 0}
	lhtRed := color.RGBA{191, 31, 31, 0}

	im, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return
	}
	defer im.Close()
	imD, err := gocv.ImageGrayToMatGray(diff)
	if err != nil {
		return
	}
	defer imD.Close()

	for _, b := range blobs {
		gocv.Rectangle(&im, b.Bounds, lhtRed, 1)
	}
	for i, str := range text {
		gocv.PutText(&im, str, image.Pt(16, 16*(i+1)), gocv.FontHersheyPlain, 1.0, drkRed, 1)
	}

	d.windows[0].IMShow(im)
	d.windows[1].IMShow(imD)
	d.windows[0].WaitKey(1)
}
