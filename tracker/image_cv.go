//go:build withcv
// +build withcv

/*
DESCRIPTION
  image_cv.go provides background subtraction using OpenCV grayscale
  conversion, absolute difference and binary thresholding.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

import (
	"fmt"

	"gocv.io/x/gocv"
)

const haveCV = true

// subtractCV sets gray, background (if relearning) and diff from the color
// frame. OpenCV grayscale weights are rounded differently to grayscale, so
// gray may differ from it by one level.
func (t *Tracker) subtractCV() error {
	w, h := t.color.Rect.Dx(), t.color.Rect.Dy()
	color, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, t.color.Pix)
	if err != nil {
		return fmt.Errorf("could not convert color frame to mat: %w", err)
	}
	defer color.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(color, &gray, gocv.ColorRGBAToGray)
	err = toGray(t.gray.Pix, gray)
	if err != nil {
		return err
	}
	t.learn()

	bg, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8U, t.bg.Pix)
	if err != nil {
		return fmt.Errorf("could not convert background to mat: %w", err)
	}
	defer bg.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(gray, bg, &diff)

	// Threshold keeps values strictly above thresh; pixels at the level count.
	gocv.Threshold(diff, &diff, float32(t.threshold)-0.5, 255, gocv.ThresholdBinary)
	return toGray(t.diff.Pix, diff)
}

// toGray copies a single channel 8 bit mat into pix.
func toGray(pix []uint8, m gocv.Mat) error {
	b := m.ToBytes()
	if len(b) != len(pix) {
		return fmt.Errorf("unexpected mat size %d, want %d", len(b), len(pix))
	}
	copy(pix, b)
	return nil
}
