/*
DESCRIPTION
  tracker.go provides the Tracker, which performs background subtraction on
  frames from a FrameSource and extracts blobs from the thresholded
  difference.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package tracker provides background subtraction blob tracking of video
// frames.
package tracker

import (
	"fmt"
	"image"

	"github.com/ausocean/blobribbon/config"
	"github.com/ausocean/blobribbon/device"
	"github.com/ausocean/utils/logging"
)

// Used to indicate package in logging.
const pkg = "tracker: "

// Threshold limits.
const (
	minThreshold = 0
	maxThreshold = 255
)

// Tracker maintains a learned background and reports the blobs of each new
// frame that differ from it by at least the threshold.
type Tracker struct {
	log       logging.Logger
	finder    BlobFinder
	debugging debugWindows

	color *image.RGBA
	gray  *image.Gray
	bg    *image.Gray
	diff  *image.Gray

	threshold int
	relearn   bool
	minArea   float64
	maxArea   float64
	maxBlobs  int
	holes     bool
	blobs     []Blob
	cv        bool // Subtract with OpenCV.
}

// New returns a new Tracker using finder f. The first processed frame is
// learned as the background. c is expected to have been validated.
func New(c config.Config, f BlobFinder) *Tracker {
	r := image.Rect(0, 0, config.FrameWidth, config.FrameHeight)
	t := &Tracker{
		log:       c.Logger,
		finder:    f,
		debugging: newWindows("Tracker"),
		color:     image.NewRGBA(r),
		gray:      image.NewGray(r),
		bg:        image.NewGray(r),
		diff:      image.NewGray(r),
		relearn:   true,
		minArea:   c.MinArea,
		maxArea:   c.MaxArea,
		maxBlobs:  int(c.MaxBlobs),
		holes:     !c.SkipHoles,
		cv:        haveCV && c.BlobFinder == config.FinderOpenCV,
	}
	t.threshold = clamp(c.Threshold)
	return t
}

// Process pulls the next frame from src. If src has no new frame the
// blobs and background are left as they were and false is returned.
func (t *Tracker) Process(src device.FrameSource) (bool, error) {
	err := src.Update()
	if err != nil {
		return false, fmt.Errorf("could not update %s: %w", src.Name(), err)
	}
	if !src.IsFrameNew() {
		return false, nil
	}
	img := src.Frame()
	if img == nil {
		return false, nil
	}
	t.ProcessFrame(img)
	return true, nil
}

// ProcessFrame runs background subtraction and blob extraction on img,
// replacing the current blobs.
func (t *Tracker) ProcessFrame(img image.Image) {
	fit(t.color, img)
	if !t.cv || !t.tryCV() {
		grayscale(t.gray, t.color)
		t.learn()
		absDiff(t.diff, t.gray, t.bg)
		threshold(t.diff, t.threshold)
	}
	t.blobs = t.finder.Find(t.diff, t.minArea, t.maxArea, t.maxBlobs, t.holes)
	t.debugging.show(t.color, t.diff, t.blobs, fmt.Sprintf("threshold: %d", t.threshold))
}

// tryCV subtracts the background using OpenCV. On failure OpenCV is not
// used again and false is returned.
func (t *Tracker) tryCV() bool {
	err := t.subtractCV()
	if err != nil {
		t.log.Warning(pkg+"could not subtract with OpenCV, using pure Go", "error", err.Error())
		t.cv = false
		return false
	}
	return true
}

// learn copies the gray frame to the background if relearning.
func (t *Tracker) learn() {
	if !t.relearn {
		return
	}
	copy(t.bg.Pix, t.gray.Pix)
	t.relearn = false
	t.log.Debug(pkg + "learned background")
}

// AdjustThreshold adds delta to the threshold, saturating at 0 and 255, and
// returns the new threshold.
func (t *Tracker) AdjustThreshold(delta int) int {
	t.threshold = clamp(t.threshold + delta)
	t.log.Debug(pkg+"threshold adjusted", "threshold", t.threshold)
	return t.threshold
}

// SetThreshold sets the threshold, clamped to [0,255].
func (t *Tracker) SetThreshold(v int) { t.threshold = clamp(v) }

// Relearn causes the next processed frame to become the background.
func (t *Tracker) Relearn() { t.relearn = true }

func (t *Tracker) Threshold() int          { return t.threshold }
func (t *Tracker) Blobs() []Blob           { return t.blobs }
func (t *Tracker) Color() *image.RGBA      { return t.color }
func (t *Tracker) Gray() *image.Gray       { return t.gray }
func (t *Tracker) Background() *image.Gray { return t.bg }
func (t *Tracker) Diff() *image.Gray       { return t.diff }

// Close frees resources used by the debug windows, if any.
func (t *Tracker) Close() error { return t.debugging.close() }

func clamp(v int) int {
	switch {
	case v < minThreshold:
		return minThreshold
	case v > maxThreshold:
		return maxThreshold
	}
	return v
}
