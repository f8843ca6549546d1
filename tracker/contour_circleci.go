//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  Replaces the OpenCV blob finder when built without OpenCV.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

import "github.com/ausocean/utils/logging"

// NewCVFinder returns a ContourFinder, since OpenCV is not available.
func NewCVFinder(l logging.Logger) BlobFinder {
	l.Warning(pkg + "built without OpenCV, using contour finder")
	return NewContourFinder()
}
