//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  Replaces OpenCV background subtraction when built without OpenCV.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

import "errors"

const haveCV = false

func (t *Tracker) subtractCV() error { return errors.New("built without OpenCV") }
