/*
DESCRIPTION
  defaults.go provides configuration defaults and errors shared by the webcam
  implementations.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package webcam

import (
	"errors"

	"github.com/ausocean/blobribbon/config"
)

// Used to indicate package in logging.
const pkg = "webcam: "

// Configuration defaults.
const (
	defaultWidth  = config.FrameWidth
	defaultHeight = config.FrameHeight
)

// Configuration field errors.
var (
	errBadCameraID = errors.New("camera id bad, defaulting")
	errBadWidth    = errors.New("width bad or unset, defaulting")
	errBadHeight   = errors.New("height bad or unset, defaulting")
)
