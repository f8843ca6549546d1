/*
DESCRIPTION
  file.go provides an implementation of the FrameSource interface for MJPEG
  files.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package file provides an implementation of FrameSource for files.
package file

import (
	"bytes"
	"image"
	"image/jpeg"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	jpegcodec "github.com/ausocean/blobribbon/codec/jpeg"
	"github.com/ausocean/blobribbon/config"
	"github.com/ausocean/utils/logging"
)

// Used to indicate package in logging.
const pkg = "file: "

// AVFile is an implementation of the FrameSource interface for a file
// containing a stream of JPEG images, i.e. MJPEG.
type AVFile struct {
	f         *os.File
	s         *jpegcodec.Scanner
	path      string
	loop      bool
	interval  time.Duration
	last      time.Time
	frame     image.Image
	isNew     bool
	eof       bool
	isRunning bool
	log       logging.Logger
	set       bool
	now       func() time.Time
	mu        sync.Mutex
}

// New returns a new AVFile.
func New(l logging.Logger) *AVFile { return &AVFile{log: l, now: time.Now} }

// NewWith returns a new AVFile with required params provided i.e. the Set
// method does not need to be called. A zero fps produces a frame on every
// Update.
func NewWith(l logging.Logger, path string, loop bool, fps uint) *AVFile {
	m := &AVFile{log: l, path: path, loop: loop, set: true, now: time.Now}
	m.setFPS(fps)
	return m
}

// Name returns the name of the device.
func (m *AVFile) Name() string {
	return "File"
}

// Set takes InputPath, Loop and FileFPS from the passed config.
func (m *AVFile) Set(c config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.InputPath == "" {
		return errors.New("no input path for file device")
	}
	m.path = c.InputPath
	m.loop = c.Loop
	m.setFPS(c.FileFPS)
	m.set = true
	return nil
}

func (m *AVFile) setFPS(fps uint) {
	m.interval = 0
	if fps != 0 {
		m.interval = time.Second / time.Duration(fps)
	}
}

// Start will open the file at the configured path.
func (m *AVFile) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return errors.New("AVFile has not been set with config")
	}
	f, err := os.Open(m.path)
	if err != nil {
		return errors.Wrap(err, "could not open media file")
	}
	m.f = f
	m.s = jpegcodec.NewScanner(f)
	m.eof = false
	m.isNew = false
	m.last = time.Time{}
	m.isRunning = true
	m.log.Info(pkg+"started", "path", m.path, "loop", m.loop)
	return nil
}

// Stop will close the file such that any further updates produce no frames.
func (m *AVFile) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.f == nil {
		return nil
	}
	err := m.f.Close()
	if err != nil {
		return errors.Wrap(err, "could not close media file")
	}
	m.f = nil
	m.isNew = false
	m.isRunning = false
	return nil
}

// Update decodes the next JPEG image in the file if the frame interval has
// elapsed. When the end of the file is reached the file is restarted if
// looping, otherwise the last frame is held and no new frames are produced.
func (m *AVFile) Update() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isNew = false
	if m.f == nil {
		return errors.New("AV file is closed, AVFile not started")
	}
	if m.eof {
		return nil
	}

	now := m.now()
	if m.interval != 0 && !m.last.IsZero() && now.Sub(m.last) < m.interval {
		return nil
	}

	b, err := m.s.Next()
	if err == io.EOF && m.loop {
		m.log.Info(pkg + "looping input file")
		_, err = m.f.Seek(0, io.SeekStart)
		if err != nil {
			return errors.Wrap(err, "could not seek to start of file for input loop")
		}
		m.s.Reset(m.f)
		b, err = m.s.Next()
	}
	switch {
	case err == io.EOF:
		m.log.Info(pkg+"end of input file", "path", m.path)
		m.eof = true
		return nil
	case err != nil:
		return errors.Wrap(err, "could not read JPEG frame")
	}

	img, err := jpeg.Decode(bytes.NewReader(b))
	if err != nil {
		return errors.Wrap(err, "image can't be decoded")
	}
	m.frame = img
	m.isNew = true
	m.last = now
	return nil
}

// IsFrameNew reports whether the last Update produced a new frame.
func (m *AVFile) IsFrameNew() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isNew
}

// Frame returns the most recently decoded frame.
func (m *AVFile) Frame() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frame
}

// IsRunning is used to determine if the AVFile device is running.
func (m *AVFile) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.f != nil && m.isRunning
}
