/*
NAME
  lex.go

DESCRIPTION
  lex.go provides a Scanner to extract separate JPEG images from a JPEG
  stream. This could either be a series of discrete JPEG images, or an MJPEG
  stream.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package jpeg provides splitting of MJPEG streams into JPEG images.
package jpeg

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// JPEG marker codes.
const (
	codeSOI = 0xd8 // Start of image.
	codeEOI = 0xd9 // End of image.
)

var soi = []byte{0xff, codeSOI}

// Scanner splits a stream of concatenated JPEG images into single images.
type Scanner struct {
	r *bufio.Reader
}

// NewScanner returns a Scanner reading from src.
func NewScanner(src io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(src)}
}

// Reset discards any buffered data and switches the Scanner to read from src.
func (s *Scanner) Reset(src io.Reader) { s.r.Reset(src) }

// Next returns the next complete JPEG image in the stream, from its start of
// image marker to the matching end of image marker. Embedded images, such as
// thumbnails, are counted so that their end markers do not terminate the outer
// image. Next returns io.EOF if the stream ends cleanly between images and
// io.ErrUnexpectedEOF if it ends within one.
func (s *Scanner) Next() ([]byte, error) {
	buf := make([]byte, 2, 4<<10)
	n, err := io.ReadFull(s.r, buf)
	switch {
	case n == 0 && err == io.EOF:
		return nil, io.EOF
	case err == io.ErrUnexpectedEOF:
		return nil, io.ErrUnexpectedEOF
	case err != nil:
		return nil, err
	}

	if !bytes.Equal(buf, soi) {
		return nil, fmt.Errorf("jpeg: not JPEG frame start: %#v", buf)
	}

	nImg := 1
	var last byte
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}

		buf = append(buf, b)

		if last == 0xff && b == codeSOI {
			nImg++
		}

		if last == 0xff && b == codeEOI {
			nImg--
		}

		if nImg == 0 {
			return buf, nil
		}

		last = b
	}
}
