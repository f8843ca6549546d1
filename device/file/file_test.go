/*
DESCRIPTION
  file_test.go provides testing for the MJPEG file FrameSource.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package file

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ausocean/blobribbon/config"
	"github.com/ausocean/utils/logging"
)

// writeMJPEG writes n solid grey frames of increasing brightness to a
// temporary file and returns its path.
func writeMJPEG(t *testing.T, n int) string {
	t.Helper()
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		img := image.NewGray(image.Rect(0, 0, 32, 24))
		for j := range img.Pix {
			img.Pix[j] = uint8(40 * (i + 1))
		}
		err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100})
		if err != nil {
			t.Fatalf("could not encode frame: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "frames.mjpeg")
	err := os.WriteFile(path, buf.Bytes(), 0o644)
	if err != nil {
		t.Fatalf("could not write mjpeg file: %v", err)
	}
	return path
}

func brightness(img image.Image) uint8 {
	return color.GrayModel.Convert(img.At(16, 12)).(color.Gray).Y
}

func TestIsRunning(t *testing.T) {
	path := writeMJPEG(t, 1)

	d := New((*logging.TestLogger)(t))

	err := d.Set(config.Config{
		InputPath: path,
	})
	if err != nil {
		t.Fatalf("could not set device: %v", err)
	}

	err = d.Start()
	if err != nil {
		t.Fatalf("could not start device %v", err)
	}

	if !d.IsRunning() {
		t.Error("device isn't running, when it should be")
	}

	err = d.Stop()
	if err != nil {
		t.Error(err.Error())
	}

	if d.IsRunning() {
		t.Error("device is running, when it should not be")
	}

	if d.Update() == nil {
		t.Error("expected error updating stopped device")
	}
}

func TestSetNoPath(t *testing.T) {
	d := New((*logging.TestLogger)(t))
	if d.Set(config.Config{}) == nil {
		t.Error("expected error for missing input path")
	}
	if d.Start() == nil {
		t.Error("expected error starting unset device")
	}
}

func TestUpdateNoLoop(t *testing.T) {
	path := writeMJPEG(t, 3)
	d := NewWith((*logging.TestLogger)(t), path, false, 0)
	err := d.Start()
	if err != nil {
		t.Fatalf("could not start device: %v", err)
	}
	defer d.Stop()

	var got []uint8
	for i := 0; i < 5; i++ {
		err := d.Update()
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		if d.IsFrameNew() {
			got = append(got, brightness(d.Frame()))
		}
	}
	if len(got) != 3 {
		t.Fatalf("got %d new frames, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Errorf("frames out of order: %v", got)
		}
	}

	// The last frame is held after the end of the file.
	if d.Frame() == nil || brightness(d.Frame()) != got[2] {
		t.Error("last frame not held after end of file")
	}
}

func TestUpdateLoop(t *testing.T) {
	path := writeMJPEG(t, 2)
	d := NewWith((*logging.TestLogger)(t), path, true, 0)
	err := d.Start()
	if err != nil {
		t.Fatalf("could not start device: %v", err)
	}
	defer d.Stop()

	var n int
	for i := 0; i < 7; i++ {
		err := d.Update()
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		if d.IsFrameNew() {
			n++
		}
	}
	if n != 7 {
		t.Errorf("got %d new frames while looping, want 7", n)
	}
}

func TestUpdateFPS(t *testing.T) {
	path := writeMJPEG(t, 3)
	d := NewWith((*logging.TestLogger)(t), path, false, 10)
	now := time.Unix(0, 0)
	d.now = func() time.Time { return now }
	err := d.Start()
	if err != nil {
		t.Fatalf("could not start device: %v", err)
	}
	defer d.Stop()

	steps := []struct {
		advance time.Duration
		isNew   bool
	}{
		{0, true},
		{50 * time.Millisecond, false},
		{50 * time.Millisecond, true},
		{99 * time.Millisecond, false},
		{time.Millisecond, true},
	}
	for i, s := range steps {
		now = now.Add(s.advance)
		err := d.Update()
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if d.IsFrameNew() != s.isNew {
			t.Errorf("step %d: IsFrameNew = %v, want %v", i, d.IsFrameNew(), s.isNew)
		}
	}
}
