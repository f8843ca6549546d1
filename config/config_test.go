/*
DESCRIPTION
  config_test.go provides testing for configuration validation, updating and
  file parsing.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestValidate(t *testing.T) {
	dl := &dumbLogger{}

	want := Config{
		Logger:       dl,
		Input:        defaultInput,
		BlobFinder:   defaultBlobFinder,
		DepthStep:    defaultDepthStep,
		FrameRate:    defaultFrameRate,
		Width:        FrameWidth,
		Height:       FrameHeight,
		LogLevel:     defaultVerbosity,
		Threshold:    defaultThreshold,
		MinArea:      defaultMinArea,
		MaxArea:      defaultMaxArea,
		MaxBlobs:     defaultMaxBlobs,
		WindowWidth:  defaultWindowWidth,
		WindowHeight: defaultWindowHeight,
	}

	got := Config{Logger: dl}
	err := (&got).Validate()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if !cmp.Equal(got, want, cmpopts.IgnoreUnexported(Config{})) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestValidateOutOfRange(t *testing.T) {
	dl := &dumbLogger{}
	got := Config{
		Logger:       dl,
		Input:        InputFile,
		InputPath:    "/inputpath",
		BlobFinder:   7,
		CameraID:     -2,
		Threshold:    300,
		MinArea:      50000,
		FrameRate:    1000,
		WindowWidth:  100,
		WindowHeight: 100,
	}
	(&got).Validate()

	want := Config{
		Logger:       dl,
		Input:        InputFile,
		InputPath:    "/inputpath",
		BlobFinder:   defaultBlobFinder,
		CameraID:     0,
		DepthStep:    defaultDepthStep,
		Threshold:    defaultThreshold,
		MinArea:      defaultMinArea,
		MaxArea:      defaultMaxArea,
		MaxBlobs:     defaultMaxBlobs,
		FrameRate:    defaultFrameRate,
		Width:        FrameWidth,
		Height:       FrameHeight,
		LogLevel:     defaultVerbosity,
		WindowWidth:  defaultWindowWidth,
		WindowHeight: defaultWindowHeight,
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestUpdate(t *testing.T) {
	updateMap := map[string]string{
		"BlobFinder":   "opencv",
		"CameraID":     "1",
		"DepthStep":    "2.5",
		"FileFPS":      "30",
		"FrameRate":    "30",
		"Height":       "480",
		"Input":        "file",
		"InputPath":    "/inputpath",
		"logging":      "Error",
		"Loop":         "true",
		"MaxArea":      "5000",
		"MaxBlobs":     "4",
		"MinArea":      "9",
		"SkipHoles":    "true",
		"Threshold":    "34",
		"UseCamera":    "true",
		"Width":        "640",
		"WindowHeight": "600",
		"WindowWidth":  "800",
	}

	dl := &dumbLogger{}

	want := Config{
		Logger:       dl,
		BlobFinder:   FinderOpenCV,
		CameraID:     1,
		DepthStep:    2.5,
		FileFPS:      30,
		FrameRate:    30,
		Height:       480,
		Input:        InputFile,
		InputPath:    "/inputpath",
		LogLevel:     logging.Error,
		Loop:         true,
		MaxArea:      5000,
		MaxBlobs:     4,
		MinArea:      9,
		SkipHoles:    true,
		Threshold:    34,
		UseCamera:    true,
		Width:        640,
		WindowHeight: 600,
		WindowWidth:  800,
	}

	got := Config{Logger: dl}
	got.Update(updateMap)
	if !cmp.Equal(want, got, cmpopts.IgnoreUnexported(Config{})) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestThresholdZero(t *testing.T) {
	dl := &dumbLogger{}
	tests := []struct {
		name string
		vars map[string]string
		want int
	}{
		{name: "unset", vars: nil, want: defaultThreshold},
		{name: "explicit zero", vars: map[string]string{KeyThreshold: "0"}, want: 0},
		{name: "max", vars: map[string]string{KeyThreshold: "255"}, want: 255},
		{name: "negative", vars: map[string]string{KeyThreshold: "-1"}, want: defaultThreshold},
		{name: "not a number", vars: map[string]string{KeyThreshold: "low"}, want: defaultThreshold},
	}
	for _, test := range tests {
		c := Config{Logger: dl}
		c.Update(test.vars)
		c.Validate()
		if c.Threshold != test.want {
			t.Errorf("%s: unexpected threshold.\nGot: %d\nWant: %d", test.name, c.Threshold, test.want)
		}
	}

	c := Config{Logger: dl}
	c.Update(map[string]string{KeyThreshold: "0"})
	c.Update(map[string]string{KeyThreshold: "bad"})
	c.Validate()
	if c.Threshold != defaultThreshold {
		t.Errorf("bad update did not reset explicit zero: %d", c.Threshold)
	}
}

func TestParseVars(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "empty",
			in:   "",
			want: map[string]string{},
		},
		{
			name: "comments and blanks",
			in:   "# tracker\n\nThreshold = 80\n  # note\nInput=file\n",
			want: map[string]string{"Threshold": "80", "Input": "file"},
		},
		{
			name: "later keys win",
			in:   "Threshold=80\nThreshold=90",
			want: map[string]string{"Threshold": "90"},
		},
		{
			name: "value containing equals",
			in:   "InputPath=/tmp/a=b.mjpeg",
			want: map[string]string{"InputPath": "/tmp/a=b.mjpeg"},
		},
		{
			name:    "missing separator",
			in:      "Threshold 80",
			wantErr: true,
		},
		{
			name:    "empty key",
			in:      "=80",
			wantErr: true,
		},
	}

	for _, test := range tests {
		got, err := ParseVars(strings.NewReader(test.in))
		if (err != nil) != test.wantErr {
			t.Errorf("%s: unexpected error state: %v", test.name, err)
			continue
		}
		if test.wantErr {
			continue
		}
		if !cmp.Equal(got, test.want) {
			t.Errorf("%s: vars not equal\nwant: %v\ngot: %v", test.name, test.want, got)
		}
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blobribbon.conf")
	err := os.WriteFile(path, []byte("Threshold=80\n"), 0o644)
	if err != nil {
		t.Fatalf("could not write config: %v", err)
	}

	w, err := Watch(path, (*logging.TestLogger)(t))
	if err != nil {
		t.Fatalf("could not watch config: %v", err)
	}
	defer w.Close()

	err = os.WriteFile(path, []byte("Threshold=120\nUseCamera=true\n"), 0o644)
	if err != nil {
		t.Fatalf("could not rewrite config: %v", err)
	}

	want := map[string]string{"Threshold": "120", "UseCamera": "true"}
	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-w.Vars():
			// A write may be observed before it completes; wait for the full file.
			if cmp.Equal(got, want) {
				return
			}
		case <-timeout:
			t.Fatal("did not receive updated vars")
		}
	}
}
