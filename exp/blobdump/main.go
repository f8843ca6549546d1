/*
DESCRIPTION
  blobdump runs the blob tracker over a frame source without a window and
  prints the blobs found in each new frame. It is useful for tuning the
  threshold and area limits against a recorded MJPEG file.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ausocean/blobribbon/app"
	"github.com/ausocean/blobribbon/config"
	"github.com/ausocean/blobribbon/tracker"
	"github.com/ausocean/utils/logging"
)

// Consecutive updates without a new frame before the input is taken to have
// ended, and the wait between updates of a webcam that had no frame.
const (
	maxMisses = 30
	missWait  = 10 * time.Millisecond
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// run parses args, then prints a CSV row to out for each blob of each new
// frame. Diagnostics are written to errOut.
func run(args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("blobdump", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var (
		path   = fs.String("file", "", "MJPEG file to read; the webcam is used if empty")
		camera = fs.Int("camera", 0, "camera ID for webcam input")
		thresh = fs.Int("threshold", 100, "difference threshold")
		minA   = fs.Float64("min", 20, "minimum blob area")
		frames = fs.Int("n", 100, "number of frames to process")
		finder = fs.String("finder", "contour", "blob finder: contour or opencv")
	)
	err := fs.Parse(args)
	if err != nil {
		return err
	}

	log := logging.New(logging.Warning, errOut, true)

	vars := map[string]string{
		config.KeyCameraID:   strconv.Itoa(*camera),
		config.KeyThreshold:  strconv.Itoa(*thresh),
		config.KeyMinArea:    strconv.FormatFloat(*minA, 'f', -1, 64),
		config.KeyBlobFinder: *finder,
		config.KeyInput:      "webcam",
	}
	if *path != "" {
		vars[config.KeyInput] = "file"
		vars[config.KeyInputPath] = *path
	}
	cfg := config.Config{Logger: log}
	cfg.Update(vars)
	err = cfg.Validate()
	if err != nil {
		return err
	}

	src, err := app.NewSource(cfg)
	if err != nil {
		return err
	}
	err = src.Set(cfg)
	if err != nil {
		log.Warning("errors from configuring input device", "errors", err)
	}
	err = src.Start()
	if err != nil {
		return fmt.Errorf("could not start %s: %w", src.Name(), err)
	}
	defer src.Stop()

	t := tracker.New(cfg, app.NewFinder(cfg))
	defer t.Close()

	fmt.Fprintln(out, "frame,blob,area,hole,x,y,w,h")
	for i, misses := 0, 0; i < *frames; {
		ok, err := t.Process(src)
		if err != nil {
			return err
		}
		if !ok {
			misses++
			if misses == maxMisses {
				fmt.Fprintf(errOut, "no new frame from %s in %d updates, stopping after %d frames\n", src.Name(), maxMisses, i)
				return nil
			}
			if cfg.Input == config.InputWebcam {
				time.Sleep(missWait)
			}
			continue
		}
		misses = 0
		for j, b := range t.Blobs() {
			fmt.Fprintf(out, "%d,%d,%.0f,%t,%d,%d,%d,%d\n", i, j, b.Area, b.Hole, b.Centroid.X, b.Centroid.Y, b.Bounds.Dx(), b.Bounds.Dy())
		}
		i++
	}
	return nil
}
