/*
DESCRIPTION
  blobribbon tracks blobs in a camera or file feed by background subtraction
  and draws a pointer driven ribbon that can be viewed through an orbiting
  perspective camera.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is the blobribbon program.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/blobribbon/app"
	"github.com/ausocean/blobribbon/config"
	"github.com/ausocean/blobribbon/host"
	"github.com/ausocean/utils/logging"
)

// Current software version.
const version = "v0.1.0"

// Logging configuration.
const (
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

// Misc constants.
const (
	defaultLogPath = "blobribbon.log"
	profilePath    = "blobribbon.prof"
	pkg            = "blobribbon: "
)

// This is set to true if the 'profile' build tag is provided on build.
var canProfile = false

// The window must be driven from the main thread.
func init() { runtime.LockOSThread() }

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version")
		configPath  = flag.String("config", "", "path to a Key=Value config file, watched for changes")
		logPath     = flag.String("log", defaultLogPath, "path of the rotated log file")
		inputPath   = flag.String("file", "", "play the MJPEG file at this path instead of the webcam")
	)
	flag.Parse()
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   *logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	defer fileLog.Close()

	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)
	log.Info(pkg+"starting", "version", version)

	if canProfile {
		profile(log)
		defer pprof.StopCPUProfile()
		log.Info(pkg + "profiling started")
	}

	cfg := config.Config{Logger: log}
	if *configPath != "" {
		vars, err := config.ReadFile(*configPath)
		if err != nil {
			log.Fatal(pkg+"could not read config", "error", err.Error())
		}
		cfg.Update(vars)
	}
	if *inputPath != "" {
		cfg.Update(map[string]string{config.KeyInput: "file", config.KeyInputPath: *inputPath})
	}
	err := cfg.Validate()
	if err != nil {
		log.Fatal(pkg+"invalid config", "error", err.Error())
	}

	src, err := app.NewSource(cfg)
	if err != nil {
		log.Fatal(pkg+"could not create input", "error", err.Error())
	}

	a, err := app.New(cfg, src, app.NewFinder(cfg))
	if err != nil {
		log.Fatal(pkg+"could not create app", "error", err.Error())
	}

	if *configPath != "" {
		w, err := config.Watch(*configPath, log)
		if err != nil {
			log.Warning(pkg+"config changes will not be applied", "error", err.Error())
		} else {
			defer w.Close()
			a.Watch(w.Vars())
		}
	}

	err = host.New(a.Config()).Run(a)
	if err != nil {
		log.Error(pkg+"run failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info(pkg + "exiting")
}

func profile(l logging.Logger) {
	f, err := os.Create(profilePath)
	if err != nil {
		l.Fatal(pkg+"could not create CPU profile", "error", err.Error())
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		l.Fatal(pkg+"could not start CPU profile", "error", err.Error())
	}
}
