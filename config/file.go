/*
DESCRIPTION
  file.go provides reading of configuration variables from a file of
  Key=Value lines, and watching of that file so that changes may be applied
  to a running session.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/ausocean/utils/logging"
)

// ParseVars reads Key=Value lines from r into a variable map suitable for
// Config.Update. Blank lines and lines starting with # are ignored. Later
// keys override earlier ones.
func ParseVars(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '=' in %q", n, line)
		}
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, fmt.Errorf("line %d: empty key", n)
		}
		vars[k] = strings.TrimSpace(v)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("could not scan config: %w", err)
	}
	return vars, nil
}

// ReadFile reads the variable map held in the file at path.
func ReadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open config file: %w", err)
	}
	defer f.Close()
	return ParseVars(f)
}

// Watcher watches a config file and delivers its variables each time the
// file is written. Vars are delivered on a buffered channel of size one; a
// newer set replaces one that has not been received yet, so a slow reader
// only ever sees the latest file contents.
type Watcher struct {
	path string
	log  logging.Logger
	w    *fsnotify.Watcher
	vars chan map[string]string
	done chan struct{}
}

// Watch starts watching the config file at path. The containing directory
// is watched so that editors which replace the file are handled.
func Watch(path string, l logging.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}
	err = w.Add(filepath.Dir(path))
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("could not watch config directory: %w", err)
	}

	cw := &Watcher{
		path: filepath.Clean(path),
		log:  l,
		w:    w,
		vars: make(chan map[string]string, 1),
		done: make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Vars returns the channel on which updated variables are delivered.
func (cw *Watcher) Vars() <-chan map[string]string { return cw.vars }

// Close stops watching.
func (cw *Watcher) Close() error {
	err := cw.w.Close()
	<-cw.done
	return err
}

func (cw *Watcher) run() {
	defer close(cw.done)
	for {
		select {
		case ev, ok := <-cw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			vars, err := ReadFile(cw.path)
			if err != nil {
				cw.log.Warning("could not reload config", "error", err.Error())
				continue
			}
			cw.log.Debug("config file changed", "path", cw.path)
			select {
			case <-cw.vars:
			default:
			}
			cw.vars <- vars
		case err, ok := <-cw.w.Errors:
			if !ok {
				return
			}
			cw.log.Error("config watcher error", "error", err.Error())
		}
	}
}
