// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"glitter.dev/glitter/base/errors"
	"glitter.dev/glitter/config"
)

// watch adds the directory to the file watcher, creating it on first use.
func (gr *Graphics) watch(dir string) error {
	if gr.watcher == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		gr.watcher = w
	}
	return gr.watcher.Add(dir)
}

// WatchShaders reloads shaders when their source files change.
// Events are handled at the start of [Graphics.Draw].
func (gr *Graphics) WatchShaders() error {
	dir, err := gr.cfg.Assets.Resolve(gr.cfg.Assets.Shaders, "")
	if err != nil {
		return err
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return err
	}
	slog.Info("render: watching shaders", "dir", dir)
	return gr.watch(dir)
}

// WatchConfig reloads the light, camera and clear color settings when
// the config file at path changes. Events are handled at the start of
// [Graphics.Draw].
func (gr *Graphics) WatchConfig(path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	gr.configPath = path
	slog.Info("render: watching config", "path", path)
	// editors replace files, so the directory is watched
	return gr.watch(filepath.Dir(path))
}

// pollWatcher handles all pending file events without blocking.
func (gr *Graphics) pollWatcher() {
	if gr.watcher == nil {
		return
	}
	for {
		select {
		case ev, ok := <-gr.watcher.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				gr.fileChanged(ev.Name)
			}
		case err, ok := <-gr.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("render: file watcher", "err", err)
		default:
			return
		}
	}
}

// fileChanged reloads what depends on the file at path.
func (gr *Graphics) fileChanged(path string) {
	path, err := filepath.Abs(path)
	if err != nil {
		return
	}
	if path == gr.configPath {
		if err := gr.ReloadConfig(); err != nil {
			slog.Warn("render: config not reloaded", "path", path, "err", err)
		}
		return
	}
	gr.ReloadShaders(path)
}

// ReloadShaders rebuilds the shaders built from the source file at path,
// and returns how many were rebuilt. Shaders that fail to rebuild keep
// their previous program.
func (gr *Graphics) ReloadShaders(path string) int {
	n := 0
	for _, sh := range gr.shaders {
		if !usesSource(sh.Sources(), path) {
			continue
		}
		if err := sh.Reload(); err != nil {
			slog.Warn("render: shader not reloaded", "program", sh.Name, "err", err)
			continue
		}
		n++
	}
	return n
}

func usesSource(srcs []string, path string) bool {
	for _, s := range srcs {
		if a, err := filepath.Abs(s); err == nil && a == path {
			return true
		}
	}
	return false
}

// ReloadConfig reads the watched config file again, and applies its
// light, camera sensitivity, clear color and penumbra settings. The
// scene content and sizes are only read at startup.
func (gr *Graphics) ReloadConfig() error {
	c, err := config.Open(gr.configPath)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.Light.Apply(&gr.light); err != nil {
		return err
	}
	gr.cfg.Light = c.Light
	gr.cfg.Camera.Sensitivity = c.Camera.Sensitivity
	gr.cfg.Scene.ClearColor = c.Scene.ClearColor
	gr.cfg.Shadow.Penumbra = c.Shadow.Penumbra
	slog.Info("render: reloaded config", "path", gr.configPath)
	return nil
}

func (gr *Graphics) closeWatcher() {
	if gr.watcher == nil {
		return
	}
	errors.Log(gr.watcher.Close())
	gr.watcher = nil
}
