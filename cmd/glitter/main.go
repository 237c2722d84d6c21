// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command glitter opens a window showing a shadow-mapped scene
// with a light orbiting it. Drag with the left mouse button to
// orbit the camera, press F12 for a screenshot and Escape to quit.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"glitter.dev/glitter/base/errors"
	"glitter.dev/glitter/base/logx"
	"glitter.dev/glitter/config"
	"glitter.dev/glitter/gpu"
	"glitter.dev/glitter/gpu/gldevice"
	"glitter.dev/glitter/render"
	"glitter.dev/glitter/system"
)

type flags struct {
	config   string
	width    int
	height   int
	title    string
	assets   string
	watch    bool
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var fl flags
	cmd := &cobra.Command{
		Use:          "glitter",
		Short:        "glitter draws a shadow-mapped scene lit by an orbiting spot light",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &fl)
			if err != nil {
				return err
			}
			return run(cfg, fl.config)
		},
	}
	pf := cmd.Flags()
	pf.StringVarP(&fl.config, "config", "c", "", "config file (.toml, .yaml or .yml)")
	pf.IntVar(&fl.width, "width", 0, "window width")
	pf.IntVar(&fl.height, "height", 0, "window height")
	pf.StringVar(&fl.title, "title", "", "window title")
	pf.StringVar(&fl.assets, "assets", "", "assets directory")
	pf.BoolVarP(&fl.watch, "watch", "w", false, "reload shaders and config when their files change")
	pf.StringVar(&fl.logLevel, "log-level", "", "log level: debug, info, warn or error")
	cmd.AddCommand(newDefaultsCmd())
	return cmd
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults <file>",
		Short: "write the default config to a .toml or .yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Default().Save(args[0])
		},
	}
}

// loadConfig reads the config file, if any, applies the flags
// that were set on top of it and sets up logging.
func loadConfig(cmd *cobra.Command, fl *flags) (*config.Config, error) {
	cfg := config.Default()
	if fl.config != "" {
		var err error
		if cfg, err = config.Open(fl.config); err != nil {
			return nil, err
		}
	}
	fs := cmd.Flags()
	if fs.Changed("width") {
		cfg.Window.Width = fl.width
	}
	if fs.Changed("height") {
		cfg.Window.Height = fl.height
	}
	if fs.Changed("title") {
		cfg.Window.Title = fl.title
	}
	if fs.Changed("assets") {
		cfg.Assets.Dir = fl.assets
	}
	if fs.Changed("watch") {
		cfg.Dev.Watch = fl.watch
	}
	if fs.Changed("log-level") {
		cfg.Dev.LogLevel = fl.logLevel
	}
	lvl, err := logx.ParseLevel(cfg.Dev.LogLevel)
	if err != nil {
		return nil, err
	}
	logx.UserLevel = lvl
	logx.Init()
	return cfg, cfg.Validate()
}

func run(cfg *config.Config, configPath string) error {
	if err := system.Init(); err != nil {
		return err
	}
	defer system.Terminate()
	win, err := system.NewWindow(&cfg.Window)
	if err != nil {
		return err
	}
	defer win.Release()
	win.Screenshots = cfg.Dev.Screenshots

	dev, err := gldevice.New()
	if err != nil {
		return err
	}
	overlay := system.NewTitleOverlay(cfg.Window.Title, win.SetTitle)
	gr := render.New(gpu.NewContext(dev), cfg, overlay)
	defer gr.Release()
	win.Attach(gr)

	// a failed scene is shown in the title, the window stays up
	gr.Init(win.FramebufferSize())
	if cfg.Dev.Watch {
		errors.Log(gr.WatchShaders())
		if configPath != "" {
			errors.Log(gr.WatchConfig(configPath))
		}
	}
	win.Run()
	return nil
}
