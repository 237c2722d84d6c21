// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration structs for glitter,
// read from and written to TOML or YAML files.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"glitter.dev/glitter/base/errors"
	"glitter.dev/glitter/xyz"
	"gopkg.in/yaml.v3"
)

// MaxLightDistance is the distance up to which the light attenuation
// must stay positive.
const MaxLightDistance = 100

// Config is the main config struct that contains all of the
// configuration options for glitter.
type Config struct {
	Window Window
	Camera Camera
	Light  Light
	Shadow Shadow
	Scene  Scene
	Assets Assets
	Dev    Dev
}

// Window configures the main window.
type Window struct {

	// [def: 800] the initial width of the window in screen coordinates
	Width int

	// [def: 600] the initial height of the window in screen coordinates
	Height int

	// [def: OpenGL] the window title
	Title string

	// [def: true] whether to wait for vertical sync when presenting frames
	VSync bool
}

// Camera configures the arc-ball camera.
type Camera struct {

	// [def: (0, 1.4, 0)] the point the camera orbits and looks at
	Centre mgl32.Vec3

	// [def: 2] the distance from the centre
	Distance float32

	// [def: 0.2] the starting pitch in radians
	Pitch float32

	// [def: 0.2] the starting yaw in radians
	Yaw float32

	// [def: 0.01] radians of rotation per pixel of mouse drag
	Sensitivity float32

	// [def: 45] the vertical field of view in degrees
	FOV float32

	// [def: 0.1] the near clipping distance
	Near float32

	// [def: 100] the far clipping distance
	Far float32
}

// Light configures the spot light. Fields named as in [xyz.Light]
// are copied to it by [Light.Apply].
type Light struct {

	// [def: (2.2, 4, 2)] the position of the light at time zero
	Position mgl32.Vec3

	// [def: (1, 1, 1)] the light color, used when Preset is empty
	Color mgl32.Vec3

	// the name of a standard light color, such as Halogen or Candle; overrides Color
	Preset string

	// [def: 0.2] the ambient color as a fraction of Color
	AmbientFactor float32

	// [def: 35] the inner cone angle in degrees
	CutoffDegrees float32

	// [def: 12] the width of the soft cone edge in degrees
	EdgeDegrees float32

	// [def: 1] the constant attenuation factor
	Constant float32

	// [def: 0.027] the linear attenuation factor
	Linear float32

	// [def: 0.0028] the quadratic attenuation factor
	Quadratic float32

	// [def: -20] degrees per second the light orbits about the vertical axis
	OrbitSpeed float32
}

// Shadow configures the shadow map.
type Shadow struct {

	// [def: 512] the width and height of the shadow map in texels
	Size int

	// [def: 500] the penumbra size passed to the shaders
	Penumbra float32
}

// Material configures the textures of a solid. Empty texture
// names use a 1x1 default texture.
type Material struct {

	// the sRGB diffuse color texture
	Diffuse string

	// the linear tangent space normal map
	Normal string

	// the sRGB specular texture
	Specular string

	// [def: 32] the specular exponent
	Shininess float32
}

// Surface returns the reflectance uploaded for the material. Its
// colors are white, as the textures give the surface color.
func (m *Material) Surface() xyz.Material {
	var xm xyz.Material
	xm.Defaults()
	xm.Shininess = m.Shininess
	return xm
}

// Model is a model file placed in the scene.
type Model struct {

	// the OBJ file, relative to the models directory
	Path string

	// the rotation about the vertical axis in degrees
	RotateY float32

	// the materials of the meshes of the model, in order;
	// the last one is used for all remaining meshes
	Parts []Material
}

// Scene configures the content of the scene.
type Scene struct {

	// [def: (0.25, 0.25, 0.25, 1)] the background color of the scene pass
	ClearColor mgl32.Vec4

	// [def: 12] the side length of the floor plane
	FloorSize float32

	// the material of the floor
	Floor Material

	// [def: 0.1] the side length of the cube marking the light position
	MarkerSize float32

	// the models in the scene
	Models []Model

	// [def: skybox] the directory of the six skybox faces, relative to
	// the textures directory; empty for no skybox
	Skybox string
}

// Assets configures where shader, texture and model files are found.
// Subdirectories are relative to Dir unless absolute, and any path may
// start with ~ for the home directory.
type Assets struct {

	// [def: assets] the root assets directory
	Dir string

	// [def: shaders] the directory of the GLSL sources
	Shaders string

	// [def: textures] the directory of the texture images
	Textures string

	// [def: models] the directory of the model files
	Models string
}

// Dev configures development helpers.
type Dev struct {

	// whether to reload shaders and config when their files change
	Watch bool

	// [def: info] the log level: debug, info, warn or error
	LogLevel string

	// [def: .] the directory screenshots are saved to
	Screenshots string
}

// Default returns a new config with all default values.
func Default() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Defaults sets all of the sections to their default values,
// which reproduce the original demo scene.
func (c *Config) Defaults() {
	c.Window.Defaults()
	c.Camera.Defaults()
	c.Light.Defaults()
	c.Shadow.Defaults()
	c.Scene.Defaults()
	c.Assets.Defaults()
	c.Dev.Defaults()
}

func (w *Window) Defaults() {
	w.Width = 800
	w.Height = 600
	w.Title = "OpenGL"
	w.VSync = true
}

func (cm *Camera) Defaults() {
	cm.Centre = mgl32.Vec3{0, 1.4, 0}
	cm.Distance = 2
	cm.Pitch = 0.2
	cm.Yaw = 0.2
	cm.Sensitivity = 0.01
	cm.FOV = 45
	cm.Near = 0.1
	cm.Far = 100
}

func (lt *Light) Defaults() {
	lt.Position = mgl32.Vec3{2.2, 4, 2}
	lt.Color = mgl32.Vec3{1, 1, 1}
	lt.Preset = ""
	lt.AmbientFactor = 0.2
	lt.CutoffDegrees = 35
	lt.EdgeDegrees = 12
	lt.Constant = 1
	lt.Linear = 0.027
	lt.Quadratic = 0.0028
	lt.OrbitSpeed = -20
}

func (sh *Shadow) Defaults() {
	sh.Size = 512
	sh.Penumbra = 500
}

func (sc *Scene) Defaults() {
	sc.ClearColor = mgl32.Vec4{0.25, 0.25, 0.25, 1}
	sc.FloorSize = 12
	sc.Floor = Material{Diffuse: "brickwall.jpg", Normal: "brickwall_normal.jpg", Shininess: 32}
	sc.MarkerSize = 0.1
	body := Material{Diffuse: "TP_Guide_S0_DF.png", Normal: "TP_Guide_S0_NM.png", Specular: "black.png", Shininess: 32}
	hair := Material{Diffuse: "TP_Guide_S0_Hair_DF.png", Normal: "TP_Guide_S0_Hair_NM.png", Specular: "black.png", Shininess: 32}
	sc.Models = []Model{{Path: "Skye.obj", RotateY: -90, Parts: []Material{body, body, hair}}}
	sc.Skybox = "skybox"
}

func (as *Assets) Defaults() {
	as.Dir = "assets"
	as.Shaders = "shaders"
	as.Textures = "textures"
	as.Models = "models"
}

func (dv *Dev) Defaults() {
	dv.Watch = false
	dv.LogLevel = "info"
	dv.Screenshots = "."
}

// Validate returns all of the problems with the config, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, errors.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Shadow.Size <= 0 {
		errs = append(errs, errors.Errorf("config: shadow map size %d must be positive", c.Shadow.Size))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, errors.Errorf("config: camera distance %g must be positive", c.Camera.Distance))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, errors.Errorf("config: camera clip range [%g, %g] is empty", c.Camera.Near, c.Camera.Far))
	}
	var lt xyz.Light
	if err := c.Light.Apply(&lt); err != nil {
		errs = append(errs, err)
	} else if err := lt.Validate(MaxLightDistance); err != nil {
		errs = append(errs, err)
	}
	for i, m := range c.Scene.Models {
		if m.Path == "" {
			errs = append(errs, errors.Errorf("config: model %d has no path", i))
		}
	}
	return errors.Join(errs...)
}

// Apply sets the runtime light from the config, keeping its
// direction pointed at the origin.
func (lc *Light) Apply(lt *xyz.Light) error {
	if err := copier.Copy(lt, lc); err != nil {
		return err
	}
	clr := lc.Color
	if lc.Preset != "" {
		p, err := xyz.ParseLightColor(lc.Preset)
		if err != nil {
			return err
		}
		clr = p.Vec3()
	}
	lt.SetColor(clr, lc.AmbientFactor)
	lt.SetCutoffDegrees(lc.CutoffDegrees, lc.EdgeDegrees)
	lt.LookAtOrigin()
	return nil
}

// Resolve returns the path of the named file in the given asset
// subdirectory, expanding ~. Absolute names are returned as they are.
func (as *Assets) Resolve(sub, name string) (string, error) {
	name, err := homedir.Expand(name)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	sub, err = homedir.Expand(sub)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(sub) {
		dir, err := homedir.Expand(as.Dir)
		if err != nil {
			return "", err
		}
		sub = filepath.Join(dir, sub)
	}
	return filepath.Join(sub, name), nil
}

// Shader returns the path of the named shader source file.
func (as *Assets) Shader(name string) (string, error) {
	return as.Resolve(as.Shaders, name)
}

// Texture returns the path of the named texture file or directory.
func (as *Assets) Texture(name string) (string, error) {
	return as.Resolve(as.Textures, name)
}

// Model returns the path of the named model file.
func (as *Assets) Model(name string) (string, error) {
	return as.Resolve(as.Models, name)
}

// format returns the file format for the extension of path.
func format(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	}
	return "", errors.Errorf("config: unsupported file type %q (want .toml, .yaml or .yml)", filepath.Ext(path))
}

// Open reads the config file at path over the default values,
// so that a file only needs to name the settings it changes.
// The format is chosen by the extension.
func Open(path string) (*Config, error) {
	c := Default()
	if err := c.Open(path); err != nil {
		return nil, err
	}
	return c, nil
}

// Open reads the config file at path into c.
func (c *Config) Open(path string) error {
	fm, err := format(path)
	if err != nil {
		return err
	}
	fn, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	// lists in the file replace the current ones instead of extending them
	models := c.Scene.Models
	c.Scene.Models = nil
	switch fm {
	case "toml":
		err = toml.Unmarshal(b, c)
	case "yaml":
		err = yaml.Unmarshal(b, c)
	}
	if c.Scene.Models == nil {
		c.Scene.Models = models
	}
	if err != nil {
		return errors.Errorf("config: reading %q: %w", path, err)
	}
	return nil
}

// Save writes the config to path, in the format chosen by the extension.
func (c *Config) Save(path string) error {
	fm, err := format(path)
	if err != nil {
		return err
	}
	fn, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	switch fm {
	case "toml":
		err = toml.NewEncoder(&buf).Encode(c)
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(c)
		if err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return err
	}
	return os.WriteFile(fn, buf.Bytes(), 0o644)
}
