// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws the shadow-mapped scene: a depth pass from the
// light into a shadow map, a color pass from the camera into an
// offscreen render texture, and a present pass copying that texture
// to the window, followed by the overlay.
package render

import (
	"image"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/mathgl/mgl32"
	"glitter.dev/glitter/config"
	"glitter.dev/glitter/gpu"
	"glitter.dev/glitter/xyz"
)

// MouseActions are the actions reported to [Graphics.OnMouseButton].
type MouseActions int32

const (
	Release MouseActions = iota
	Press
)

// MouseLeft is the button that drags the camera.
const MouseLeft = 0

// Graphics owns the scene and its GPU resources, and draws frames.
// All of its methods must be called from the goroutine owning the
// GL context.
type Graphics struct {
	ctx     *gpu.Context
	cfg     *config.Config
	overlay Overlay
	timer   *Timer

	// err is the first error of Init, shown instead of the scene.
	err error

	// ready is set once Init has created the whole scene.
	ready bool

	size        image.Point
	camera      *xyz.ArcCamera
	projection  mgl32.Mat4
	light       xyz.Light
	lightView   mgl32.Mat4
	lightProj   mgl32.Mat4
	maxDistance float32

	dragging bool
	cursor   mgl32.Vec2
	hasPos   bool

	depthMap      *gpu.DepthMap
	depthShader   *gpu.Shader
	markerShader  *gpu.Shader
	marker        *gpu.Drawable
	solids        []solid
	floor         solid
	skyboxTexture *gpu.Texture
	skyboxShader  *gpu.Shader
	skybox        *gpu.VertexArray
	target        *gpu.RenderTexture
	screenShader  *gpu.Shader
	quad          *gpu.VertexArray

	// resources, for release
	shaders      []*gpu.Shader
	sceneShaders []*gpu.Shader
	materials    map[config.Material]*gpu.Shader
	textures     map[textureKey]*gpu.Texture
	drawables    []*gpu.Drawable

	watcher    *fsnotify.Watcher
	configPath string
}

// New returns a new Graphics drawing the configured scene through ctx.
// Nothing is created on the device until [Graphics.Init].
// A nil overlay shows nothing.
func New(ctx *gpu.Context, cfg *config.Config, overlay Overlay) *Graphics {
	if overlay == nil {
		overlay = NopOverlay{}
	}
	cm := &cfg.Camera
	gr := &Graphics{
		ctx:         ctx,
		cfg:         cfg,
		overlay:     overlay,
		timer:       NewTimer(nil),
		camera:      xyz.NewArcCamera(cm.Centre, cm.Distance, cm.Pitch, cm.Yaw),
		maxDistance: 50,
		materials:   map[config.Material]*gpu.Shader{},
		textures:    map[textureKey]*gpu.Texture{},
	}
	gr.light.Defaults()
	if err := cfg.Light.Apply(&gr.light); err != nil {
		slog.Warn("render: invalid light config", "err", err)
	}
	return gr
}

// Init creates the scene for a framebuffer of the given size. The first
// error is stored, logged and returned: the scene is then not drawn,
// and the error is shown in the overlay.
func (gr *Graphics) Init(size image.Point) error {
	gr.size = size
	gr.ctx.Enable(gpu.CullFace)
	steps := []func() error{
		gr.initDepthBuffer,
		gr.initSkybox,
		gr.initScene,
		gr.initFramebuffer,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			gr.err = err
			slog.Error("render: scene setup failed", "err", err)
			return err
		}
	}
	gr.initView()
	gr.updateLight()
	gr.timer.Start()
	gr.ready = true
	return nil
}

// Err returns the error stored by Init, if any.
func (gr *Graphics) Err() error {
	return gr.err
}

// Timer returns the frame timer.
func (gr *Graphics) Timer() *Timer {
	return gr.timer
}

// Camera returns the scene camera.
func (gr *Graphics) Camera() *xyz.ArcCamera {
	return gr.camera
}

// Light returns the scene light.
func (gr *Graphics) Light() *xyz.Light {
	return &gr.light
}

// updateLight moves the light along its orbit for the current time,
// sets its cone and shadow frustum from the cutoff angles,
// and uploads it to the scene shaders.
func (gr *Graphics) updateLight() {
	lc := &gr.cfg.Light
	gr.light.Position = xyz.Orbit(lc.Position, lc.OrbitSpeed, gr.timer.Time())
	gr.light.LookAtOrigin()
	gr.light.SetCutoffDegrees(lc.CutoffDegrees, lc.EdgeDegrees)
	gr.lightView = gr.light.View()
	gr.lightProj = xyz.SpotProjection(lc.CutoffDegrees)
	space := gr.lightProj.Mul4(gr.lightView)
	for _, sh := range gr.sceneShaders {
		xyz.SetLight(sh, &gr.light, space, gr.cfg.Shadow.Penumbra)
	}
	gr.markerShader.SetUniform("lightColor", gr.light.Specular)
}

// Draw draws one frame: the depth and color passes, unless there is
// a stored error or no Init, then the present pass and the overlay.
func (gr *Graphics) Draw() {
	gr.pollWatcher()
	gr.timer.Update()
	gr.ctx.Enable(gpu.DepthTest)
	if gr.ready {
		gr.updateLight()
		gr.depthPass()
		gr.colorPass()
	}
	gr.presentPass()
	gr.overlayFrame()
}

// depthPass renders the scene depth from the light into the shadow map.
func (gr *Graphics) depthPass() {
	gr.ctx.Viewport(gr.depthMap.Size())
	gr.depthMap.Bind()
	gr.ctx.Dev.Clear(gpu.ClearDepth)
	gr.drawScene(gr.lightView, gr.lightProj, gr.depthShader)
}

// colorPass renders the scene and skybox from the camera
// into the render texture.
func (gr *Graphics) colorPass() {
	gr.ctx.Viewport(gr.size)
	gr.target.Bind()
	cc := gr.cfg.Scene.ClearColor
	gr.ctx.Dev.ClearColor(cc[0], cc[1], cc[2], cc[3])
	gr.ctx.Dev.Clear(gpu.ClearColor | gpu.ClearDepth)
	view := gr.camera.ViewMatrix()
	gr.drawScene(view, gr.projection, nil)
	gr.drawSkybox(view)
}

// drawScene draws the light marker, the models and the floor.
func (gr *Graphics) drawScene(view, projection mgl32.Mat4, override *gpu.Shader) {
	p := gr.light.Position
	gr.marker.Draw(mgl32.Translate3D(p[0], p[1], p[2]), view, projection, override)
	for _, sd := range gr.solids {
		sd.draw(view, projection, override)
	}
	gr.floor.draw(view, projection, override)
}

// drawSkybox draws the skybox behind everything, with the
// translation of the view removed.
func (gr *Graphics) drawSkybox(view mgl32.Mat4) {
	if gr.skybox == nil {
		return
	}
	gr.ctx.SetDepthFunc(gpu.LessEqual)
	sh := gr.skyboxShader
	sh.Activate()
	sh.SetUniform("viewProjection", gr.projection.Mul4(view.Mat3().Mat4()))
	sh.BindTextures()
	gr.skybox.Draw()
	gr.ctx.SetDepthFunc(gpu.Less)
}

// presentPass copies the render texture to the window framebuffer,
// encoding it to sRGB.
func (gr *Graphics) presentPass() {
	gr.ctx.BindFramebuffer(0)
	gr.ctx.Viewport(gr.size)
	gr.ctx.Disable(gpu.DepthTest)
	gr.ctx.Enable(gpu.FramebufferSRGB)
	gr.ctx.Dev.ClearColor(1, 1, 1, 1)
	gr.ctx.Dev.Clear(gpu.ClearColor)
	if gr.ready {
		sh := gr.screenShader
		sh.Activate()
		sh.SetUniform("time", gr.timer.Time())
		sh.SetUniform("clipPos", mgl32.Vec4{0, 0, 1, 1})
		sh.BindTextures()
		gr.quad.Draw()
	}
	gr.ctx.Disable(gpu.FramebufferSRGB)
}

// overlayFrame runs the overlay, and applies its changes to the light
// and the shadow.
func (gr *Graphics) overlayFrame() {
	lc := &gr.cfg.Light
	fi := &FrameInfo{
		Delta:         gr.timer.Delta(),
		Err:           gr.err,
		Light:         &gr.light,
		MaxDistance:   gr.maxDistance,
		Falloff:       gr.light.Falloff(FalloffSamples, gr.maxDistance),
		CutoffDegrees: lc.CutoffDegrees,
		EdgeDegrees:   lc.EdgeDegrees,
		Penumbra:      gr.cfg.Shadow.Penumbra,
	}
	if fi.Delta > 0 {
		fi.FPS = 1 / fi.Delta
	}
	gr.overlay.Frame(fi)
	gr.light.SetColor(gr.light.Specular, lc.AmbientFactor)
	if fi.MaxDistance > 0 {
		gr.maxDistance = fi.MaxDistance
	}
	if fi.CutoffDegrees > 0 && fi.EdgeDegrees >= 0 && fi.CutoffDegrees+fi.EdgeDegrees < 90 {
		lc.CutoffDegrees, lc.EdgeDegrees = fi.CutoffDegrees, fi.EdgeDegrees
	}
	if fi.Penumbra > 0 {
		gr.cfg.Shadow.Penumbra = fi.Penumbra
	}
}

// OnResize resizes the render texture and the projection to a new
// framebuffer size. Empty sizes, as for a minimized window, are ignored.
func (gr *Graphics) OnResize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 || size == gr.size {
		return
	}
	gr.size = size
	gr.initView()
	if gr.target == nil {
		return
	}
	if err := gr.target.SetSize(size); err != nil {
		slog.Error("render: resizing render texture", "size", size, "err", err)
	}
}

// OnCursorMoved rotates the camera by the cursor movement
// while dragging.
func (gr *Graphics) OnCursorMoved(pos mgl32.Vec2) {
	if gr.hasPos && gr.dragging {
		d := pos.Sub(gr.cursor)
		s := gr.cfg.Camera.Sensitivity
		gr.camera.Yaw(-d.X() * s)
		gr.camera.Pitch(d.Y() * s)
	}
	gr.cursor = pos
	gr.hasPos = true
}

// OnMouseButton starts a camera drag when the left button is pressed
// outside the overlay, and ends it when released.
func (gr *Graphics) OnMouseButton(button int, action MouseActions) {
	if button != MouseLeft {
		return
	}
	switch action {
	case Press:
		if !gr.overlay.WantCaptureMouse() {
			gr.dragging = true
		}
	case Release:
		gr.dragging = false
	}
}

// Release releases all GPU resources and stops watching files.
// It is safe to call more than once.
func (gr *Graphics) Release() {
	gr.closeWatcher()
	for _, dw := range gr.drawables {
		dw.Release()
	}
	gr.drawables = nil
	for _, sh := range gr.shaders {
		sh.Release()
	}
	gr.shaders = nil
	gr.sceneShaders = nil
	clear(gr.materials)
	for _, tx := range gr.textures {
		tx.Release()
	}
	clear(gr.textures)
	gr.skybox.Release()
	gr.skyboxTexture.Release()
	gr.quad.Release()
	gr.target.Release()
	gr.depthMap.Release()
	gr.skybox, gr.skyboxTexture, gr.quad, gr.target, gr.depthMap = nil, nil, nil, nil, nil
	gr.ready = false
}
