// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"glitter.dev/glitter/base/iox/imagex"
)

// Texture is a 2D or cube-map texture on the device. Its format,
// pixel type and color space are fixed when it is made; its storage
// can be reallocated in place with [Texture.Resize].
type Texture struct {
	// Name of the texture, for logs and errors.
	// It is set to the file name when loaded from a file.
	Name string

	// Target is [Texture2D] or [TextureCubeMap].
	Target TextureTargets

	// Format is the pixel format of the texture storage.
	Format TextureFormats

	// Type is the component type of uploaded pixel data.
	Type PixelTypes

	// ColorSpace is whether color data is stored as sRGB.
	ColorSpace ColorSpaces

	size   image.Point
	ctx    *Context
	handle uint32
}

// CubeFaceNames are the base names of the six cube-map face images,
// in face order +X, -X, +Y, -Y, +Z, -Z.
var CubeFaceNames = [6]string{"right", "left", "top", "bottom", "front", "back"}

func newTexture(ctx *Context, name string, target TextureTargets) *Texture {
	tx := &Texture{Name: name, Target: target, ctx: ctx, Type: UnsignedByte}
	tx.handle = ctx.Dev.GenTexture()
	tx.bind()
	slog.Debug("gpu: created texture", "texture", name, "handle", tx.handle)
	return tx
}

// NewTexture allocates a 2D texture of the given size, format and pixel
// type, uploading data if it is non-nil. It is used for render targets
// and depth maps, and for small generated textures. Filtering is linear
// and wrapping clamps to the edge.
// It returns a [*TextureUploadError] if the device rejects the storage.
func NewTexture(ctx *Context, size image.Point, cs ColorSpaces, format TextureFormats, typ PixelTypes, data []byte) (*Texture, error) {
	tx := newTexture(ctx, fmt.Sprintf("%v %v", format, size), Texture2D)
	tx.Format = format
	tx.Type = typ
	tx.ColorSpace = cs
	if err := tx.allocate(Texture2D, size, format.DataFormat(), data); err != nil {
		tx.Release()
		return nil, err
	}
	tx.SetFiltering(Linear)
	tx.SetWrapMode(ClampToEdge)
	return tx, nil
}

// NewTextureFromFile decodes the image file at path into a 2D texture,
// flipped vertically if flip is set, as needed when the first row of the
// image is the top. Opaque images are stored as RGB and others as RGBA.
// Filtering is linear and wrapping repeats.
// It returns a [*LoadError] if the file can not be read or decoded.
func NewTextureFromFile(ctx *Context, path string, cs ColorSpaces, flip bool) (*Texture, error) {
	img, _, err := imagex.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	tx := newTexture(ctx, filepath.Base(path), Texture2D)
	tx.ColorSpace = cs
	if err := tx.uploadImage(Texture2D, img, flip); err != nil {
		tx.Release()
		return nil, err
	}
	tx.SetFiltering(Linear)
	tx.SetWrapMode(Repeat)
	return tx, nil
}

// NewCubeMap decodes six image files into the faces of a cube-map
// texture, in the order of [CubeFaceNames]. All faces must be the same
// size. Filtering is linear and wrapping clamps to the edge.
func NewCubeMap(ctx *Context, faces [6]string, cs ColorSpaces) (*Texture, error) {
	imgs := make([]image.Image, 6)
	for i, path := range faces {
		img, _, err := imagex.Open(path)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		if i > 0 && img.Bounds().Size() != imgs[0].Bounds().Size() {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("face size %v differs from %v", img.Bounds().Size(), imgs[0].Bounds().Size())}
		}
		imgs[i] = img
	}
	tx := newTexture(ctx, filepath.Base(filepath.Dir(faces[0])), TextureCubeMap)
	tx.ColorSpace = cs
	for i, img := range imgs {
		if err := tx.uploadImage(CubeFace(i), img, false); err != nil {
			tx.Release()
			return nil, err
		}
	}
	tx.SetFiltering(Linear)
	tx.SetWrapMode(ClampToEdge)
	return tx, nil
}

// CubeMapFaces returns the six face file names of a cube map in dir,
// which are the [CubeFaceNames] with the given extension (e.g. ".jpg").
func CubeMapFaces(dir, ext string) [6]string {
	var fs [6]string
	for i, nm := range CubeFaceNames {
		fs[i] = filepath.Join(dir, nm+ext)
	}
	return fs
}

// uploadImage uploads the image as 8-bit RGBA data to the target.
func (tx *Texture) uploadImage(target TextureTargets, img image.Image, flip bool) error {
	if flip {
		img = imagex.FlipV(img)
	}
	pix, size, opaque := imagex.Pixels(img)
	tx.Format = RGBA
	if opaque {
		tx.Format = RGB
	}
	tx.Type = UnsignedByte
	return tx.allocate(target, size, RGBA.DataFormat(), pix)
}

// allocate allocates storage for the target with the texture's format,
// from data in the given client format, and checks that the device
// accepted it.
func (tx *Texture) allocate(target TextureTargets, size image.Point, dataFormat uint32, data []byte) error {
	tx.bind()
	// errors left by earlier calls are not this upload's
	if code := tx.ctx.CheckError(); code != NoError {
		slog.Debug("gpu: cleared pending error before texture upload", "texture", tx.Name, "code", code)
	}
	tx.ctx.Dev.TexImage2D(target, tx.Format.InternalFormat(tx.ColorSpace), size.X, size.Y, dataFormat, tx.Type.DataType(), data)
	if code := tx.ctx.CheckError(); code != NoError {
		return &TextureUploadError{Name: tx.Name, Format: tx.Format, Type: tx.Type, Code: code}
	}
	tx.size = size
	return nil
}

// Resize reallocates the storage of a 2D texture at the new size,
// keeping the handle, format and parameters. The content is undefined.
// It does nothing if the size is unchanged.
func (tx *Texture) Resize(size image.Point) error {
	if tx.Target != Texture2D {
		return fmt.Errorf("gpu: texture %q: only 2D textures can be resized", tx.Name)
	}
	if size == tx.size {
		return nil
	}
	dataFormat := tx.Format.DataFormat()
	if tx.Format == RGB {
		dataFormat = RGBA.DataFormat()
	}
	return tx.allocate(Texture2D, size, dataFormat, nil)
}

// SetWrapMode sets the texture coordinate wrapping on all axes.
func (tx *Texture) SetWrapMode(w Wrappings) {
	tx.bind()
	dev := tx.ctx.Dev
	dev.TexParameteri(tx.Target, ParamWrapS, w.Value())
	dev.TexParameteri(tx.Target, ParamWrapT, w.Value())
	if tx.Target == TextureCubeMap {
		dev.TexParameteri(tx.Target, ParamWrapR, w.Value())
	}
}

// SetFiltering sets the minification and magnification filter.
func (tx *Texture) SetFiltering(f Filters) {
	tx.bind()
	tx.ctx.Dev.TexParameteri(tx.Target, ParamMinFilter, f.Value())
	tx.ctx.Dev.TexParameteri(tx.Target, ParamMagFilter, f.Value())
}

// SetBorder sets the border color used with [ClampToBorder].
func (tx *Texture) SetBorder(color mgl32.Vec4) {
	tx.bind()
	tx.ctx.Dev.TexParameterfv(tx.Target, ParamBorderColor, color[:])
}

// SetCompare turns on depth comparison sampling with the given function,
// so that a shadow sampler returns the comparison result. Always turns
// it off.
func (tx *Texture) SetCompare(f CompareFuncs) {
	tx.bind()
	if f == Always {
		tx.ctx.Dev.TexParameteri(tx.Target, ParamCompareMode, ValueCompareNone)
		return
	}
	tx.ctx.Dev.TexParameteri(tx.Target, ParamCompareMode, ValueCompareRefToTexture)
	tx.ctx.Dev.TexParameteri(tx.Target, ParamCompareFunc, int32(f))
}

// bind binds the texture on unit 0 for configuration.
func (tx *Texture) bind() {
	tx.Bind(0)
}

// Bind binds the texture to its target on the given texture unit,
// unless it is already bound there.
func (tx *Texture) Bind(unit int) {
	tx.ctx.BindTexture(unit, tx.Target, tx.handle)
}

// Size returns the size of the texture storage.
func (tx *Texture) Size() image.Point {
	return tx.size
}

// Handle returns the device handle, 0 once released.
func (tx *Texture) Handle() uint32 {
	return tx.handle
}

// Release deletes the texture. It is safe to call more than once.
func (tx *Texture) Release() {
	if tx == nil || tx.handle == 0 {
		return
	}
	tx.ctx.forgetTexture(tx.handle)
	tx.ctx.Dev.DeleteTexture(tx.handle)
	slog.Debug("gpu: released texture", "texture", tx.Name, "handle", tx.handle)
	tx.handle = 0
}
