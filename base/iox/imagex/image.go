// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
)

// CloneAsRGBA returns an RGBA copy of the supplied image,
// with bounds starting at 0,0.
func CloneAsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	bounds := src.Bounds()
	img := image.NewRGBA(image.Rectangle{Max: bounds.Size()})
	draw.Draw(img, img.Bounds(), src, bounds.Min, draw.Src)
	return img
}

// AsRGBA returns the image as an RGBA: if it already is one
// with tightly packed rows starting at 0,0, then it returns that
// image directly. Otherwise it returns a clone.
func AsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	return CloneAsRGBA(src)
}

// FlipV returns a copy of the image flipped vertically, as needed
// for texture uploads where row 0 is the bottom of the image.
func FlipV(src image.Image) *image.RGBA {
	return transform.FlipV(src)
}

// Pixels returns the tightly packed 8-bit RGBA pixel data of the image,
// and whether every pixel is fully opaque, in which case the alpha
// channel carries no information.
func Pixels(src image.Image) (pix []byte, size image.Point, opaque bool) {
	rgba := AsRGBA(src)
	size = rgba.Rect.Size()
	return rgba.Pix[:4*size.X*size.Y], size, rgba.Opaque()
}
