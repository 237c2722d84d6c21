// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"github.com/chewxy/math32"
)

// SRGBFromLinearComp converts a linear color component in [0,1]
// to the sRGB display encoding.
func SRGBFromLinearComp(lin float32) float32 {
	if lin <= 0.0031308 {
		return 12.92 * lin
	}
	return 1.055*math32.Pow(lin, 1/2.4) - 0.055
}

// SRGBToLinearComp converts an sRGB encoded color component in [0,1]
// to linear.
func SRGBToLinearComp(srgb float32) float32 {
	if srgb <= 0.04045 {
		return srgb / 12.92
	}
	return math32.Pow((srgb+0.055)/1.055, 2.4)
}

func compToUint8(v float32) uint8 {
	v = min(max(v, 0), 1)
	return uint8(v*0xff + 0.5)
}

// SetImageSRGBFromLinear converts the pixels of a linear color image
// to sRGB in place. Alpha is unchanged.
func SetImageSRGBFromLinear(img *image.RGBA) {
	const tof = 1.0 / 0xff
	for i := 0; i+3 < len(img.Pix); i += 4 {
		for c := range 3 {
			img.Pix[i+c] = compToUint8(SRGBFromLinearComp(float32(img.Pix[i+c]) * tof))
		}
	}
}

// ReadImage reads the pixels of the bound framebuffer in the rectangle
// (0,0)-size into an image, with the first row at the top.
func ReadImage(ctx *Context, size image.Point) *image.RGBA {
	pix := ctx.Dev.ReadPixels(0, 0, size.X, size.Y)
	img := image.NewRGBA(image.Rectangle{Max: size})
	row := 4 * size.X
	for y := range size.Y {
		src := pix[(size.Y-1-y)*row:]
		copy(img.Pix[y*img.Stride:y*img.Stride+row], src[:row])
	}
	return img
}
