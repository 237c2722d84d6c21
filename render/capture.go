// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"time"

	"glitter.dev/glitter/base/errors"
	"glitter.dev/glitter/base/iox/imagex"
	"glitter.dev/glitter/gpu"
)

// Capture returns the last rendered scene, before the present pass,
// encoded to sRGB.
func (gr *Graphics) Capture() (*image.RGBA, error) {
	if !gr.ready {
		return nil, errors.New("render: nothing to capture, scene not initialized")
	}
	gr.target.Bind()
	img := gpu.ReadImage(gr.ctx, gr.target.Size())
	gpu.SetImageSRGBFromLinear(img)
	return img, nil
}

// Screenshot saves the captured scene as a time-stamped PNG file
// in dir, and returns its path.
func (gr *Graphics) Screenshot(dir string) (string, error) {
	img, err := gr.Capture()
	if err != nil {
		return "", err
	}
	fn := filepath.Join(dir, fmt.Sprintf("glitter-%s.png", time.Now().Format("20060102-150405.000")))
	if err := imagex.Save(img, fn); err != nil {
		return "", err
	}
	slog.Info("render: saved screenshot", "path", fn)
	return fn, nil
}
