// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"
)

// CompileError is returned when a shader source fails to compile.
type CompileError struct {
	// Path is the file name (or source name) of the shader.
	Path string

	// Stage is the pipeline stage it was compiled for.
	Stage ShaderStages

	// Log is the compiler info log.
	Log string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("gpu: compiling %s shader %q failed: %s", e.Stage, e.Path, strings.TrimSpace(e.Log))
}

// LinkError is returned when a program fails to link.
type LinkError struct {
	// Program is the name of the shader program.
	Program string

	// Log is the linker info log.
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("gpu: linking program %q failed: %s", e.Program, strings.TrimSpace(e.Log))
}

// FramebufferIncompleteError is returned when a framebuffer
// is not complete after its attachments are set.
type FramebufferIncompleteError struct {
	// Name is the name of the framebuffer.
	Name string

	// Status is the device completeness status.
	Status uint32
}

func (e *FramebufferIncompleteError) Error() string {
	return fmt.Sprintf("gpu: framebuffer %q is incomplete: %s", e.Name, framebufferStatusString(e.Status))
}

func framebufferStatusString(st uint32) string {
	switch st {
	case FramebufferIncompleteAttachment:
		return "incomplete attachment"
	case FramebufferIncompleteMissingAttachment:
		return "missing attachment"
	case FramebufferUnsupported:
		return "unsupported"
	}
	return fmt.Sprintf("status %#x", st)
}

// MissingUniformError is returned when a uniform or sampler that is
// required is not an active uniform of the linked program.
type MissingUniformError struct {
	// Program is the name of the shader program.
	Program string

	// Name is the uniform name.
	Name string
}

func (e *MissingUniformError) Error() string {
	return fmt.Sprintf("gpu: program %q has no active uniform %q", e.Program, e.Name)
}

// LoadError is returned when a resource file cannot be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("gpu: loading %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// TextureUploadError is returned when the device rejects texture storage,
// typically for an unsupported combination of format and pixel type.
type TextureUploadError struct {
	Name   string
	Format TextureFormats
	Type   PixelTypes

	// Code is the device error code.
	Code uint32
}

func (e *TextureUploadError) Error() string {
	return fmt.Sprintf("gpu: texture %q: device rejected %s/%s storage (error %#x)", e.Name, e.Format, e.Type, e.Code)
}
