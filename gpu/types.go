// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "fmt"

// The enum values below are the OpenGL values, so that a [Device]
// backed by OpenGL can pass them through unchanged.
// See: https://registry.khronos.org/OpenGL/api/GL/glcorearb.h

// ShaderStages are the programmable pipeline stages a shader unit is compiled for.
type ShaderStages uint32

const (
	VertexShader   ShaderStages = 0x8B31
	FragmentShader ShaderStages = 0x8B30
)

func (st ShaderStages) String() string {
	switch st {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStages(%#x)", uint32(st))
}

// UniformTypes are the GLSL types of active uniforms, as reported
// by program reflection.
type UniformTypes uint32

const (
	UniformInt             UniformTypes = 0x1404
	UniformFloat           UniformTypes = 0x1406
	UniformFloatVector2    UniformTypes = 0x8B50
	UniformFloatVector3    UniformTypes = 0x8B51
	UniformFloatVector4    UniformTypes = 0x8B52
	UniformBool            UniformTypes = 0x8B56
	UniformFloatMatrix3    UniformTypes = 0x8B5B
	UniformFloatMatrix4    UniformTypes = 0x8B5C
	UniformSampler2D       UniformTypes = 0x8B5E
	UniformSamplerCube     UniformTypes = 0x8B60
	UniformSampler2DShadow UniformTypes = 0x8B62
)

// IsSampler returns whether the uniform is a texture sampler,
// which is set to a texture unit index.
func (ut UniformTypes) IsSampler() bool {
	switch ut {
	case UniformSampler2D, UniformSamplerCube, UniformSampler2DShadow:
		return true
	}
	return false
}

func (ut UniformTypes) String() string {
	switch ut {
	case UniformInt:
		return "int"
	case UniformFloat:
		return "float"
	case UniformFloatVector2:
		return "vec2"
	case UniformFloatVector3:
		return "vec3"
	case UniformFloatVector4:
		return "vec4"
	case UniformBool:
		return "bool"
	case UniformFloatMatrix3:
		return "mat3"
	case UniformFloatMatrix4:
		return "mat4"
	case UniformSampler2D:
		return "sampler2D"
	case UniformSamplerCube:
		return "samplerCube"
	case UniformSampler2DShadow:
		return "sampler2DShadow"
	}
	return fmt.Sprintf("UniformTypes(%#x)", uint32(ut))
}

// UniformInfo describes one active uniform of a linked program.
type UniformInfo struct {
	// Name is the uniform name, with any trailing "[0]" of arrays removed.
	Name string

	// Location is the uniform location used for uploads.
	Location int32

	// Type is the GLSL type of the uniform.
	Type UniformTypes

	// Size is the array length, 1 for non-arrays.
	Size int
}

// TextureTargets are the binding targets of textures.
type TextureTargets uint32

const (
	Texture2D      TextureTargets = 0x0DE1
	TextureCubeMap TextureTargets = 0x8513

	// TextureCubeMapPositiveX is the first of the six cube-map face targets,
	// in the order +X, -X, +Y, -Y, +Z, -Z.
	TextureCubeMapPositiveX TextureTargets = 0x8515
)

// CubeFace returns the upload target for cube-map face i (0-5).
func CubeFace(i int) TextureTargets {
	return TextureCubeMapPositiveX + TextureTargets(i)
}

// TextureFormats are the pixel formats of a texture.
type TextureFormats int32

const (
	RGB TextureFormats = iota
	RGBA
	DepthComponent
)

func (tf TextureFormats) String() string {
	switch tf {
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	case DepthComponent:
		return "DepthComponent"
	}
	return fmt.Sprintf("TextureFormats(%d)", int32(tf))
}

// PixelTypes are the component types of texture pixel data.
type PixelTypes int32

const (
	UnsignedByte PixelTypes = iota
	Float
)

func (pt PixelTypes) String() string {
	switch pt {
	case UnsignedByte:
		return "UnsignedByte"
	case Float:
		return "Float"
	}
	return fmt.Sprintf("PixelTypes(%d)", int32(pt))
}

// ColorSpaces determine whether color texture data is stored
// as-is or decoded from display gamma when sampled.
type ColorSpaces int32

const (
	LinearSpace ColorSpaces = iota
	SRGB
)

// Wrappings are the texture coordinate wrap modes.
type Wrappings int32

const (
	ClampToBorder Wrappings = iota
	ClampToEdge
	Repeat
)

// Filters are the texture sampling filters.
type Filters int32

const (
	Nearest Filters = iota
	Linear
)

// CompareFuncs are the depth comparison functions used for the depth test
// and for shadow-map sampling.
type CompareFuncs uint32

const (
	Never        CompareFuncs = 0x0200
	Less         CompareFuncs = 0x0201
	Equal        CompareFuncs = 0x0202
	LessEqual    CompareFuncs = 0x0203
	Greater      CompareFuncs = 0x0204
	NotEqual     CompareFuncs = 0x0205
	GreaterEqual CompareFuncs = 0x0206
	Always       CompareFuncs = 0x0207
)

// Capabilities are the fixed-function features toggled with
// [Context.Enable] and [Context.Disable].
type Capabilities uint32

const (
	CullFace        Capabilities = 0x0B44
	DepthTest       Capabilities = 0x0B71
	FramebufferSRGB Capabilities = 0x8DB9
)

// ClearBits select the buffers cleared by [Device.Clear].
type ClearBits uint32

const (
	ClearDepth ClearBits = 0x0100
	ClearColor ClearBits = 0x4000
)

// BufferTargets are the binding targets of buffer objects.
type BufferTargets uint32

const (
	ArrayBuffer        BufferTargets = 0x8892
	ElementArrayBuffer BufferTargets = 0x8893
)

// Attachments are the framebuffer attachment points.
type Attachments uint32

const (
	ColorAttachment0       Attachments = 0x8CE0
	DepthAttachment        Attachments = 0x8D00
	DepthStencilAttachment Attachments = 0x821A
)

// Texture parameter names and values, for [Device.TexParameteri]
// and [Device.TexParameterfv].
const (
	ParamMagFilter   uint32 = 0x2800
	ParamMinFilter   uint32 = 0x2801
	ParamWrapS       uint32 = 0x2802
	ParamWrapT       uint32 = 0x2803
	ParamWrapR       uint32 = 0x8072
	ParamBorderColor uint32 = 0x1004
	ParamCompareMode uint32 = 0x884C
	ParamCompareFunc uint32 = 0x884D

	ValueNearest             int32 = 0x2600
	ValueLinear              int32 = 0x2601
	ValueRepeat              int32 = 0x2901
	ValueClampToBorder       int32 = 0x812D
	ValueClampToEdge         int32 = 0x812F
	ValueCompareRefToTexture int32 = 0x884E
	ValueCompareNone         int32 = 0
)

// Depth24Stencil8 is the renderbuffer storage format of combined
// depth and stencil attachments.
const Depth24Stencil8 uint32 = 0x88F0

// Framebuffer status values returned by [Device.CheckFramebufferStatus].
const (
	FramebufferComplete                    uint32 = 0x8CD5
	FramebufferIncompleteAttachment        uint32 = 0x8CD6
	FramebufferIncompleteMissingAttachment uint32 = 0x8CD7
	FramebufferUnsupported                 uint32 = 0x8CDD
)

// Pixel data formats and types as passed to [Device.TexImage2D].
const (
	glDepthComponent uint32 = 0x1902
	glRGB            uint32 = 0x1907
	glRGBA           uint32 = 0x1908
	glSRGB           uint32 = 0x8C40
	glSRGBAlpha      uint32 = 0x8C42
	glUnsignedByte   uint32 = 0x1401
	glFloat          uint32 = 0x1406
)

// Error codes returned by [Device.GetError].
const (
	NoError          uint32 = 0
	InvalidEnum      uint32 = 0x0500
	InvalidValue     uint32 = 0x0501
	InvalidOperation uint32 = 0x0502
	OutOfMemory      uint32 = 0x0505
)

// DataFormat returns the client pixel format for the texture format.
func (tf TextureFormats) DataFormat() uint32 {
	switch tf {
	case RGB:
		return glRGB
	case DepthComponent:
		return glDepthComponent
	}
	return glRGBA
}

// InternalFormat returns the storage format for the texture format
// in the given color space. Depth textures are always linear.
func (tf TextureFormats) InternalFormat(cs ColorSpaces) int32 {
	switch tf {
	case RGB:
		if cs == SRGB {
			return int32(glSRGB)
		}
		return int32(glRGB)
	case RGBA:
		if cs == SRGB {
			return int32(glSRGBAlpha)
		}
		return int32(glRGBA)
	}
	return int32(glDepthComponent)
}

// DataType returns the client pixel component type.
func (pt PixelTypes) DataType() uint32 {
	if pt == Float {
		return glFloat
	}
	return glUnsignedByte
}

// Value returns the texture parameter value for the wrap mode.
func (w Wrappings) Value() int32 {
	switch w {
	case ClampToBorder:
		return ValueClampToBorder
	case Repeat:
		return ValueRepeat
	}
	return ValueClampToEdge
}

// Value returns the texture parameter value for the filter.
func (f Filters) Value() int32 {
	if f == Nearest {
		return ValueNearest
	}
	return ValueLinear
}
