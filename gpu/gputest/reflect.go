// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gputest

import (
	"regexp"
	"strconv"
	"strings"

	"glitter.dev/glitter/gpu"
)

var (
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	structDecl   = regexp.MustCompile(`(?s)struct\s+(\w+)\s*\{(.*?)\}\s*;`)
	fieldDecl    = regexp.MustCompile(`(\w+)\s+([\w\s,\[\]]+);`)
	uniformDecl  = regexp.MustCompile(`uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
)

var glslTypes = map[string]gpu.UniformTypes{
	"int":             gpu.UniformInt,
	"float":           gpu.UniformFloat,
	"vec2":            gpu.UniformFloatVector2,
	"vec3":            gpu.UniformFloatVector3,
	"vec4":            gpu.UniformFloatVector4,
	"bool":            gpu.UniformBool,
	"mat3":            gpu.UniformFloatMatrix3,
	"mat4":            gpu.UniformFloatMatrix4,
	"sampler2D":       gpu.UniformSampler2D,
	"samplerCube":     gpu.UniformSamplerCube,
	"sampler2DShadow": gpu.UniformSampler2DShadow,
}

type field struct {
	typ  string
	name string
}

// ReflectUniforms returns the uniforms declared in the GLSL sources,
// as a linker would report them if all were used: uniforms of struct
// type are expanded into one entry per member ("light.position"),
// uniforms declared in more than one source are reported once, and
// locations are assigned in declaration order. Uniforms of unknown
// type are skipped.
func ReflectUniforms(srcs ...string) []gpu.UniformInfo {
	var us []gpu.UniformInfo
	seen := map[string]bool{}
	add := func(name, typ string, size int) {
		ut, ok := glslTypes[typ]
		if !ok || seen[name] {
			return
		}
		seen[name] = true
		us = append(us, gpu.UniformInfo{Name: name, Location: int32(len(us)), Type: ut, Size: size})
	}
	for _, src := range srcs {
		src = blockComment.ReplaceAllString(src, "")
		src = lineComment.ReplaceAllString(src, "")
		structs := map[string][]field{}
		for _, m := range structDecl.FindAllStringSubmatch(src, -1) {
			var fs []field
			for _, fm := range fieldDecl.FindAllStringSubmatch(m[2], -1) {
				for _, nm := range strings.Split(fm[2], ",") {
					if nm = strings.TrimSpace(nm); nm != "" {
						fs = append(fs, field{typ: fm[1], name: nm})
					}
				}
			}
			structs[m[1]] = fs
		}
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			typ, name := m[1], m[2]
			size := 1
			if m[3] != "" {
				size, _ = strconv.Atoi(m[3])
			}
			if fs, ok := structs[typ]; ok {
				for _, f := range fs {
					add(name+"."+f.name, f.typ, 1)
				}
				continue
			}
			add(name, typ, size)
		}
	}
	return us
}
