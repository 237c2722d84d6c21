// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj parses the Wavefront OBJ file format (*.obj) into
// [shape.Mesh] values. Positions, texture coordinates, normals and
// polygonal faces are supported; materials are only used to split
// objects into meshes. Basic format info:
// https://en.wikipedia.org/wiki/Wavefront_.obj_file
package obj

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"glitter.dev/glitter/base/errors"
	"glitter.dev/glitter/shape"
)

// ErrNoMeshes is wrapped by the [LoadError] of a file
// that has no faces.
var ErrNoMeshes = errors.New("no meshes in file")

// LoadError is returned when a model file can not be read or parsed,
// or has no meshes.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("obj: loading model %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Open reads the OBJ file at path and returns its meshes, one per
// object and material, triangulated, with identical vertices joined
// and tangent space computed.
func Open(path string) ([]*shape.Mesh, error) {
	t1 := time.Now()
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	dec := NewDecoder(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err := dec.Decode(f); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	t2 := time.Now()
	ms := dec.Meshes()
	t3 := time.Now()
	if len(ms) == 0 {
		return nil, &LoadError{Path: path, Err: ErrNoMeshes}
	}
	slog.Info("obj: loaded model", "path", path, "meshes", len(ms), "load", t2.Sub(t1), "processing", t3.Sub(t2), "total", t3.Sub(t1))
	return ms, nil
}

// Decode parses OBJ data from r and returns its meshes, as [Open] does.
// The name is used for faces outside of any object.
func Decode(r io.Reader, name string) ([]*shape.Mesh, error) {
	dec := NewDecoder(name)
	if err := dec.Decode(r); err != nil {
		return nil, err
	}
	ms := dec.Meshes()
	if len(ms) == 0 {
		return nil, ErrNoMeshes
	}
	return ms, nil
}

// Decoder contains the data decoded from an OBJ file.
type Decoder struct {
	// Name is used for faces given before any object or group.
	Name string

	// Objects are the decoded objects, in file order.
	Objects []Object

	// Vertices, Normals and UVs are the indexed vertex data.
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	UVs      []mgl32.Vec2

	// Warnings are messages about unsupported content.
	Warnings []string

	line       int
	objCurrent *Object
	matCurrent string
}

// Object is one decoded object or group.
type Object struct {
	Name  string
	Faces []Face
}

// Face is one polygon, with indexes into the decoder arrays.
// UV and normal indexes are -1 when absent.
type Face struct {
	Vertices []int
	UVs      []int
	Normals  []int
	Material string
}

const blanks = "\r\n\t "

// NewDecoder returns a new empty decoder.
func NewDecoder(name string) *Decoder {
	return &Decoder{Name: name}
}

// Decode reads and decodes all lines of r.
func (dec *Decoder) Decode(r io.Reader) error {
	bufin := bufio.NewReader(r)
	dec.line = 1
	for {
		line, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if perr := dec.parseLine(strings.Trim(line, blanks)); perr != nil {
			return perr
		}
		if err == io.EOF {
			break
		}
		dec.line++
	}
	for _, w := range dec.Warnings {
		slog.Debug("obj: " + w)
	}
	return nil
}

func (dec *Decoder) formatError(msg string) error {
	return fmt.Errorf("line %d: %s", dec.line, msg)
}

func (dec *Decoder) appendWarn(msg string) {
	dec.Warnings = append(dec.Warnings, fmt.Sprintf("line %d: %s", dec.line, msg))
}

// parseLine dispatches one line to the parser of its type.
func (dec *Decoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "o", "g":
		return dec.parseObject(fields[1:])
	case "v":
		v, err := dec.parseFloats(fields[1:], 3, "v")
		if err != nil {
			return err
		}
		dec.Vertices = append(dec.Vertices, mgl32.Vec3{v[0], v[1], v[2]})
	case "vn":
		v, err := dec.parseFloats(fields[1:], 3, "vn")
		if err != nil {
			return err
		}
		dec.Normals = append(dec.Normals, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := dec.parseFloats(fields[1:], 2, "vt")
		if err != nil {
			return err
		}
		dec.UVs = append(dec.UVs, mgl32.Vec2{v[0], v[1]})
	case "f":
		return dec.parseFace(fields[1:])
	case "usemtl":
		if len(fields) < 2 {
			return dec.formatError("usemtl with no name")
		}
		dec.matCurrent = fields[1]
	case "s", "mtllib":
	default:
		dec.appendWarn("field not supported: " + fields[0])
	}
	return nil
}

func (dec *Decoder) parseObject(fields []string) error {
	name := fmt.Sprintf("%s_%d", dec.Name, len(dec.Objects))
	if len(fields) > 0 {
		name = fields[0]
	}
	dec.Objects = append(dec.Objects, Object{Name: name})
	dec.objCurrent = &dec.Objects[len(dec.Objects)-1]
	return nil
}

func (dec *Decoder) parseFloats(fields []string, n int, kind string) ([]float32, error) {
	if len(fields) < n {
		return nil, dec.formatError(fmt.Sprintf("less than %d values in %q line", n, kind))
	}
	vs := make([]float32, n)
	for i, f := range fields[:n] {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, dec.formatError(err.Error())
		}
		vs[i] = float32(v)
	}
	return vs, nil
}

// index resolves a 1-based OBJ index, where negative values count
// back from the last of the n items parsed so far.
func (dec *Decoder) index(s string, n int, kind string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, dec.formatError(err.Error())
	}
	switch {
	case v > 0:
		v--
	case v < 0:
		v += n
	default:
		return 0, dec.formatError("face " + kind + " index equal to 0")
	}
	if v < 0 || v >= n {
		return 0, dec.formatError(fmt.Sprintf("face %s index %s out of range", kind, s))
	}
	return v, nil
}

// parseFace parses a face description:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *Decoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return dec.formatError("face with less than 3 vertices")
	}
	if dec.objCurrent == nil {
		// faces before any o or g line
		dec.Objects = append(dec.Objects, Object{Name: dec.Name})
		dec.objCurrent = &dec.Objects[len(dec.Objects)-1]
	}
	face := Face{
		Vertices: make([]int, len(fields)),
		UVs:      make([]int, len(fields)),
		Normals:  make([]int, len(fields)),
		Material: dec.matCurrent,
	}
	for pos, f := range fields {
		parts := strings.Split(f, "/")
		var err error
		if face.Vertices[pos], err = dec.index(parts[0], len(dec.Vertices), "vertex"); err != nil {
			return err
		}
		face.UVs[pos] = -1
		if len(parts) > 1 && parts[1] != "" {
			if face.UVs[pos], err = dec.index(parts[1], len(dec.UVs), "uv"); err != nil {
				return err
			}
		}
		face.Normals[pos] = -1
		if len(parts) > 2 && parts[2] != "" {
			if face.Normals[pos], err = dec.index(parts[2], len(dec.Normals), "normal"); err != nil {
				return err
			}
		}
	}
	dec.objCurrent.Faces = append(dec.objCurrent.Faces, face)
	return nil
}

// vertexKey identifies a joined vertex. Vertices without a normal
// in the file get the flat normal of their face, so face is set for
// them and they are only joined within that face.
type vertexKey struct {
	v, uv, n int
	face     int
}

// Meshes builds the meshes of the decoded objects: one for each run of
// faces with the same material within an object, named after the object
// with a "_n" suffix for all but the first. Polygons are
// triangulated as fans, identical vertices are joined, missing normals
// are set to the face normal, and tangents are computed.
func (dec *Decoder) Meshes() []*shape.Mesh {
	var ms []*shape.Mesh
	for oi := range dec.Objects {
		ob := &dec.Objects[oi]
		var cur *shape.Mesh
		var verts []shape.Vertex
		var joined map[vertexKey]uint32
		material := ""
		part := 0
		finish := func() {
			if cur == nil {
				return
			}
			*cur = *shape.NewMesh(cur.Name, verts, cur.Indices)
			shape.ComputeTangents(cur)
			ms = append(ms, cur)
		}
		for fi := range ob.Faces {
			face := &ob.Faces[fi]
			if cur == nil || face.Material != material {
				finish()
				name := ob.Name
				if part > 0 {
					name = fmt.Sprintf("%s_%d", ob.Name, part)
				}
				part++
				cur = &shape.Mesh{Name: name}
				verts = nil
				joined = map[vertexKey]uint32{}
				material = face.Material
			}
			flat := shape.FaceNormal(dec.Vertices[face.Vertices[0]], dec.Vertices[face.Vertices[1]], dec.Vertices[face.Vertices[2]])
			idx := func(pos int) uint32 {
				k := vertexKey{v: face.Vertices[pos], uv: face.UVs[pos], n: face.Normals[pos], face: -1}
				if k.n < 0 {
					k.face = fi
				}
				if i, ok := joined[k]; ok {
					return i
				}
				vt := shape.Vertex{Position: dec.Vertices[k.v], Normal: flat}
				if k.n >= 0 {
					vt.Normal = dec.Normals[k.n]
				}
				if k.uv >= 0 {
					vt.TexCoord = dec.UVs[k.uv]
				}
				i := uint32(len(verts))
				verts = append(verts, vt)
				joined[k] = i
				return i
			}
			// fan: (0, i-1, i)
			for i := 2; i < len(face.Vertices); i++ {
				cur.Indices = append(cur.Indices, idx(0), idx(i-1), idx(i))
			}
		}
		finish()
	}
	return ms
}
