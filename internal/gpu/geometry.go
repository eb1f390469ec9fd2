// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape selects the base geometry of an InstanceBatch.
type Shape uint8

const (
	// ShapeCube is a unit cube drawn as a 14-vertex triangle strip.
	ShapeCube Shape = iota

	// ShapeQuad is a unit square in the XY plane, 4-vertex triangle strip.
	ShapeQuad
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeCube:
		return "cube"
	case ShapeQuad:
		return "quad"
	default:
		return fmt.Sprintf("Shape(%d)", s)
	}
}

// colorVertexStride is the byte stride of a position + color vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec3<f32>) = 12 bytes (location 1)
const colorVertexStride = 24

// meshVertexStride is the byte stride of a mesh vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	normal   (vec3<f32>) = 12 bytes (location 1)
//	color    (vec3<f32>) = 12 bytes (location 2)
const meshVertexStride = 36

// instanceStride is the byte stride of one per-instance model matrix.
const instanceStride = 64

// quadCorners is the unit square, centered on the origin, in strip order.
var quadCorners = []mgl32.Vec3{
	{-0.5, -0.5, 0},
	{0.5, -0.5, 0},
	{-0.5, 0.5, 0},
	{0.5, 0.5, 0},
}

// cubeStrip covers all six faces of the unit cube with one triangle strip.
var cubeStrip = []mgl32.Vec3{
	{-0.5, 0.5, 0.5},   // front top left
	{0.5, 0.5, 0.5},    // front top right
	{-0.5, -0.5, 0.5},  // front bottom left
	{0.5, -0.5, 0.5},   // front bottom right
	{0.5, -0.5, -0.5},  // back bottom right
	{0.5, 0.5, 0.5},    // front top right
	{0.5, 0.5, -0.5},   // back top right
	{-0.5, 0.5, 0.5},   // front top left
	{-0.5, 0.5, -0.5},  // back top left
	{-0.5, -0.5, 0.5},  // front bottom left
	{-0.5, -0.5, -0.5}, // back bottom left
	{0.5, -0.5, -0.5},  // back bottom right
	{-0.5, 0.5, -0.5},  // back top left
	{0.5, 0.5, -0.5},   // back top right
}

// baseVertices returns the corner positions for s.
func (s Shape) baseVertices() []mgl32.Vec3 {
	if s == ShapeQuad {
		return quadCorners
	}
	return cubeStrip
}

// VertexCount returns the number of base vertices drawn per instance.
func (s Shape) VertexCount() uint32 {
	return uint32(len(s.baseVertices())) //nolint:gosec // 4 or 14
}

// buildShapeVertices encodes the base geometry of s. Each corner gets a
// color derived from its position so faces are distinguishable.
func buildShapeVertices(s Shape) []byte {
	corners := s.baseVertices()
	buf := make([]byte, len(corners)*colorVertexStride)
	for i, p := range corners {
		off := i * colorVertexStride
		putVec3(buf[off:], p)
		putVec3(buf[off+12:], p.Add(mgl32.Vec3{0.5, 0.5, 0.5}).Mul(0.8).Add(mgl32.Vec3{0.2, 0.2, 0.2}))
	}
	return buf
}

// Line is one colored segment.
type Line struct {
	Start mgl32.Vec3
	End   mgl32.Vec3
	Color mgl32.Vec3
}

// lineBytes is the encoded size of one Line: two colored vertices.
const lineBytes = 2 * colorVertexStride

// putLines encodes lines into dst, which must hold len(lines)*lineBytes.
func putLines(dst []byte, lines []Line) {
	for i := range lines {
		off := i * lineBytes
		putVec3(dst[off:], lines[i].Start)
		putVec3(dst[off+12:], lines[i].Color)
		putVec3(dst[off+24:], lines[i].End)
		putVec3(dst[off+36:], lines[i].Color)
	}
}

// putInstances encodes model matrices into dst, which must hold
// len(models)*instanceStride bytes.
func putInstances(dst []byte, models []mgl32.Mat4) {
	for i := range models {
		putMat4(dst[i*instanceStride:], models[i])
	}
}

// meshVertex is one vertex of an indexed mesh.
type meshVertex struct {
	position mgl32.Vec3
	normal   mgl32.Vec3
	color    mgl32.Vec3
}

// panelVertices is a 10 x 10 square in the XY plane facing +Z, one color
// per corner.
var panelVertices = []meshVertex{
	{mgl32.Vec3{-5, -5, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}}, // bottom left
	{mgl32.Vec3{-5, 5, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1}},  // top left
	{mgl32.Vec3{5, 5, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 1, 0}},   // top right
	{mgl32.Vec3{5, -5, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},  // bottom right
}

// panelIndices are two triangles covering the panel.
var panelIndices = []uint16{
	0, 1, 2,
	0, 2, 3,
}

// buildMeshVertices encodes mesh vertices.
func buildMeshVertices(verts []meshVertex) []byte {
	buf := make([]byte, len(verts)*meshVertexStride)
	for i, v := range verts {
		off := i * meshVertexStride
		putVec3(buf[off:], v.position)
		putVec3(buf[off+12:], v.normal)
		putVec3(buf[off+24:], v.color)
	}
	return buf
}

// buildIndices encodes uint16 indices, padded to a 4-byte multiple as
// WriteBuffer requires.
func buildIndices(indices []uint16) []byte {
	n := len(indices) * 2
	buf := make([]byte, (n+3)&^3)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}
