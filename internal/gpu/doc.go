// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu holds the hal-level rendering code for showcase.
//
// Everything here talks to a [hal.Device] and [hal.Queue] directly. The
// root package owns device acquisition and the frame loop; this package
// owns the per-primitive render pipelines and their buffers.
//
// # Batches
//
// A batch draws one primitive kind with one pipeline:
//
//   - LineBatch: colored 3D line segments, line-list topology
//   - InstanceBatch: a fixed base shape (quad or cube) replicated with a
//     per-instance model matrix, triangle-strip topology
//   - MeshBatch: an indexed mesh drawn once per panel transform, each
//     draw selecting its own uniform slot with a dynamic offset
//
// All batches share the same uniform block layout
//
//	model      mat4x4<f32>   offset   0
//	view       mat4x4<f32>   offset  64
//	projection mat4x4<f32>   offset 128
//	time       f32           offset 192
//	padding    3 x f32       offset 196
//
// for a total of 208 bytes. The shader computes
// projection * view * model * instance per vertex; nothing is
// pre-multiplied on the CPU.
//
// # Shaders
//
// WGSL sources live in shaders/ and are embedded at build time. The
// [ResourceManager] validates every source with naga before it reaches the
// device and can hand the device SPIR-V instead of WGSL.
//
// [hal.Device]: https://pkg.go.dev/github.com/gogpu/wgpu/hal#Device
// [hal.Queue]: https://pkg.go.dev/github.com/gogpu/wgpu/hal#Queue
package gpu
