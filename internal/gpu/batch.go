// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/wgpu/hal"
)

// Frame is the per-frame state every batch writes into its uniform block.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Time       float32
}

// Batch is the capability set shared by all primitive kinds. The data
// upload is kind-specific and lives on the concrete types.
type Batch interface {
	// Init builds the pipeline, uniform buffer, bind group and the
	// geometry buffers sized for the batch capacity.
	Init(env Env) error

	// Resize recomputes the seeded projection for a new viewport. The
	// result depends only on the final size. Once frames are rendered,
	// the projection carried by each Frame takes precedence.
	Resize(width, height uint32)

	// Render records the draws for the most recent upload and returns the
	// number of draw calls. Nothing is recorded when the upload was empty.
	Render(rp hal.RenderPassEncoder, frame Frame) int

	// Destroy releases every GPU object. Safe to call more than once.
	Destroy()
}

var (
	_ Batch = (*LineBatch)(nil)
	_ Batch = (*InstanceBatch)(nil)
	_ Batch = (*MeshBatch)(nil)
)

// clampCount returns min(n, capacity) as uint32.
func clampCount(n, capacity int) uint32 {
	if n > capacity {
		n = capacity
	}
	if n < 0 {
		n = 0
	}
	return uint32(n) //nolint:gosec // bounded by capacity
}
