// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// LineBatch draws colored 3D line segments with a single line-list draw.
//
// The vertex buffer is allocated once for the batch capacity. Upload
// writes the pending lines from offset 0 and records the count for the
// next Render.
type LineBatch struct {
	kit      pipelineKit
	maxLines int

	vertBuf hal.Buffer
	staging []byte
	count   uint32
}

// NewLineBatch creates a batch that holds up to maxLines segments.
func NewLineBatch(maxLines int) *LineBatch {
	return &LineBatch{maxLines: maxLines}
}

// lineVertexLayout returns the position + color layout, per vertex.
func lineVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: colorVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // color
			},
		},
	}
}

// Init implements Batch.
func (b *LineBatch) Init(env Env) error {
	err := b.kit.init(env, pipelineDesc{
		label:    "line3d",
		shader:   ShaderLine3D,
		buffers:  lineVertexLayout(),
		topology: gputypes.PrimitiveTopologyLineList,
	})
	if err != nil {
		return err
	}

	size := uint64(b.maxLines) * lineBytes //nolint:gosec // capacity is positive
	vertBuf, err := createBuffer(env.Device, "line3d_vertices", size,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	b.vertBuf = vertBuf
	b.staging = make([]byte, 0, size)
	slogger().Debug("line batch ready", "max_lines", b.maxLines, "vertex_bytes", size)
	return nil
}

// Capacity returns the maximum number of lines per upload.
func (b *LineBatch) Capacity() int { return b.maxLines }

// Count returns the number of lines recorded by the last Upload.
func (b *LineBatch) Count() uint32 { return b.count }

// Upload writes lines to the vertex buffer. Lines beyond the capacity are
// ignored. Returns the uploaded count.
func (b *LineBatch) Upload(lines []Line) uint32 {
	b.count = clampCount(len(lines), b.maxLines)
	if b.count == 0 || b.vertBuf == nil {
		return b.count
	}
	n := int(b.count) * lineBytes
	b.staging = b.staging[:n]
	putLines(b.staging, lines[:b.count])
	b.kit.queue.WriteBuffer(b.vertBuf, 0, b.staging)
	return b.count
}

// Resize implements Batch.
func (b *LineBatch) Resize(width, height uint32) { b.kit.resize(width, height) }

// Render implements Batch. Vertex count is two per uploaded line.
func (b *LineBatch) Render(rp hal.RenderPassEncoder, frame Frame) int {
	if b.count == 0 || b.kit.pipeline == nil {
		return 0
	}
	b.kit.applyFrame(frame)
	b.kit.writeUniforms(0)
	b.kit.bind(rp, 0)
	rp.SetVertexBuffer(0, b.vertBuf, 0)
	rp.Draw(b.count*2, 1, 0, 0)
	return 1
}

// Destroy implements Batch.
func (b *LineBatch) Destroy() {
	if b.vertBuf != nil {
		b.kit.device.DestroyBuffer(b.vertBuf)
		b.vertBuf = nil
	}
	b.kit.destroy()
	b.count = 0
}
