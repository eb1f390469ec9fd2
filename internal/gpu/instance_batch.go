// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// InstanceBatch draws one base shape many times with a per-instance model
// matrix. The base geometry is uploaded once at Init; the instance buffer
// is sized for the batch capacity and rewritten by every Upload.
type InstanceBatch struct {
	kit          pipelineKit
	shape        Shape
	maxInstances int

	shapeBuf    hal.Buffer
	instanceBuf hal.Buffer
	staging     []byte
	count       uint32
}

// NewInstanceBatch creates a batch drawing shape with up to maxInstances
// instances per frame.
func NewInstanceBatch(shape Shape, maxInstances int) *InstanceBatch {
	return &InstanceBatch{shape: shape, maxInstances: maxInstances}
}

// instanceVertexLayout returns two buffer layouts: the base shape (per
// vertex) and the model matrix columns (per instance, locations 2..5).
func instanceVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: colorVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // color
			},
		},
		{
			ArrayStride: instanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 3},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 5},
			},
		},
	}
}

// Init implements Batch.
func (b *InstanceBatch) Init(env Env) error {
	label := b.shape.String()
	err := b.kit.init(env, pipelineDesc{
		label:    label,
		shader:   ShaderInstance,
		buffers:  instanceVertexLayout(),
		topology: gputypes.PrimitiveTopologyTriangleStrip,
	})
	if err != nil {
		return err
	}

	vertices := buildShapeVertices(b.shape)
	shapeBuf, err := createBuffer(env.Device, label+"_vertices", uint64(len(vertices)),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	b.shapeBuf = shapeBuf
	env.Queue.WriteBuffer(b.shapeBuf, 0, vertices)

	size := uint64(b.maxInstances) * instanceStride //nolint:gosec // capacity is positive
	instanceBuf, err := createBuffer(env.Device, label+"_instances", size,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	b.instanceBuf = instanceBuf
	b.staging = make([]byte, 0, size)

	slogger().Debug("instance batch ready",
		"shape", label, "base_vertices", b.shape.VertexCount(),
		"max_instances", b.maxInstances, "instance_bytes", size)
	return nil
}

// Shape returns the base shape.
func (b *InstanceBatch) Shape() Shape { return b.shape }

// Capacity returns the maximum number of instances per upload.
func (b *InstanceBatch) Capacity() int { return b.maxInstances }

// Count returns the number of instances recorded by the last Upload.
func (b *InstanceBatch) Count() uint32 { return b.count }

// Upload writes the instance transforms. Transforms beyond the capacity are
// ignored. Returns the uploaded count.
func (b *InstanceBatch) Upload(models []mgl32.Mat4) uint32 {
	b.count = clampCount(len(models), b.maxInstances)
	if b.count == 0 || b.instanceBuf == nil {
		return b.count
	}
	b.staging = b.staging[:int(b.count)*instanceStride]
	putInstances(b.staging, models[:b.count])
	b.kit.queue.WriteBuffer(b.instanceBuf, 0, b.staging)
	return b.count
}

// Resize implements Batch.
func (b *InstanceBatch) Resize(width, height uint32) { b.kit.resize(width, height) }

// Render implements Batch. One instanced draw: the base vertices times the
// uploaded instance count.
func (b *InstanceBatch) Render(rp hal.RenderPassEncoder, frame Frame) int {
	if b.count == 0 || b.kit.pipeline == nil {
		return 0
	}
	b.kit.applyFrame(frame)
	b.kit.writeUniforms(0)
	b.kit.bind(rp, 0)
	rp.SetVertexBuffer(0, b.shapeBuf, 0)
	rp.SetVertexBuffer(1, b.instanceBuf, 0)
	rp.Draw(b.shape.VertexCount(), b.count, 0, 0)
	return 1
}

// Destroy implements Batch.
func (b *InstanceBatch) Destroy() {
	if b.instanceBuf != nil {
		b.kit.device.DestroyBuffer(b.instanceBuf)
		b.instanceBuf = nil
	}
	if b.shapeBuf != nil {
		b.kit.device.DestroyBuffer(b.shapeBuf)
		b.shapeBuf = nil
	}
	b.kit.destroy()
	b.count = 0
}
