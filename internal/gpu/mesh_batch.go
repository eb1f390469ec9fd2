// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// MaxPanels is the number of mesh panels drawable per frame. Each panel
// owns one uniform slot.
const MaxPanels = 16

// MeshBatch draws an indexed panel once per uploaded transform. Every draw
// writes its model matrix into its own uniform slot and binds that slot
// with a dynamic offset, so panels never overwrite each other's block
// before the queue executes.
type MeshBatch struct {
	kit pipelineKit

	vertBuf    hal.Buffer
	indexBuf   hal.Buffer
	indexCount uint32

	models []mgl32.Mat4
}

// NewMeshBatch creates an empty mesh batch.
func NewMeshBatch() *MeshBatch {
	return &MeshBatch{models: make([]mgl32.Mat4, 0, MaxPanels)}
}

func meshVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: meshVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // normal
				{Format: gputypes.VertexFormatFloat32x3, Offset: 24, ShaderLocation: 2}, // color
			},
		},
	}
}

// Init implements Batch.
func (b *MeshBatch) Init(env Env) error {
	err := b.kit.init(env, pipelineDesc{
		label:    "mesh",
		shader:   ShaderMesh,
		buffers:  meshVertexLayout(),
		topology: gputypes.PrimitiveTopologyTriangleList,
		slots:    MaxPanels,
	})
	if err != nil {
		return err
	}

	vertices := buildMeshVertices(panelVertices)
	vertBuf, err := createBuffer(env.Device, "mesh_vertices", uint64(len(vertices)),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	b.vertBuf = vertBuf
	env.Queue.WriteBuffer(b.vertBuf, 0, vertices)

	indices := buildIndices(panelIndices)
	indexBuf, err := createBuffer(env.Device, "mesh_indices", uint64(len(indices)),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	b.indexBuf = indexBuf
	env.Queue.WriteBuffer(b.indexBuf, 0, indices)
	b.indexCount = uint32(len(panelIndices)) //nolint:gosec // 6

	slogger().Debug("mesh batch ready",
		"vertices", len(panelVertices), "indices", b.indexCount, "max_panels", MaxPanels)
	return nil
}

// IndexCount returns the number of indices drawn per panel.
func (b *MeshBatch) IndexCount() uint32 { return b.indexCount }

// Count returns the number of panels recorded by the last Upload.
func (b *MeshBatch) Count() int { return len(b.models) }

// Upload records the panel transforms for the next Render. Transforms
// beyond MaxPanels are ignored. Returns the recorded count.
func (b *MeshBatch) Upload(models []mgl32.Mat4) int {
	n := int(clampCount(len(models), MaxPanels))
	b.models = append(b.models[:0], models[:n]...)
	return n
}

// Resize implements Batch.
func (b *MeshBatch) Resize(width, height uint32) { b.kit.resize(width, height) }

// Render implements Batch. One indexed draw per panel.
func (b *MeshBatch) Render(rp hal.RenderPassEncoder, frame Frame) int {
	if len(b.models) == 0 || b.kit.pipeline == nil {
		return 0
	}
	b.kit.applyFrame(frame)
	for i, model := range b.models {
		slot := uint32(i) //nolint:gosec // bounded by MaxPanels
		b.kit.uniforms.Model = model
		b.kit.writeUniforms(slot)
		b.kit.bind(rp, slot)
		rp.SetVertexBuffer(0, b.vertBuf, 0)
		rp.SetIndexBuffer(b.indexBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(b.indexCount, 1, 0, 0, 0)
	}
	return len(b.models)
}

// Destroy implements Batch.
func (b *MeshBatch) Destroy() {
	if b.indexBuf != nil {
		b.kit.device.DestroyBuffer(b.indexBuf)
		b.indexBuf = nil
	}
	if b.vertBuf != nil {
		b.kit.device.DestroyBuffer(b.vertBuf)
		b.vertBuf = nil
	}
	b.kit.destroy()
	b.models = b.models[:0]
	b.indexCount = 0
}
