// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Target describes the attachments every batch pipeline renders into.
type Target struct {
	ColorFormat gputypes.TextureFormat
	DepthFormat gputypes.TextureFormat
	Width       uint32
	Height      uint32
}

// Env carries what a batch needs to build its GPU objects.
type Env struct {
	Device  hal.Device
	Queue   hal.Queue
	Shaders *ResourceManager
	Target  Target
}

// pipelineDesc is the kind-specific part of a batch pipeline.
type pipelineDesc struct {
	label    string
	shader   string
	buffers  []gputypes.VertexBufferLayout
	topology gputypes.PrimitiveTopology

	// slots is the number of uniform blocks in the uniform buffer, each
	// selected with a dynamic offset. Zero means one.
	slots uint32
}

// pipelineKit owns the objects every batch kind builds the same way:
// shader, layouts, render pipeline, uniform buffer and bind group.
type pipelineKit struct {
	device hal.Device
	queue  hal.Queue
	desc   pipelineDesc

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	uniforms Uniforms
	scratch  []byte
}

// alphaBlendState is standard alpha blending: color SrcAlpha /
// OneMinusSrcAlpha, alpha Zero / One.
func alphaBlendState() gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorZero,
			DstFactor: gputypes.BlendFactorOne,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}

// depthStencilState tests depth with Less and writes it. The stencil is
// never touched.
func depthStencilState(format gputypes.TextureFormat) *hal.DepthStencilState {
	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	return &hal.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: true,
		DepthCompare:      gputypes.CompareFunctionLess,
		StencilFront:      keep,
		StencilBack:       keep,
		StencilReadMask:   0x00,
		StencilWriteMask:  0x00,
	}
}

// uniformLayoutEntries is the single bind group entry shared by all
// batches: binding 0, a uniform buffer with a dynamic offset.
func uniformLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer: &gputypes.BufferBindingLayout{
				Type:             gputypes.BufferBindingTypeUniform,
				HasDynamicOffset: true,
				MinBindingSize:   UniformSize,
			},
		},
	}
}

// renderPipelineDescriptor assembles the pipeline descriptor for desc.
func renderPipelineDescriptor(desc pipelineDesc, layout hal.PipelineLayout, shader hal.ShaderModule, target Target) *hal.RenderPipelineDescriptor {
	blend := alphaBlendState()
	return &hal.RenderPipelineDescriptor{
		Label:  desc.label + "_pipeline",
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    desc.buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    target.ColorFormat,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: depthStencilState(target.DepthFormat),
		Primitive: gputypes.PrimitiveState{
			Topology: desc.topology,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
}

// slotCount returns the number of uniform slots, at least one.
func (d pipelineDesc) slotCount() uint32 {
	if d.slots == 0 {
		return 1
	}
	return d.slots
}

// init builds every object of the kit in dependency order. On failure the
// objects created so far stay in the kit and are released by destroy.
func (k *pipelineKit) init(env Env, desc pipelineDesc) error {
	if err := checkUniformAlignment(UniformSize); err != nil {
		return err
	}
	k.device = env.Device
	k.queue = env.Queue
	k.desc = desc

	shader, err := env.Shaders.LoadShader(k.device, desc.shader)
	if err != nil {
		return fmt.Errorf("load %s shader: %w", desc.label, err)
	}
	k.shader = shader

	bindLayout, err := k.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.label + "_uniform_layout",
		Entries: uniformLayoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("create %s uniform layout: %w", desc.label, err)
	}
	k.bindLayout = bindLayout

	pipeLayout, err := k.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{k.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create %s pipeline layout: %w", desc.label, err)
	}
	k.pipeLayout = pipeLayout

	pipeline, err := k.device.CreateRenderPipeline(renderPipelineDescriptor(desc, k.pipeLayout, k.shader, env.Target))
	if err != nil {
		return fmt.Errorf("create %s pipeline: %w", desc.label, err)
	}
	k.pipeline = pipeline

	slots := desc.slotCount()
	uniformBuf, err := createBuffer(k.device, desc.label+"_uniforms",
		uint64(slots)*uniformSlotStride,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	k.uniformBuf = uniformBuf

	k.uniforms = defaultUniforms(env.Target.Width, env.Target.Height)
	k.scratch = make([]byte, UniformSize)
	for slot := uint32(0); slot < slots; slot++ {
		k.writeUniforms(slot)
	}

	bindGroup, err := k.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  desc.label + "_bind",
		Layout: k.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: k.uniformBuf.NativeHandle(), Offset: 0, Size: UniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create %s bind group: %w", desc.label, err)
	}
	k.bindGroup = bindGroup

	slogger().Debug("batch pipeline created",
		"batch", desc.label, "uniform_slots", slots, "uniform_bytes", UniformSize)
	return nil
}

// resize recomputes the seeded projection for the new viewport and
// rewrites every slot. The next frame's projection replaces it.
func (k *pipelineKit) resize(width, height uint32) {
	k.uniforms.Projection = Perspective(width, height)
	if k.uniformBuf == nil {
		return
	}
	for slot := uint32(0); slot < k.desc.slotCount(); slot++ {
		k.writeUniforms(slot)
	}
}

// applyFrame copies the camera matrices and time into the CPU block.
func (k *pipelineKit) applyFrame(frame Frame) {
	k.uniforms.View = frame.View
	k.uniforms.Projection = frame.Projection
	k.uniforms.Time = frame.Time
}

// writeUniforms uploads the CPU block into the given slot.
func (k *pipelineKit) writeUniforms(slot uint32) {
	k.uniforms.put(k.scratch)
	k.queue.WriteBuffer(k.uniformBuf, uint64(slot)*uniformSlotStride, k.scratch)
}

// bind sets the pipeline and the bind group at the slot's dynamic offset.
func (k *pipelineKit) bind(rp hal.RenderPassEncoder, slot uint32) {
	rp.SetPipeline(k.pipeline)
	rp.SetBindGroup(0, k.bindGroup, []uint32{slot * uniformSlotStride})
}

// destroy releases the kit objects in reverse creation order. Safe to call
// on a partially built or already destroyed kit.
func (k *pipelineKit) destroy() {
	if k.device == nil {
		return
	}
	if k.bindGroup != nil {
		k.device.DestroyBindGroup(k.bindGroup)
		k.bindGroup = nil
	}
	if k.uniformBuf != nil {
		k.device.DestroyBuffer(k.uniformBuf)
		k.uniformBuf = nil
	}
	if k.pipeline != nil {
		k.device.DestroyRenderPipeline(k.pipeline)
		k.pipeline = nil
	}
	if k.pipeLayout != nil {
		k.device.DestroyPipelineLayout(k.pipeLayout)
		k.pipeLayout = nil
	}
	if k.bindLayout != nil {
		k.device.DestroyBindGroupLayout(k.bindLayout)
		k.bindLayout = nil
	}
	if k.shader != nil {
		k.device.DestroyShaderModule(k.shader)
		k.shader = nil
	}
}

// createBuffer creates a buffer and wraps the error with its label.
func createBuffer(device hal.Device, label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return buf, nil
}
