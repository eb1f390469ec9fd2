// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DepthFormat is the format of the depth attachment.
const DepthFormat = gputypes.TextureFormatDepth24Plus

// DepthTarget holds the single-sample depth texture the frame pass renders
// against. It is recreated when the surface size changes.
type DepthTarget struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// Ensure creates or recreates the depth texture for a w x h surface. If the
// size matches and the texture exists, this is a no-op. A zero dimension is
// raised to 1.
func (d *DepthTarget) Ensure(device hal.Device, w, h uint32) error {
	w, h = max(w, 1), max(h, 1)
	if d.width == w && d.height == h && d.tex != nil {
		return nil
	}
	d.Destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "depth",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	d.tex = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "depth_view",
	})
	if err != nil {
		d.Destroy(device)
		return fmt.Errorf("create depth view: %w", err)
	}
	d.view = view

	d.width = w
	d.height = h
	slogger().Debug("depth target ready", "width", w, "height", h)
	return nil
}

// View returns the depth view, or nil before Ensure.
func (d *DepthTarget) View() hal.TextureView { return d.view }

// Size returns the current texture size.
func (d *DepthTarget) Size() (uint32, uint32) { return d.width, d.height }

// Destroy releases the texture and view. Safe to call more than once.
func (d *DepthTarget) Destroy(device hal.Device) {
	if d.view != nil {
		device.DestroyTextureView(d.view)
		d.view = nil
	}
	if d.tex != nil {
		device.DestroyTexture(d.tex)
		d.tex = nil
	}
	d.width = 0
	d.height = 0
}
