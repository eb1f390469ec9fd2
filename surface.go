// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// PresentMode selects how presented frames are queued.
type PresentMode uint8

const (
	// PresentModeFifo waits for vertical blank. Always supported.
	PresentModeFifo PresentMode = iota

	// PresentModeImmediate presents without waiting.
	PresentModeImmediate
)

// String returns the mode name.
func (m PresentMode) String() string {
	switch m {
	case PresentModeFifo:
		return "fifo"
	case PresentModeImmediate:
		return "immediate"
	default:
		return fmt.Sprintf("PresentMode(%d)", m)
	}
}

// SurfaceConfig is the swapchain configuration.
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	PresentMode PresentMode
}

// Surface is where frames end up: a window swapchain or an offscreen
// texture.
type Surface interface {
	// Format returns the preferred color format, or
	// TextureFormatUndefined if the surface has no preference.
	Format() gputypes.TextureFormat

	// Configure (re)creates the swapchain for cfg.
	Configure(device hal.Device, cfg SurfaceConfig) error

	// AcquireView returns the view to render the next frame into.
	AcquireView() (hal.TextureView, error)

	// Present hands the frame rendered into the acquired view back to the
	// surface. Called after the frame was submitted.
	Present(queue hal.Queue) error

	// Release destroys everything Configure created.
	Release(device hal.Device)
}

// ErrSurfaceNotConfigured is returned by AcquireView before Configure.
var ErrSurfaceNotConfigured = errors.New("showcase: surface not configured")

// OffscreenSurface renders into a texture owned by the surface. It backs
// headless runs and tests.
type OffscreenSurface struct {
	format gputypes.TextureFormat

	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32

	acquired  bool
	presented uint64
}

// NewOffscreenSurface creates an unconfigured offscreen surface.
func NewOffscreenSurface(format gputypes.TextureFormat) *OffscreenSurface {
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return &OffscreenSurface{format: format}
}

// Format implements Surface.
func (s *OffscreenSurface) Format() gputypes.TextureFormat { return s.format }

// Configure implements Surface. The texture is recreated on every call.
func (s *OffscreenSurface) Configure(device hal.Device, cfg SurfaceConfig) error {
	s.Release(device)
	if cfg.Format != gputypes.TextureFormatUndefined {
		s.format = cfg.Format
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "offscreen_color",
		Size:          hal.Extent3D{Width: cfg.Width, Height: cfg.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        s.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create offscreen texture: %w", err)
	}
	s.tex = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "offscreen_color_view",
	})
	if err != nil {
		s.Release(device)
		return fmt.Errorf("create offscreen view: %w", err)
	}
	s.view = view
	s.width, s.height = cfg.Width, cfg.Height
	return nil
}

// AcquireView implements Surface.
func (s *OffscreenSurface) AcquireView() (hal.TextureView, error) {
	if s.view == nil {
		return nil, ErrSurfaceNotConfigured
	}
	s.acquired = true
	return s.view, nil
}

// Present implements Surface. It only counts frames.
func (s *OffscreenSurface) Present(hal.Queue) error {
	if !s.acquired {
		return ErrSurfaceNotConfigured
	}
	s.acquired = false
	s.presented++
	return nil
}

// Release implements Surface.
func (s *OffscreenSurface) Release(device hal.Device) {
	if s.view != nil {
		device.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.tex != nil {
		device.DestroyTexture(s.tex)
		s.tex = nil
	}
	s.width, s.height = 0, 0
	s.acquired = false
}

// Texture returns the color texture, or nil before Configure.
func (s *OffscreenSurface) Texture() hal.Texture { return s.tex }

// Size returns the configured size.
func (s *OffscreenSurface) Size() (uint32, uint32) { return s.width, s.height }

// Presented returns the number of presented frames.
func (s *OffscreenSurface) Presented() uint64 { return s.presented }
