// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gogpuhost

import (
	"errors"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/showcase"
)

// ErrNoFrameView is returned by AcquireView when the current frame did not
// supply a usable surface view.
var ErrNoFrameView = errors.New("gogpuhost: no surface view for this frame")

// FrameSurface is a showcase.Surface over the per-frame surface view of a
// gogpu window. gogpu owns the swapchain: Configure only records the size
// and Present is a no-op because gogpu presents after OnDraw returns.
type FrameSurface struct {
	format gputypes.TextureFormat
	view   hal.TextureView
	width  uint32
	height uint32
}

// NewFrameSurface creates a surface that reports format as its preferred
// color format.
func NewFrameSurface(format gputypes.TextureFormat) *FrameSurface {
	return &FrameSurface{format: format}
}

// SetFrame stores the view for the next AcquireView. Views that are not
// hal texture views are dropped, so the frame is skipped by the renderer.
func (s *FrameSurface) SetFrame(view any) {
	v, _ := view.(hal.TextureView)
	s.view = v
}

// Format implements showcase.Surface.
func (s *FrameSurface) Format() gputypes.TextureFormat { return s.format }

// Configure implements showcase.Surface.
func (s *FrameSurface) Configure(_ hal.Device, cfg showcase.SurfaceConfig) error {
	if cfg.Format != gputypes.TextureFormatUndefined {
		s.format = cfg.Format
	}
	s.width, s.height = cfg.Width, cfg.Height
	return nil
}

// AcquireView implements showcase.Surface. Each frame view is handed out
// once.
func (s *FrameSurface) AcquireView() (hal.TextureView, error) {
	if s.view == nil {
		return nil, ErrNoFrameView
	}
	v := s.view
	s.view = nil
	return v, nil
}

// Present implements showcase.Surface.
func (s *FrameSurface) Present(hal.Queue) error { return nil }

// Release implements showcase.Surface. The views belong to gogpu.
func (s *FrameSurface) Release(hal.Device) {
	s.view = nil
	s.width, s.height = 0, 0
}

// Size returns the configured size.
func (s *FrameSurface) Size() (uint32, uint32) { return s.width, s.height }
