// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gogpuhost

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/showcase"
)

// Config configures the window and the renderer it hosts.
type Config struct {
	Title  string
	Width  int
	Height int

	// CameraPosition is the initial eye position.
	CameraPosition mgl32.Vec3

	// OrbitStep is the horizontal mouse movement, in pixels, fed to the
	// camera every frame while the pointer is locked.
	OrbitStep float32

	// Options are passed to showcase.NewRenderer. The device provider is
	// appended by the host.
	Options []showcase.Option
}

// DefaultConfig returns an 800x600 window with the camera 20 units back.
func DefaultConfig() Config {
	return Config{
		Title:          "showcase",
		Width:          800,
		Height:         600,
		CameraPosition: mgl32.Vec3{0, 0, 20},
		OrbitStep:      2,
	}
}

// host holds the state shared by the gogpu callbacks. All callbacks run
// on the gogpu main thread.
type host struct {
	cfg     Config
	surface *FrameSurface
	app     *showcase.Application

	// frames counts submitted frames; skipped frames are not counted.
	frames uint64
}

func newHost(cfg Config) *host {
	return &host{cfg: cfg}
}

// init creates the renderer on the provider's device.
func (h *host) init(provider gpucontext.DeviceProvider, width, height uint32) error {
	h.surface = NewFrameSurface(provider.SurfaceFormat())
	opts := append([]showcase.Option{}, h.cfg.Options...)
	opts = append(opts, showcase.WithDeviceProvider(provider))

	r := showcase.NewRenderer(h.surface, opts...)
	cam := showcase.NewCamera(width, height, h.cfg.CameraPosition)
	app := showcase.NewApplication(r, cam)
	if err := app.Initialize(width, height); err != nil {
		r.Destroy()
		return err
	}
	h.app = app
	showcase.Logger().Info("gogpuhost: renderer ready",
		"width", width, "height", height, "format", r.Format())
	return nil
}

// frame renders one frame into view. The renderer is created on the first
// frame that has a provider and a non-empty size.
func (h *host) frame(provider gpucontext.DeviceProvider, view any, width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	w, ht := uint32(width), uint32(height)

	if h.app == nil {
		if provider == nil {
			return nil
		}
		if err := h.init(provider, w, ht); err != nil {
			return fmt.Errorf("gogpuhost: %w", err)
		}
	} else if rw, rh := h.app.Renderer().Size(); rw != w || rh != ht {
		if err := h.app.Resize(w, ht); err != nil {
			return fmt.Errorf("gogpuhost: resize: %w", err)
		}
	}

	h.surface.SetFrame(view)
	if h.app.Mouse().Locked() {
		h.app.Mouse().Add(h.cfg.OrbitStep, 0)
	}
	before := h.app.Renderer().Stats().FramesSubmitted
	if err := h.app.Frame(); err != nil {
		return err
	}
	if h.app.Renderer().Stats().FramesSubmitted > before {
		h.frames++
	}
	return nil
}

// toggleLock flips the pointer lock and reports the new state.
func (h *host) toggleLock() bool {
	if h.app == nil {
		return false
	}
	m := h.app.Mouse()
	m.SetLocked(!m.Locked())
	return m.Locked()
}

func (h *host) close() {
	if h.app != nil {
		h.app.Destroy()
		h.app = nil
	}
}

// Run opens a window and renders until it is closed.
func Run(cfg Config) error {
	h := newHost(cfg)
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(true))

	var frameErr error
	app.OnDraw(func(dc *gogpu.Context) {
		if frameErr != nil {
			return
		}
		if h.frames == 0 && h.app == nil {
			showcase.Logger().Info("gogpuhost: backend", "name", dc.Backend())
		}
		err := h.frame(app.GPUContextProvider(), dc.SurfaceView(), dc.Width(), dc.Height())
		if err != nil {
			frameErr = err
			app.Quit()
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key != gpucontext.KeySpace {
			return
		}
		showcase.Logger().Info("gogpuhost: pointer lock", "locked", h.toggleLock())
	})

	app.OnClose(h.close)

	if err := app.Run(); err != nil {
		return err
	}
	return frameErr
}
