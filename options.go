// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/showcase/internal/gpu"
)

// Default capacities. Primitives recorded beyond them are dropped.
const (
	DefaultMaxLines     = 5000
	DefaultMaxInstances = 5000
)

// MaxPanels is the number of mesh panels drawable per frame.
const MaxPanels = gpu.MaxPanels

// Shape selects the base geometry of the instanced primitive.
type Shape = gpu.Shape

const (
	// ShapeCube draws every DrawRect as a unit cube.
	ShapeCube = gpu.ShapeCube

	// ShapeQuad draws every DrawRect as a unit square in the XY plane.
	ShapeQuad = gpu.ShapeQuad
)

// ShaderMode selects whether the device receives WGSL or SPIR-V.
type ShaderMode = gpu.ShaderMode

const (
	ShaderModeWGSL  = gpu.ShaderModeWGSL
	ShaderModeSPIRV = gpu.ShaderModeSPIRV
)

// DefaultClearColor is the color every frame starts from.
var DefaultClearColor = gputypes.Color{R: 0.05, G: 0.05, B: 0.05, A: 1}

// Option configures a Renderer or a Graphics during creation.
//
// Example:
//
//	r := showcase.NewRenderer(surface,
//	    showcase.WithMaxLines(10000),
//	    showcase.WithInstanceShape(showcase.ShapeQuad),
//	)
type Option func(*options)

// InstanceFactory creates the hal instance the renderer starts from.
type InstanceFactory func() (hal.Instance, error)

// options holds optional configuration.
type options struct {
	maxLines        int
	maxInstances    int
	shape           Shape
	instanceFactory InstanceFactory
	provider        gpucontext.DeviceProvider
	shaderMode      ShaderMode
	shaderDir       string
	clearColor      gputypes.Color
	scene           Scene
	colorFormat     gputypes.TextureFormat
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		maxLines:        DefaultMaxLines,
		maxInstances:    DefaultMaxInstances,
		shape:           ShapeCube,
		instanceFactory: vulkanInstance,
		shaderMode:      ShaderModeWGSL,
		clearColor:      DefaultClearColor,
		colorFormat:     gputypes.TextureFormatUndefined, // surface decides
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxLines sets the line capacity. Values below 1 are ignored.
func WithMaxLines(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLines = n
		}
	}
}

// WithMaxInstances sets the instance capacity. Values below 1 are ignored.
func WithMaxInstances(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxInstances = n
		}
	}
}

// WithInstanceShape selects the shape drawn by DrawRect.
func WithInstanceShape(s Shape) Option {
	return func(o *options) {
		o.shape = s
	}
}

// WithInstanceFactory replaces the Vulkan instance with one created by f.
// Tests pass a factory built on hal/noop.
//
// Example:
//
//	r := showcase.NewRenderer(surface, showcase.WithInstanceFactory(func() (hal.Instance, error) {
//	    return noop.API{}.CreateInstance(nil)
//	}))
func WithInstanceFactory(f InstanceFactory) Option {
	return func(o *options) {
		if f != nil {
			o.instanceFactory = f
		}
	}
}

// WithDeviceProvider shares the device of a host (e.g. a gogpu.App)
// instead of creating one. The provider must also expose HalDevice() and
// HalQueue() returning hal.Device and hal.Queue. The provider's surface
// format overrides the surface's own preference. Shared devices are never
// destroyed by the renderer.
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithShaderMode selects WGSL (default) or SPIR-V shader modules.
func WithShaderMode(m ShaderMode) Option {
	return func(o *options) {
		o.shaderMode = m
	}
}

// WithShaderDir loads shader sources from dir before falling back to the
// built-in ones. Files are named <shader>.wgsl.
func WithShaderDir(dir string) Option {
	return func(o *options) {
		o.shaderDir = dir
	}
}

// WithClearColor sets the color each frame is cleared to.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithScene populates Graphics at the start of every frame.
func WithScene(s Scene) Option {
	return func(o *options) {
		o.scene = s
	}
}

// WithColorFormat forces the swapchain color format.
func WithColorFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.colorFormat = f
	}
}
