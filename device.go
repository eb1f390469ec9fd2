// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package showcase

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan backend
)

var (
	errNoBackend  = errors.New("vulkan backend not available")
	errNoAdapters = errors.New("no GPU adapters found")
)

// vulkanInstance is the default InstanceFactory.
func vulkanInstance() (hal.Instance, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, errNoBackend
	}
	return backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
}

// future is a one-shot result delivered by a completion callback. wait
// blocks until the callback fires; there is no timeout and no
// cancellation.
type future[T any] struct {
	ch chan futureResult[T]
}

type futureResult[T any] struct {
	value T
	err   error
}

func newFuture[T any]() *future[T] {
	return &future[T]{ch: make(chan futureResult[T], 1)}
}

// complete delivers the result. Only the first call has an effect.
func (f *future[T]) complete(value T, err error) {
	select {
	case f.ch <- futureResult[T]{value: value, err: err}:
	default:
	}
}

func (f *future[T]) wait() (T, error) {
	r := <-f.ch
	return r.value, r.err
}

// requestAdapter enumerates the adapters of instance and completes with the
// preferred one: discrete, then integrated, then the first.
func requestAdapter(instance hal.Instance) *future[*hal.ExposedAdapter] {
	f := newFuture[*hal.ExposedAdapter]()
	go func() {
		adapters := instance.EnumerateAdapters(nil)
		if len(adapters) == 0 {
			f.complete(nil, errNoAdapters)
			return
		}
		f.complete(selectAdapter(adapters), nil)
	}()
	return f
}

func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	rank := func(a *hal.ExposedAdapter) int {
		switch a.Info.DeviceType {
		case gputypes.DeviceTypeDiscreteGPU:
			return 0
		case gputypes.DeviceTypeIntegratedGPU:
			return 1
		default:
			return 2
		}
	}
	best := &adapters[0]
	for i := 1; i < len(adapters); i++ {
		if rank(&adapters[i]) < rank(best) {
			best = &adapters[i]
		}
	}
	return best
}

// deviceQueue is what a device request completes with.
type deviceQueue struct {
	device hal.Device
	queue  hal.Queue
}

// requestDevice opens a device with default features and limits.
func requestDevice(adapter *hal.ExposedAdapter) *future[deviceQueue] {
	f := newFuture[deviceQueue]()
	go func() {
		openDev, err := adapter.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
		if err != nil {
			f.complete(deviceQueue{}, err)
			return
		}
		f.complete(deviceQueue{device: openDev.Device, queue: openDev.Queue}, nil)
	}()
	return f
}

// providerHAL extracts the hal device and queue from a host provider. The
// provider must expose HalDevice() any and HalQueue() any.
func providerHAL(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProvider)
	}
	return device, queue, nil
}
