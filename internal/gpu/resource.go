// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/sync/errgroup"
)

//go:embed shaders/*.wgsl
var shaderFS embed.FS

// Shader names known to the embedded source set.
const (
	ShaderLine3D   = "line3d"
	ShaderInstance = "instance"
	ShaderMesh     = "mesh"
)

// ErrShaderNotFound is returned when no source exists for a shader name.
var ErrShaderNotFound = errors.New("gpu: shader source not found")

// ShaderMode selects what the device receives when a module is created.
type ShaderMode uint8

const (
	// ShaderModeWGSL passes the WGSL text to the device. The source is still
	// compiled by naga first so syntax errors surface with the shader name.
	ShaderModeWGSL ShaderMode = iota

	// ShaderModeSPIRV passes the SPIR-V words produced by naga.
	ShaderModeSPIRV
)

// String returns the mode name.
func (m ShaderMode) String() string {
	switch m {
	case ShaderModeWGSL:
		return "wgsl"
	case ShaderModeSPIRV:
		return "spirv"
	default:
		return fmt.Sprintf("ShaderMode(%d)", m)
	}
}

// compiledShader is a validated shader source with its SPIR-V translation.
type compiledShader struct {
	source string
	spirv  []uint32
}

// ResourceManager reads shader sources by name and turns them into shader
// modules. Sources come from an optional directory on disk first and the
// embedded shaders/ set second. Compiled results are cached; the modules it
// creates belong to the caller.
//
// ResourceManager is safe for concurrent use.
type ResourceManager struct {
	mode ShaderMode
	dir  string

	mu    sync.Mutex
	cache map[string]*compiledShader
}

// NewResourceManager creates a manager. An empty dir uses only the
// embedded sources.
func NewResourceManager(mode ShaderMode, dir string) *ResourceManager {
	return &ResourceManager{
		mode:  mode,
		dir:   dir,
		cache: make(map[string]*compiledShader),
	}
}

// Mode returns the shader mode.
func (rm *ResourceManager) Mode() ShaderMode { return rm.mode }

// Source returns the WGSL text for name.
func (rm *ResourceManager) Source(name string) (string, error) {
	file := name + ".wgsl"
	if rm.dir != "" {
		data, err := os.ReadFile(filepath.Join(rm.dir, file))
		switch {
		case err == nil:
			return string(data), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("read shader %q: %w", name, err)
		}
	}
	data, err := fs.ReadFile(shaderFS, "shaders/"+file)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrShaderNotFound, name)
	}
	return string(data), nil
}

// compile validates the named source with naga and caches the result.
func (rm *ResourceManager) compile(name string) (*compiledShader, error) {
	rm.mu.Lock()
	cs, ok := rm.cache[name]
	rm.mu.Unlock()
	if ok {
		return cs, nil
	}

	src, err := rm.Source(name)
	if err != nil {
		return nil, err
	}
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile shader %q: %w", name, err)
	}
	cs = &compiledShader{source: src, spirv: spirvWords(spirvBytes)}

	rm.mu.Lock()
	rm.cache[name] = cs
	rm.mu.Unlock()
	slogger().Debug("shader compiled", "name", name, "spirv_words", len(cs.spirv))
	return cs, nil
}

// Preload compiles the named sources concurrently. The first error is
// returned; sources that compiled stay cached.
func (rm *ResourceManager) Preload(names ...string) error {
	var g errgroup.Group
	for _, name := range names {
		g.Go(func() error {
			_, err := rm.compile(name)
			return err
		})
	}
	return g.Wait()
}

// LoadShader compiles the named source and creates a shader module on
// device. The label of the module is the shader name.
func (rm *ResourceManager) LoadShader(device hal.Device, name string) (hal.ShaderModule, error) {
	cs, err := rm.compile(name)
	if err != nil {
		return nil, err
	}

	var src hal.ShaderSource
	if rm.mode == ShaderModeSPIRV {
		src.SPIRV = cs.spirv
	} else {
		src.WGSL = cs.source
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  name,
		Source: src,
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module %q: %w", name, err)
	}
	return module, nil
}

// spirvWords converts little-endian SPIR-V bytes to 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words
}
