// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var allShaders = []string{ShaderLine3D, ShaderInstance, ShaderMesh}

func TestShaderSourcesContainExpectedContent(t *testing.T) {
	rm := NewResourceManager(ShaderModeWGSL, "")
	tests := []struct {
		name     string
		required []string
	}{
		{
			name: ShaderLine3D,
			required: []string{
				"@vertex", "@fragment", "vs_main", "fs_main",
				"@group(0) @binding(0)", "projection", "@location(1) color",
			},
		},
		{
			name: ShaderInstance,
			required: []string{
				"@vertex", "@fragment", "vs_main", "fs_main",
				"@location(2)", "@location(3)", "@location(4)", "@location(5)",
				"uniforms.time",
			},
		},
		{
			name: ShaderMesh,
			required: []string{
				"@vertex", "@fragment", "vs_main", "fs_main",
				"@location(2) color", "normal", "uniforms.model",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := rm.Source(tt.name)
			if err != nil {
				t.Fatalf("Source: %v", err)
			}
			for _, req := range tt.required {
				if !strings.Contains(src, req) {
					t.Errorf("%s shader missing %q", tt.name, req)
				}
			}
		})
	}
}

func TestShadersCompileToSPIRV(t *testing.T) {
	rm := NewResourceManager(ShaderModeSPIRV, "")
	for _, name := range allShaders {
		t.Run(name, func(t *testing.T) {
			cs, err := rm.compile(name)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if len(cs.spirv) == 0 {
				t.Fatal("SPIR-V output is empty")
			}
			if cs.spirv[0] != 0x07230203 {
				t.Errorf("SPIR-V magic = %#x, want 0x07230203", cs.spirv[0])
			}
		})
	}
}

func TestResourceManagerPreloadCaches(t *testing.T) {
	rm := NewResourceManager(ShaderModeWGSL, "")
	if err := rm.Preload(allShaders...); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	if len(rm.cache) != len(allShaders) {
		t.Errorf("cache holds %d entries, want %d", len(rm.cache), len(allShaders))
	}
	first, _ := rm.compile(ShaderMesh)
	second, _ := rm.compile(ShaderMesh)
	if first != second {
		t.Error("compile should return the cached result")
	}
}

func TestResourceManagerNotFound(t *testing.T) {
	rm := NewResourceManager(ShaderModeWGSL, t.TempDir())
	_, err := rm.Source("missing")
	if !errors.Is(err, ErrShaderNotFound) {
		t.Errorf("Source(missing) = %v, want ErrShaderNotFound", err)
	}
	if err := rm.Preload(ShaderLine3D, "missing"); !errors.Is(err, ErrShaderNotFound) {
		t.Errorf("Preload = %v, want ErrShaderNotFound", err)
	}
}

func TestResourceManagerDirOverride(t *testing.T) {
	dir := t.TempDir()
	embedded, err := NewResourceManager(ShaderModeWGSL, "").Source(ShaderLine3D)
	if err != nil {
		t.Fatal(err)
	}
	override := "// override\n" + embedded
	if err := os.WriteFile(filepath.Join(dir, ShaderLine3D+".wgsl"), []byte(override), 0o600); err != nil {
		t.Fatal(err)
	}

	rm := NewResourceManager(ShaderModeWGSL, dir)
	src, err := rm.Source(ShaderLine3D)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if !strings.HasPrefix(src, "// override") {
		t.Error("directory source should take precedence over the embedded one")
	}

	// Names absent from the directory fall back to the embedded set.
	if _, err := rm.Source(ShaderMesh); err != nil {
		t.Errorf("Source(mesh) fallback: %v", err)
	}
}

func TestResourceManagerCompileError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.wgsl"), []byte("fn (("), 0o600); err != nil {
		t.Fatal(err)
	}
	rm := NewResourceManager(ShaderModeWGSL, dir)
	_, err := rm.compile("broken")
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !strings.Contains(err.Error(), `"broken"`) {
		t.Errorf("error should name the shader: %v", err)
	}
}

func TestLoadShaderBothModes(t *testing.T) {
	device, _, cleanup := openNoopDevice(t)
	defer cleanup()

	for _, mode := range []ShaderMode{ShaderModeWGSL, ShaderModeSPIRV} {
		t.Run(mode.String(), func(t *testing.T) {
			rm := NewResourceManager(mode, "")
			module, err := rm.LoadShader(device, ShaderInstance)
			if err != nil {
				t.Fatalf("LoadShader: %v", err)
			}
			if module == nil {
				t.Fatal("nil shader module")
			}
			device.DestroyShaderModule(module)
		})
	}
}

func TestShaderModeString(t *testing.T) {
	tests := []struct {
		mode ShaderMode
		want string
	}{
		{ShaderModeWGSL, "wgsl"},
		{ShaderModeSPIRV, "spirv"},
		{ShaderMode(9), "ShaderMode(9)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
