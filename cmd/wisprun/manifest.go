package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ralphmorton/wisp/wasm"
)

// manifest is the YAML call manifest: which export to invoke and what
// i32 arguments to pass it. This subset only round-trips i32 values,
// matching the value kind this runtime actually executes.
type manifest struct {
	Export string  `yaml:"export"`
	Args   []int32 `yaml:"args"`
}

func loadManifest(path string) (*manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Export == "" {
		return nil, fmt.Errorf("manifest: export name is required")
	}
	return &m, nil
}

func (m *manifest) values() []wasm.Value {
	out := make([]wasm.Value, len(m.Args))
	for i, a := range m.Args {
		out[i] = wasm.I32(a)
	}
	return out
}
