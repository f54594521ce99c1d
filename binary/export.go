package binary

import (
	"fmt"

	"github.com/ralphmorton/wisp/wasm"
)

// decodeExport decodes one export entry. Only function exports
// (kind 0x00) are supported by this subset.
func decodeExport(r *reader) (wasm.Export, error) {
	name, err := r.takeName()
	if err != nil {
		return wasm.Export{}, fmt.Errorf("read export name: %w", err)
	}
	kind, err := r.takeU8()
	if err != nil {
		return wasm.Export{}, fmt.Errorf("read export kind: %w", err)
	}
	if kind != wasm.ExportKindFunc {
		return wasm.Export{}, fmt.Errorf("unsupported export kind %#x", kind)
	}
	index, err := r.takeULEB32()
	if err != nil {
		return wasm.Export{}, fmt.Errorf("read export index: %w", err)
	}
	return wasm.Export{Name: name, Kind: kind, Index: index}, nil
}

func decodeExportSection(r *reader) ([]wasm.Export, error) {
	count, err := r.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidExportSection, err)
	}
	ret := make([]wasm.Export, count)
	seen := make(map[string]bool, count)
	for i := range ret {
		exp, err := decodeExport(r)
		if err != nil {
			return nil, fmt.Errorf("%w: export %d: %v", wasm.ErrInvalidExportSection, i, err)
		}
		if seen[exp.Name] {
			return nil, fmt.Errorf("%w: duplicate export name %q", wasm.ErrInvalidExportSection, exp.Name)
		}
		seen[exp.Name] = true
		ret[i] = exp
	}
	return ret, nil
}
