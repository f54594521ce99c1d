package binary

import (
	"fmt"

	"github.com/ralphmorton/wisp/wasm"
)

// decodeImport decodes one import entry. Only function imports
// (kind 0x00) are supported by this subset.
func decodeImport(r *reader) (wasm.Import, error) {
	module, err := r.takeName()
	if err != nil {
		return wasm.Import{}, fmt.Errorf("read import module name: %w", err)
	}
	name, err := r.takeName()
	if err != nil {
		return wasm.Import{}, fmt.Errorf("read import item name: %w", err)
	}
	kind, err := r.takeU8()
	if err != nil {
		return wasm.Import{}, fmt.Errorf("read import kind: %w", err)
	}
	if kind != wasm.ImportKindFunc {
		return wasm.Import{}, fmt.Errorf("unsupported import kind %#x", kind)
	}
	typeIndex, err := r.takeULEB32()
	if err != nil {
		return wasm.Import{}, fmt.Errorf("read import func type index: %w", err)
	}
	return wasm.Import{Module: module, Name: name, Kind: kind, TypeIndex: typeIndex}, nil
}

func decodeImportSection(r *reader) ([]wasm.Import, error) {
	count, err := r.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidImportSection, err)
	}
	ret := make([]wasm.Import, count)
	for i := range ret {
		imp, err := decodeImport(r)
		if err != nil {
			return nil, fmt.Errorf("%w: import %d: %v", wasm.ErrInvalidImportSection, i, err)
		}
		ret[i] = imp
	}
	return ret, nil
}

func decodeFunctionSection(r *reader) ([]uint32, error) {
	count, err := r.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidFunctionSection, err)
	}
	ret := make([]uint32, count)
	for i := range ret {
		idx, err := r.takeULEB32()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", wasm.ErrInvalidFunctionSection, i, err)
		}
		ret[i] = idx
	}
	return ret, nil
}
