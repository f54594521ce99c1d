// Package store builds the executable Store from a decoded wasm.Module:
// the combined function index space, materialized linear memories with
// data segments applied, and the export-name lookup.
package store

import (
	"fmt"

	"github.com/ralphmorton/wisp/wasm"
)

// FuncKind distinguishes a resolved function's origin.
type FuncKind int

const (
	FuncInternal FuncKind = iota
	FuncExternal
)

// Func is a resolved entry in the function index space: either Internal
// (defined by the module's own code section) or External (an import,
// serviced by a host extern at call time).
type Func struct {
	Kind FuncKind
	Type wasm.FuncType

	// Internal
	Code wasm.Code

	// External
	ModuleName string
	ItemName   string
}

// Memory is a materialized linear memory: a zero-initialized byte buffer
// of Min*PageSize bytes, plus the declared optional maximum in pages.
type Memory struct {
	Bytes []byte
	Max   *uint32
}

// Store is the runtime-instantiated counterpart of a Module: the
// resolved function index space, materialized memories, and the
// export-name lookup. A Store holds code and type data borrowed from
// the Module it was built from; the Module must outlive the Store.
type Store struct {
	Funcs    []Func
	Memories []Memory
	Exports  map[string]uint32
}

// Build resolves a decoded Module into an executable Store, per the
// five construction steps: import resolution, local function
// resolution, memory allocation, export recording, and data segment
// application.
func Build(m *wasm.Module) (*Store, error) {
	funcs := make([]Func, 0, len(m.Imports)+len(m.Codes))

	for i, imp := range m.Imports {
		if imp.Kind != wasm.ImportKindFunc {
			continue
		}
		ft, err := lookupType(m, imp.TypeIndex)
		if err != nil {
			return nil, fmt.Errorf("import %d (%s.%s): %w", i, imp.Module, imp.Name, err)
		}
		funcs = append(funcs, Func{
			Kind:       FuncExternal,
			Type:       ft,
			ModuleName: imp.Module,
			ItemName:   imp.Name,
		})
	}

	for i, code := range m.Codes {
		if i >= len(m.Funcs) {
			return nil, fmt.Errorf("code %d: %w", i, wasm.ErrNoSuchFunc)
		}
		ft, err := lookupType(m, m.Funcs[i])
		if err != nil {
			return nil, fmt.Errorf("code %d: %w", i, err)
		}
		funcs = append(funcs, Func{
			Kind: FuncInternal,
			Type: ft,
			Code: code,
		})
	}

	memories := make([]Memory, len(m.Memory))
	for i, mt := range m.Memory {
		memories[i] = Memory{
			Bytes: make([]byte, uint64(mt.Min)*uint64(wasm.PageSize)),
			Max:   mt.Max,
		}
	}

	exports := make(map[string]uint32, len(m.Exports))
	for _, exp := range m.Exports {
		if exp.Kind != wasm.ExportKindFunc {
			continue
		}
		exports[exp.Name] = exp.Index
	}

	for i, seg := range m.Data {
		if seg.MemoryIndex >= uint32(len(memories)) {
			return nil, fmt.Errorf("data segment %d: %w", i, wasm.ErrNoSuchMemory)
		}
		mem := &memories[seg.MemoryIndex]
		end := uint64(seg.Offset) + uint64(len(seg.Init))
		if end > uint64(len(mem.Bytes)) {
			return nil, fmt.Errorf("data segment %d: %w", i, wasm.ErrMemoryAddressOutOfRange)
		}
		copy(mem.Bytes[seg.Offset:], seg.Init)
	}

	return &Store{Funcs: funcs, Memories: memories, Exports: exports}, nil
}

func lookupType(m *wasm.Module, idx uint32) (wasm.FuncType, error) {
	if idx >= uint32(len(m.Types)) {
		return wasm.FuncType{}, wasm.ErrNoSuchFuncType
	}
	return m.Types[idx], nil
}
