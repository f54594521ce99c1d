package binary

import (
	"fmt"

	"github.com/ralphmorton/wisp/wasm"
)

// decodeMemoryType decodes a memory limits descriptor: a one-byte flag (0
// means no max, non-zero means a max follows), then min, then optionally
// max, all LEB128.
func decodeMemoryType(r *reader) (wasm.MemoryType, error) {
	flag, err := r.takeU8()
	if err != nil {
		return wasm.MemoryType{}, err
	}

	min, err := r.takeULEB32()
	if err != nil {
		return wasm.MemoryType{}, fmt.Errorf("read min: %w", err)
	}

	ret := wasm.MemoryType{Min: min}
	if flag != 0 {
		max, err := r.takeULEB32()
		if err != nil {
			return wasm.MemoryType{}, fmt.Errorf("read max: %w", err)
		}
		ret.Max = &max
	}
	return ret, nil
}

func decodeMemorySection(r *reader) ([]wasm.MemoryType, error) {
	count, err := r.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("read memory vector size: %w", err)
	}
	ret := make([]wasm.MemoryType, count)
	for i := range ret {
		mt, err := decodeMemoryType(r)
		if err != nil {
			return nil, fmt.Errorf("memory %d: %w", i, err)
		}
		ret[i] = mt
	}
	return ret, nil
}
