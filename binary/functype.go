package binary

import (
	"fmt"

	"github.com/ralphmorton/wisp/wasm"
)

func decodeValueTypes(r *reader, count uint32) ([]wasm.ValueType, error) {
	ret := make([]wasm.ValueType, count)
	for i := range ret {
		b, err := r.takeU8()
		if err != nil {
			return nil, err
		}
		switch v := wasm.ValueType(b); v {
		case wasm.ValueTypeI32, wasm.ValueTypeI64, wasm.ValueTypeF32, wasm.ValueTypeF64:
			ret[i] = v
		default:
			return nil, fmt.Errorf("%w: %#x", wasm.ErrUnknownType, b)
		}
	}
	return ret, nil
}

// decodeFuncType decodes one function type: the 0x60 marker, then a
// prefix-counted list of parameter types, then a prefix-counted list of
// result types (at most one, per this subset's Non-goals).
func decodeFuncType(r *reader) (wasm.FuncType, error) {
	marker, err := r.takeU8()
	if err != nil {
		return wasm.FuncType{}, err
	}
	if marker != 0x60 {
		return wasm.FuncType{}, fmt.Errorf("%w: func type marker %#x != 0x60", wasm.ErrInvalidHeader, marker)
	}

	paramCount, err := r.takeULEB32()
	if err != nil {
		return wasm.FuncType{}, fmt.Errorf("read param count: %w", err)
	}
	params, err := decodeValueTypes(r, paramCount)
	if err != nil {
		return wasm.FuncType{}, fmt.Errorf("read param types: %w", err)
	}

	resultCount, err := r.takeULEB32()
	if err != nil {
		return wasm.FuncType{}, fmt.Errorf("read result count: %w", err)
	}
	if resultCount > 1 {
		return wasm.FuncType{}, fmt.Errorf("multi-value results not supported")
	}
	results, err := decodeValueTypes(r, resultCount)
	if err != nil {
		return wasm.FuncType{}, fmt.Errorf("read result types: %w", err)
	}

	return wasm.FuncType{Params: params, Results: results}, nil
}

func decodeTypeSection(r *reader) ([]wasm.FuncType, error) {
	count, err := r.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidTypeSection, err)
	}
	ret := make([]wasm.FuncType, count)
	for i := range ret {
		ft, err := decodeFuncType(r)
		if err != nil {
			return nil, fmt.Errorf("%w: type %d: %v", wasm.ErrInvalidTypeSection, i, err)
		}
		ret[i] = ft
	}
	return ret, nil
}
