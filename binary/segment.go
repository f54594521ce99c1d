package binary

import (
	"fmt"

	"github.com/ralphmorton/wisp/wasm"
)

// decodeOffsetExpression reads the restricted constant-expression form
// this subset supports for data segment offsets: an i32.const opcode, its
// signed LEB128 payload, and a trailing End opcode.
func decodeOffsetExpression(r *reader) (uint32, error) {
	op, err := r.takeU8()
	if err != nil {
		return 0, fmt.Errorf("read offset expr opcode: %w", err)
	}
	if wasm.Opcode(op) != wasm.OpcodeI32Const {
		return 0, fmt.Errorf("unsupported offset expression opcode %#x", op)
	}
	v, err := r.takeSLEB32()
	if err != nil {
		return 0, fmt.Errorf("read offset expr value: %w", err)
	}
	end, err := r.takeU8()
	if err != nil {
		return 0, fmt.Errorf("read offset expr end: %w", err)
	}
	if wasm.Opcode(end) != wasm.OpcodeEnd {
		return 0, fmt.Errorf("offset expression not terminated by end")
	}
	return uint32(v), nil
}

func decodeDataSegment(r *reader) (wasm.Segment, error) {
	memIndex, err := r.takeULEB32()
	if err != nil {
		return wasm.Segment{}, fmt.Errorf("read memory index: %w", err)
	}
	offset, err := decodeOffsetExpression(r)
	if err != nil {
		return wasm.Segment{}, fmt.Errorf("read offset expression: %w", err)
	}
	size, err := r.takeULEB32()
	if err != nil {
		return wasm.Segment{}, fmt.Errorf("read data size: %w", err)
	}
	data, err := r.take(int(size))
	if err != nil {
		return wasm.Segment{}, fmt.Errorf("read data bytes: %w", err)
	}
	init := make([]byte, len(data))
	copy(init, data)
	return wasm.Segment{MemoryIndex: memIndex, Offset: offset, Init: init}, nil
}

func decodeDataSection(r *reader) ([]wasm.Segment, error) {
	count, err := r.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("read data vector size: %w", err)
	}
	ret := make([]wasm.Segment, count)
	for i := range ret {
		seg, err := decodeDataSegment(r)
		if err != nil {
			return nil, fmt.Errorf("data segment %d: %w", i, err)
		}
		ret[i] = seg
	}
	return ret, nil
}
