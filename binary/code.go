package binary

import (
	"fmt"

	"github.com/ralphmorton/wisp/wasm"
)

// decodeInstruction reads one opcode byte and its operands, per spec.md
// §4.2. Any opcode outside this interpreter's supported subset is an
// ErrUnknownInstruction.
func decodeInstruction(r *reader) (wasm.Instruction, error) {
	op, err := r.takeU8()
	if err != nil {
		return wasm.Instruction{}, err
	}

	switch wasm.Opcode(op) {
	case wasm.OpcodeLocalGet, wasm.OpcodeLocalSet, wasm.OpcodeCall:
		idx, err := r.takeULEB32()
		if err != nil {
			return wasm.Instruction{}, fmt.Errorf("read index operand: %w", err)
		}
		return wasm.Instruction{Op: wasm.Opcode(op), Index: idx}, nil

	case wasm.OpcodeI32Store:
		align, err := r.takeULEB32()
		if err != nil {
			return wasm.Instruction{}, fmt.Errorf("read align operand: %w", err)
		}
		offset, err := r.takeULEB32()
		if err != nil {
			return wasm.Instruction{}, fmt.Errorf("read offset operand: %w", err)
		}
		return wasm.Instruction{Op: wasm.OpcodeI32Store, Align: align, Offset: offset}, nil

	case wasm.OpcodeI32Const:
		v, err := r.takeSLEB32()
		if err != nil {
			return wasm.Instruction{}, fmt.Errorf("read i32.const operand: %w", err)
		}
		return wasm.Instruction{Op: wasm.OpcodeI32Const, ConstI32: v}, nil

	case wasm.OpcodeI32Add, wasm.OpcodeEnd:
		return wasm.Instruction{Op: wasm.Opcode(op)}, nil

	default:
		return wasm.Instruction{}, fmt.Errorf("%w: %#x", wasm.ErrUnknownInstruction, op)
	}
}

// decodeLocal reads one local declaration: a count and a value type.
func decodeLocal(r *reader) (wasm.Local, error) {
	count, err := r.takeULEB32()
	if err != nil {
		return wasm.Local{}, fmt.Errorf("read local count: %w", err)
	}
	b, err := r.takeU8()
	if err != nil {
		return wasm.Local{}, fmt.Errorf("read local type: %w", err)
	}
	switch v := wasm.ValueType(b); v {
	case wasm.ValueTypeI32, wasm.ValueTypeI64, wasm.ValueTypeF32, wasm.ValueTypeF64:
		return wasm.Local{Count: count, Type: v}, nil
	default:
		return wasm.Local{}, fmt.Errorf("%w: %#x", wasm.ErrUnknownType, b)
	}
}

// decodeCode decodes one function body: a byte-size prefix (read and
// discarded beyond bounding the body reader), a prefix-counted list of
// local declarations, then an instruction stream that must terminate in
// exactly one trailing End.
func decodeCode(r *reader) (wasm.Code, error) {
	size, err := r.takeULEB32()
	if err != nil {
		return wasm.Code{}, fmt.Errorf("read code size: %w", err)
	}
	body, err := r.take(int(size))
	if err != nil {
		return wasm.Code{}, fmt.Errorf("read code body: %w", err)
	}
	br := newReader(body)

	localCount, err := br.takeULEB32()
	if err != nil {
		return wasm.Code{}, fmt.Errorf("read local decl count: %w", err)
	}
	locals := make([]wasm.Local, localCount)
	for i := range locals {
		l, err := decodeLocal(br)
		if err != nil {
			return wasm.Code{}, fmt.Errorf("local decl %d: %w", i, err)
		}
		locals[i] = l
	}

	var instructions []wasm.Instruction
	for {
		ins, err := decodeInstruction(br)
		if err != nil {
			return wasm.Code{}, fmt.Errorf("instruction %d: %w", len(instructions), err)
		}
		instructions = append(instructions, ins)
		if ins.Op == wasm.OpcodeEnd {
			break
		}
	}
	if br.hasMore() {
		return wasm.Code{}, fmt.Errorf("%w: trailing bytes after end", wasm.ErrInvalidCode)
	}

	return wasm.Code{Locals: locals, Instructions: instructions}, nil
}

func decodeCodeSection(r *reader) ([]wasm.Code, error) {
	count, err := r.takeULEB32()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrInvalidCodeSection, err)
	}
	ret := make([]wasm.Code, count)
	for i := range ret {
		c, err := decodeCode(r)
		if err != nil {
			return nil, fmt.Errorf("%w: code %d: %v", wasm.ErrInvalidCodeSection, i, err)
		}
		ret[i] = c
	}
	return ret, nil
}
