// Package wasm holds the decoded data model shared by the binary decoder,
// the store builder, and the interpreter: value types, function types,
// instructions, and the aggregate Module produced by decoding.
package wasm

// ValueType is the wire tag for one of the four WebAssembly 1.0 value
// types. Only I32 is computed on by this interpreter's instruction
// subset; values of the other types can still appear at runtime (as
// call arguments, zero-initialized locals, or host results) and are
// moved by local.get/local.set, but no instruction operates on them.
type ValueType byte

const (
	ValueTypeI32 ValueType = 0x7f
	ValueTypeI64 ValueType = 0x7e
	ValueTypeF32 ValueType = 0x7d
	ValueTypeF64 ValueType = 0x7c
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	default:
		return "unknown"
	}
}

// FuncType is the signature of a function: an ordered list of parameter
// types and an ordered list of result types. This subset supports at
// most one result.
type FuncType struct {
	Params  []ValueType
	Results []ValueType
}

// Local declares Count consecutive locals of Type inside a function body,
// following the function's parameters.
type Local struct {
	Count uint32
	Type  ValueType
}

// Opcode is the one-byte tag of a decoded instruction.
type Opcode byte

const (
	OpcodeCall     Opcode = 0x10
	OpcodeEnd      Opcode = 0x0b
	OpcodeLocalGet Opcode = 0x20
	OpcodeLocalSet Opcode = 0x21
	OpcodeI32Store Opcode = 0x36
	OpcodeI32Const Opcode = 0x41
	OpcodeI32Add   Opcode = 0x6a
)

// Instruction is a decoded instruction: an opcode plus whatever operands
// that opcode carries. Only one of the fields below is meaningful,
// selected by Op.
type Instruction struct {
	Op Opcode

	// LocalGet, LocalSet, Call
	Index uint32

	// I32Const
	ConstI32 int32

	// I32Store
	Align  uint32
	Offset uint32
}

// Code is a decoded function body: its local declarations (each
// expanding to Count consecutive locals of Type) followed by its
// instruction stream, which always ends with exactly one OpcodeEnd.
type Code struct {
	Locals       []Local
	Instructions []Instruction
}

// MemoryType is a memory's limits: a required minimum and an optional
// maximum, both in pages (see PageSize).
type MemoryType struct {
	Min uint32
	Max *uint32
}

const (
	ImportKindFunc byte = 0x00
	ExportKindFunc byte = 0x00
)

// Import is a module-level import declaration. Only function imports are
// recognized by this subset; TypeIndex is meaningless for any other kind
// (which the decoder never produces, since only ImportKindFunc is
// accepted).
type Import struct {
	Module    string
	Name      string
	Kind      byte
	TypeIndex uint32
}

// Export is a module-level export declaration. Only function exports are
// recognized by this subset.
type Export struct {
	Name  string
	Kind  byte
	Index uint32
}

// Segment is a data segment: a constant byte payload to be copied into
// linear memory at Offset when the module is instantiated.
type Segment struct {
	MemoryIndex uint32
	Offset      uint32
	Init        []byte
}

// Module is the aggregate result of decoding a binary Wasm module. A nil
// field means the corresponding section was absent from the binary, which
// is semantically distinct from an empty (zero-length) section.
type Module struct {
	Version uint32

	Types   []FuncType
	Imports []Import
	Funcs   []uint32
	Memory  []MemoryType
	Exports []Export
	Codes   []Code
	Data    []Segment
}

// PageSize is the fixed size, in bytes, of one unit of linear memory.
const PageSize uint32 = 65536
