package wasm

import "errors"

// Decode errors.
var (
	ErrInvalidModuleHeader    = errors.New("wasm: invalid module header")
	ErrUnknownSection         = errors.New("wasm: unknown section id")
	ErrUnknownType            = errors.New("wasm: unknown value type")
	ErrUnknownInstruction     = errors.New("wasm: unknown instruction")
	ErrInvalidHeader          = errors.New("wasm: invalid header byte")
	ErrInvalidTypeSection     = errors.New("wasm: invalid type section")
	ErrInvalidImportSection   = errors.New("wasm: invalid import section")
	ErrInvalidFunctionSection = errors.New("wasm: invalid function section")
	ErrInvalidExportSection   = errors.New("wasm: invalid export section")
	ErrInvalidCodeSection     = errors.New("wasm: invalid code section")
	ErrInvalidCode            = errors.New("wasm: invalid code body")
	ErrUnexpectedEOF          = errors.New("wasm: unexpected end of input")
)

// Link/construction errors.
var (
	ErrNoSuchFuncType          = errors.New("wasm: no such func type")
	ErrNoSuchFunc              = errors.New("wasm: no such func")
	ErrNoSuchMemory            = errors.New("wasm: no such memory")
	ErrMemoryAddressOutOfRange = errors.New("wasm: memory address out of range")
)

// Runtime missing-prerequisite errors.
var (
	ErrMissingTypeSection     = errors.New("wasm: missing type section")
	ErrMissingFunctionSection = errors.New("wasm: missing function section")
	ErrMissingExportSection   = errors.New("wasm: missing export section")
	ErrMissingCodeSection     = errors.New("wasm: missing code section")
)

// Execution errors.
var (
	ErrMissingLocal   = errors.New("wasm: missing local")
	ErrStackEmpty     = errors.New("wasm: operand stack empty")
	ErrFramesEmpty    = errors.New("wasm: frame stack empty")
	ErrNoSuchExport   = errors.New("wasm: no such export")
	ErrNoSuchExtern   = errors.New("wasm: no such extern")
	ErrNoSuchFunction = errors.New("wasm: no such function")
	ErrUnimplemented  = errors.New("wasm: instruction not implemented by this interpreter")
)

// Host-side errors.
var (
	ErrInvalidArgs        = errors.New("wasm: invalid arguments")
	ErrExternUnavailable  = errors.New("wasm: extern unavailable")
	ErrDecodeCacheCorrupt = errors.New("wasm: decode cache corrupt")
)
