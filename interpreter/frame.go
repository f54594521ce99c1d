package interpreter

import "github.com/ralphmorton/wisp/wasm"

// frame is the activation record for one in-progress internal call. pc
// starts at -1 so the dispatch loop can unconditionally pre-increment
// before fetching the next instruction. sp records the operand stack
// height at the moment the frame was pushed, so End can shrink the
// stack back down to it once the result (if any) has been carried over.
type frame struct {
	pc     int
	sp     int
	code   *wasm.Code
	arity  int
	locals []wasm.Value
}

func (f *frame) done() bool {
	return f.pc >= len(f.code.Instructions)
}
