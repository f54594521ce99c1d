package interpreter

import "github.com/ralphmorton/wisp/wasm"

const initialStackHeight = 64

// operandStack is a growable, slice-backed stack of Values, mirroring
// the height-tracked push/pop/peek discipline used throughout this
// runtime's stack types.
type operandStack struct {
	stack []wasm.Value
	sp    int
}

func newOperandStack() *operandStack {
	return &operandStack{
		stack: make([]wasm.Value, initialStackHeight),
		sp:    -1,
	}
}

func (s *operandStack) height() int {
	return s.sp + 1
}

func (s *operandStack) push(v wasm.Value) {
	if s.sp+1 == len(s.stack) {
		s.stack = append(s.stack, v)
	} else {
		s.stack[s.sp+1] = v
	}
	s.sp++
}

func (s *operandStack) pop() (wasm.Value, error) {
	if s.sp < 0 {
		return wasm.Value{}, wasm.ErrStackEmpty
	}
	v := s.stack[s.sp]
	s.sp--
	return v, nil
}

func (s *operandStack) peek() (wasm.Value, error) {
	if s.sp < 0 {
		return wasm.Value{}, wasm.ErrStackEmpty
	}
	return s.stack[s.sp], nil
}

// shrinkTo drops the stack back down to height n, discarding anything
// above it.
func (s *operandStack) shrinkTo(n int) {
	s.sp = n - 1
}

func (s *operandStack) reset() {
	s.sp = -1
}

// frameStack is a growable, slice-backed stack of call frames.
type frameStack struct {
	stack []*frame
	sp    int
}

func newFrameStack() *frameStack {
	return &frameStack{
		stack: make([]*frame, initialStackHeight),
		sp:    -1,
	}
}

func (s *frameStack) height() int {
	return s.sp + 1
}

func (s *frameStack) push(f *frame) {
	if s.sp+1 == len(s.stack) {
		s.stack = append(s.stack, f)
	} else {
		s.stack[s.sp+1] = f
	}
	s.sp++
}

func (s *frameStack) pop() (*frame, error) {
	if s.sp < 0 {
		return nil, wasm.ErrFramesEmpty
	}
	f := s.stack[s.sp]
	s.sp--
	return f, nil
}

func (s *frameStack) peek() *frame {
	if s.sp < 0 {
		return nil
	}
	return s.stack[s.sp]
}

func (s *frameStack) reset() {
	s.sp = -1
}
