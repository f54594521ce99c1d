// Package interpreter evaluates exported Wasm functions against a
// store.Store: a stack-based, single-threaded evaluator with frame
// discipline, local variables, and host-call invocation via the
// circuit-breaker-wrapped extern bridge.
package interpreter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ralphmorton/wisp/host"
	"github.com/ralphmorton/wisp/store"
	"github.com/ralphmorton/wisp/wasm"
)

// Interpreter owns a Store and the externs table servicing its
// imports. It is not safe to share across goroutines, and neither is
// its Store, whose memories are written by i32.store: each caller
// needing concurrent execution should hold its own Interpreter over its
// own Store (built from a shared, immutable Module).
type Interpreter struct {
	store    *store.Store
	externs  host.Externs
	breakers *breakerRegistry
	log      *zap.Logger

	operands *operandStack
	frames   *frameStack
}

// New constructs an Interpreter over store s, servicing imports with
// the given externs. A nil logger is replaced with zap's no-op logger.
func New(s *store.Store, externs host.Externs, log *zap.Logger) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{
		store:    s,
		externs:  externs,
		breakers: newBreakerRegistry(),
		log:      log,
		operands: newOperandStack(),
		frames:   newFrameStack(),
	}
}

// Call invokes the exported function name with args, returning its
// single result value or nil if the function has zero results. On any
// error, both the operand stack and frame stack are reset to empty
// before the error is returned, so the Interpreter is left in a clean
// state for the next call.
func (it *Interpreter) Call(name string, args ...wasm.Value) (result *wasm.Value, err error) {
	it.log.Debug("call start", zap.String("export", name), zap.Int("args", len(args)))
	defer func() {
		if err != nil {
			it.operands.reset()
			it.frames.reset()
			it.log.Debug("call end", zap.String("export", name), zap.Error(err))
		} else {
			it.log.Debug("call end", zap.String("export", name))
		}
	}()

	idx, ok := it.store.Exports[name]
	if !ok {
		return nil, wasm.ErrNoSuchExport
	}
	if idx >= uint32(len(it.store.Funcs)) {
		return nil, wasm.ErrNoSuchFunction
	}

	for _, a := range args {
		it.operands.push(a)
	}

	fn := it.store.Funcs[idx]
	if fn.Kind == store.FuncExternal {
		return it.callExtern(fn)
	}

	if err := it.pushFrame(fn); err != nil {
		return nil, err
	}
	if err := it.run(); err != nil {
		return nil, err
	}

	if len(fn.Type.Results) == 1 {
		v, err := it.operands.pop()
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	return nil, nil
}

func (it *Interpreter) pushFrame(fn store.Func) error {
	nParams := len(fn.Type.Params)
	nLocals := nParams
	for _, l := range fn.Code.Locals {
		nLocals += int(l.Count)
	}

	locals := make([]wasm.Value, nLocals)
	for i := nParams - 1; i >= 0; i-- {
		v, err := it.operands.pop()
		if err != nil {
			return err
		}
		locals[i] = v
	}

	i := nParams
	for _, l := range fn.Code.Locals {
		for c := uint32(0); c < l.Count; c++ {
			locals[i] = wasm.ZeroValue(l.Type)
			i++
		}
	}

	code := fn.Code
	it.frames.push(&frame{
		pc:     -1,
		sp:     it.operands.height(),
		code:   &code,
		arity:  len(fn.Type.Results),
		locals: locals,
	})
	return nil
}

// run executes the evaluation loop until the frame stack empties.
func (it *Interpreter) run() error {
	for {
		fr := it.frames.peek()
		if fr == nil {
			return nil
		}
		fr.pc++
		if fr.done() {
			return nil
		}

		ins := fr.code.Instructions[fr.pc]
		switch ins.Op {
		case wasm.OpcodeLocalGet:
			if int(ins.Index) >= len(fr.locals) {
				return wasm.ErrMissingLocal
			}
			it.operands.push(fr.locals[ins.Index])

		case wasm.OpcodeLocalSet:
			v, err := it.operands.pop()
			if err != nil {
				return err
			}
			if int(ins.Index) >= len(fr.locals) {
				return wasm.ErrMissingLocal
			}
			fr.locals[ins.Index] = v

		case wasm.OpcodeI32Const:
			it.operands.push(wasm.I32(ins.ConstI32))

		case wasm.OpcodeI32Add:
			r, err := it.operands.pop()
			if err != nil {
				return err
			}
			l, err := it.operands.pop()
			if err != nil {
				return err
			}
			lv, _ := l.AsI32()
			rv, _ := r.AsI32()
			it.operands.push(wasm.I32(lv + rv))

		case wasm.OpcodeI32Store:
			if err := it.execI32Store(); err != nil {
				return err
			}

		case wasm.OpcodeCall:
			if err := it.execCall(ins.Index); err != nil {
				return err
			}

		case wasm.OpcodeEnd:
			if err := it.unwind(); err != nil {
				return err
			}

		default:
			return fmt.Errorf("%w: %#x", wasm.ErrUnimplemented, byte(ins.Op))
		}
	}
}

func (it *Interpreter) execCall(idx uint32) error {
	if idx >= uint32(len(it.store.Funcs)) {
		return wasm.ErrNoSuchFunction
	}
	fn := it.store.Funcs[idx]
	if fn.Kind == store.FuncExternal {
		v, err := it.callExtern(fn)
		if err != nil {
			return err
		}
		if v != nil {
			it.operands.push(*v)
		}
		return nil
	}
	return it.pushFrame(fn)
}

func (it *Interpreter) callExtern(fn store.Func) (*wasm.Value, error) {
	nParams := len(fn.Type.Params)
	args := make([]wasm.Value, nParams)
	for i := nParams - 1; i >= 0; i-- {
		v, err := it.operands.pop()
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	extern, ok := it.externs.Lookup(fn.ModuleName, fn.ItemName)
	if !ok {
		return nil, wasm.ErrNoSuchExtern
	}

	return it.breakers.call(fn.ModuleName, fn.ItemName, func() (*wasm.Value, error) {
		return extern(args)
	})
}

// execI32Store implements the recommended (optional) semantics for the
// decoded-but-not-required-by-the-base-subset store instruction: pop
// address and value, bounds-check against memory 0, write 4 bytes
// little-endian.
func (it *Interpreter) execI32Store() error {
	v, err := it.operands.pop()
	if err != nil {
		return err
	}
	addr, err := it.operands.pop()
	if err != nil {
		return err
	}
	if len(it.store.Memories) == 0 {
		return wasm.ErrNoSuchMemory
	}
	mem := &it.store.Memories[0]
	a, _ := addr.AsI32()
	val, _ := v.AsI32()
	offset := uint64(uint32(a))
	if offset+4 > uint64(len(mem.Bytes)) {
		return wasm.ErrMemoryAddressOutOfRange
	}
	uv := uint32(val)
	mem.Bytes[offset] = byte(uv)
	mem.Bytes[offset+1] = byte(uv >> 8)
	mem.Bytes[offset+2] = byte(uv >> 16)
	mem.Bytes[offset+3] = byte(uv >> 24)
	return nil
}

func (it *Interpreter) unwind() error {
	fr, err := it.frames.pop()
	if err != nil {
		return err
	}
	if fr.arity == 1 {
		v, err := it.operands.pop()
		if err != nil {
			return err
		}
		it.operands.shrinkTo(fr.sp)
		it.operands.push(v)
	} else {
		it.operands.shrinkTo(fr.sp)
	}
	return nil
}
