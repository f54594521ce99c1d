// Package wisp is a minimal WebAssembly runtime: it decodes a binary
// Wasm module, builds an executable instance, and interprets exported
// functions over a typed value stack. An embedder supplies the module
// bytes and a table of host-provided (imported) functions, invokes an
// exported function by name with typed arguments, and receives an
// optional typed return value.
package wisp

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ralphmorton/wisp/binary"
	"github.com/ralphmorton/wisp/host"
	"github.com/ralphmorton/wisp/interpreter"
	"github.com/ralphmorton/wisp/store"
	"github.com/ralphmorton/wisp/wasm"
)

// Runtime is one instantiated module, ready to service calls to its
// exported functions. A Runtime is not safe to share across
// goroutines; an immutable decoded module may be reused to build
// multiple Runtimes, one per goroutine that needs to call into it.
type Runtime struct {
	it      *interpreter.Interpreter
	metrics *metricsRecorder
}

// New decodes source, builds a Store from it, and returns a Runtime
// ready to service calls. Imports are serviced by externs; calling an
// import absent from externs fails that call with ErrNoSuchExtern
// rather than failing construction, since an import unused by the
// invoked export is harmless.
func New(source []byte, externs host.Externs, opts ...Option) (*Runtime, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	m, err := cfg.decode(source)
	if err != nil {
		cfg.logger.Debug("decode failed", zap.Error(err))
		return nil, fmt.Errorf("decode module: %w", err)
	}

	s, err := store.Build(m)
	if err != nil {
		cfg.logger.Debug("link failed", zap.Error(err))
		return nil, fmt.Errorf("build store: %w", err)
	}

	return &Runtime{
		it:      interpreter.New(s, externs, cfg.logger),
		metrics: cfg.metrics,
	}, nil
}

// Call invokes the exported function name with args, returning its
// single result value or nil if the function returns nothing.
func (r *Runtime) Call(name string, args ...wasm.Value) (*wasm.Value, error) {
	stop := r.metrics.observeStart(name)
	v, err := r.it.Call(name, args...)
	stop(err)
	return v, err
}

func (cfg *config) decode(source []byte) (*wasm.Module, error) {
	if cfg.cache != nil {
		return cfg.cache.Decode(source)
	}
	return binary.DecodeModule(source)
}
