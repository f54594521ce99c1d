// Package host defines the contract between the interpreter and the
// embedder-supplied host functions that service Wasm imports.
package host

import "github.com/ralphmorton/wisp/wasm"

// Extern is a host-provided function backing a Wasm import. It receives
// the popped arguments in call order and returns an optional result.
// The extern is responsible for type-checking its own arguments; the
// interpreter performs no coercion and surfaces ErrInvalidArgs (or any
// other error the extern returns) to the caller unchanged.
type Extern func(args []wasm.Value) (*wasm.Value, error)

// Externs is the two-level mapping module_name -> item_name -> Extern
// the embedder supplies when constructing a Runtime.
type Externs map[string]map[string]Extern

// Lookup resolves a host function by module and item name.
func (e Externs) Lookup(module, name string) (Extern, bool) {
	inner, ok := e[module]
	if !ok {
		return nil, false
	}
	fn, ok := inner[name]
	return fn, ok
}
