package interpreter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ralphmorton/wisp/host"
	"github.com/ralphmorton/wisp/interpreter"
	"github.com/ralphmorton/wisp/store"
	"github.com/ralphmorton/wisp/wasm"
)

func i32i32ToI32() wasm.FuncType {
	return wasm.FuncType{
		Params:  []wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeI32},
		Results: []wasm.ValueType{wasm.ValueTypeI32},
	}
}

func i32ToI32() wasm.FuncType {
	return wasm.FuncType{
		Params:  []wasm.ValueType{wasm.ValueTypeI32},
		Results: []wasm.ValueType{wasm.ValueTypeI32},
	}
}

func addCode() wasm.Code {
	return wasm.Code{
		Instructions: []wasm.Instruction{
			{Op: wasm.OpcodeLocalGet, Index: 0},
			{Op: wasm.OpcodeLocalGet, Index: 1},
			{Op: wasm.OpcodeI32Add},
			{Op: wasm.OpcodeEnd},
		},
	}
}

func buildAddModule(t *testing.T) *store.Store {
	t.Helper()
	m := &wasm.Module{
		Version: 1,
		Types:   []wasm.FuncType{i32i32ToI32()},
		Funcs:   []uint32{0},
		Codes:   []wasm.Code{addCode()},
		Exports: []wasm.Export{{Name: "add", Kind: wasm.ExportKindFunc, Index: 0}},
	}
	s, err := store.Build(m)
	require.NoError(t, err)
	return s
}

func TestScenarioAdd(t *testing.T) {
	s := buildAddModule(t)
	it := interpreter.New(s, nil, nil)

	v, err := it.Call("add", wasm.I32(1), wasm.I32(2))
	require.NoError(t, err)
	got, ok := v.AsI32()
	require.True(t, ok)
	require.Equal(t, int32(3), got)

	v, err = it.Call("add", wasm.I32(-1), wasm.I32(1))
	require.NoError(t, err)
	got, _ = v.AsI32()
	require.Equal(t, int32(0), got)
}

func TestScenarioDoublerViaSelfCall(t *testing.T) {
	m := &wasm.Module{
		Version: 1,
		Types:   []wasm.FuncType{i32ToI32()},
		Funcs:   []uint32{0, 0},
		Codes: []wasm.Code{
			{
				Instructions: []wasm.Instruction{
					{Op: wasm.OpcodeLocalGet, Index: 0},
					{Op: wasm.OpcodeCall, Index: 1},
					{Op: wasm.OpcodeEnd},
				},
			},
			{
				Instructions: []wasm.Instruction{
					{Op: wasm.OpcodeLocalGet, Index: 0},
					{Op: wasm.OpcodeLocalGet, Index: 0},
					{Op: wasm.OpcodeI32Add},
					{Op: wasm.OpcodeEnd},
				},
			},
		},
		Exports: []wasm.Export{{Name: "call_doubler", Kind: wasm.ExportKindFunc, Index: 0}},
	}
	s, err := store.Build(m)
	require.NoError(t, err)
	it := interpreter.New(s, nil, nil)

	v, err := it.Call("call_doubler", wasm.I32(2))
	require.NoError(t, err)
	got, _ := v.AsI32()
	require.Equal(t, int32(4), got)
}

func buildHostImportModule(t *testing.T) *store.Store {
	t.Helper()
	m := &wasm.Module{
		Version: 1,
		Types:   []wasm.FuncType{i32ToI32()},
		Imports: []wasm.Import{
			{Module: "env", Name: "add", Kind: wasm.ImportKindFunc, TypeIndex: 0},
		},
		Funcs: []uint32{0},
		Codes: []wasm.Code{
			{
				Instructions: []wasm.Instruction{
					{Op: wasm.OpcodeLocalGet, Index: 0},
					{Op: wasm.OpcodeCall, Index: 0},
					{Op: wasm.OpcodeEnd},
				},
			},
		},
		Exports: []wasm.Export{{Name: "call_add", Kind: wasm.ExportKindFunc, Index: 1}},
	}
	s, err := store.Build(m)
	require.NoError(t, err)
	return s
}

func TestScenarioHostImport(t *testing.T) {
	s := buildHostImportModule(t)
	externs := host.Externs{
		"env": {
			"add": func(args []wasm.Value) (*wasm.Value, error) {
				v, _ := args[0].AsI32()
				r := wasm.I32(v + 1)
				return &r, nil
			},
		},
	}
	it := interpreter.New(s, externs, nil)

	v, err := it.Call("call_add", wasm.I32(2))
	require.NoError(t, err)
	got, _ := v.AsI32()
	require.Equal(t, int32(3), got)
}

func TestScenarioUnknownExportThenRecovery(t *testing.T) {
	s := buildAddModule(t)
	it := interpreter.New(s, nil, nil)

	_, err := it.Call("nope")
	require.ErrorIs(t, err, wasm.ErrNoSuchExport)

	v, err := it.Call("add", wasm.I32(5), wasm.I32(6))
	require.NoError(t, err)
	got, _ := v.AsI32()
	require.Equal(t, int32(11), got)
}

func TestScenarioMissingImport(t *testing.T) {
	s := buildHostImportModule(t)
	it := interpreter.New(s, host.Externs{}, nil)

	_, err := it.Call("call_add", wasm.I32(2))
	require.ErrorIs(t, err, wasm.ErrNoSuchExtern)
}

func TestScenarioDataSegmentInitialization(t *testing.T) {
	m := &wasm.Module{
		Version: 1,
		Memory:  []wasm.MemoryType{{Min: 1}},
		Data: []wasm.Segment{
			{MemoryIndex: 0, Offset: 16, Init: []byte{0xde, 0xad, 0xbe, 0xef}},
		},
	}
	s, err := store.Build(m)
	require.NoError(t, err)
	require.Equal(t, int(wasm.PageSize), len(s.Memories[0].Bytes))
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, s.Memories[0].Bytes[16:20])
}

func TestCallIndexOutOfRange(t *testing.T) {
	m := &wasm.Module{
		Version: 1,
		Exports: []wasm.Export{{Name: "ghost", Kind: wasm.ExportKindFunc, Index: 42}},
	}
	s, err := store.Build(m)
	require.NoError(t, err)
	it := interpreter.New(s, nil, nil)

	_, err = it.Call("ghost")
	require.ErrorIs(t, err, wasm.ErrNoSuchFunction)
}

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	s := buildHostImportModule(t)
	calls := 0
	externs := host.Externs{
		"env": {
			"add": func(args []wasm.Value) (*wasm.Value, error) {
				calls++
				return nil, wasm.ErrInvalidArgs
			},
		},
	}
	it := interpreter.New(s, externs, nil)

	for i := 0; i < 5; i++ {
		_, err := it.Call("call_add", wasm.I32(2))
		require.ErrorIs(t, err, wasm.ErrInvalidArgs)
	}

	_, err := it.Call("call_add", wasm.I32(2))
	require.ErrorIs(t, err, wasm.ErrExternUnavailable)
	require.Equal(t, 5, calls)
}
