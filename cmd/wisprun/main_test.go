package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			break
		}
	}
	return out
}

func section(id byte, payload []byte) []byte {
	return append([]byte{id}, append(uleb(uint32(len(payload))), payload...)...)
}

func addModuleBytes() []byte {
	header := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	typeSec := section(0x01, append(uleb(1), []byte{0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f}...))
	funcSec := section(0x03, append(uleb(1), uleb(0)...))
	name := "add"
	exportPayload := append(uleb(1), append(uleb(uint32(len(name))), name...)...)
	exportPayload = append(exportPayload, 0x00)
	exportPayload = append(exportPayload, uleb(0)...)
	exportSec := section(0x07, exportPayload)
	body := []byte{0x00, 0x20, 0x00, 0x20, 0x01, 0x6a, 0x0b}
	codeSec := section(0x0a, append(uleb(1), append(uleb(uint32(len(body))), body...)...))

	out := header
	out = append(out, typeSec...)
	out = append(out, funcSec...)
	out = append(out, exportSec...)
	out = append(out, codeSec...)
	return out
}

func runMain(t *testing.T, args []string) (int, string, string) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(args[0], flag.ContinueOnError)

	var stdOut, stdErr bytes.Buffer
	exitCode := -1
	oldArgs := os.Args
	os.Args = append([]string{"wisprun"}, args...)
	defer func() { os.Args = oldArgs }()

	doMain(&stdOut, &stdErr, func(code int) { exitCode = code })
	return exitCode, stdOut.String(), stdErr.String()
}

func TestRunAdd(t *testing.T) {
	dir := t.TempDir()
	wasmPath := filepath.Join(dir, "add.wasm")
	require.NoError(t, os.WriteFile(wasmPath, addModuleBytes(), 0o644))

	manifestPath := filepath.Join(dir, "call.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("export: add\nargs: [40, 2]\n"), 0o644))

	exitCode, stdOut, stdErr := runMain(t, []string{wasmPath, manifestPath})
	require.Equal(t, 0, exitCode)
	require.Equal(t, "42\n", stdOut)
	require.Empty(t, stdErr)
}

func TestRunMissingExport(t *testing.T) {
	dir := t.TempDir()
	wasmPath := filepath.Join(dir, "add.wasm")
	require.NoError(t, os.WriteFile(wasmPath, addModuleBytes(), 0o644))

	manifestPath := filepath.Join(dir, "call.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("export: nope\nargs: []\n"), 0o644))

	exitCode, _, stdErr := runMain(t, []string{wasmPath, manifestPath})
	require.Equal(t, 1, exitCode)
	require.True(t, strings.Contains(stdErr, "nope"))
}
