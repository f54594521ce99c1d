package binary

import (
	"bytes"
	"fmt"

	"github.com/ralphmorton/wisp/wasm"
)

var magic = []byte{0x00, 0x61, 0x73, 0x6d}

// DecodeModule decodes a binary Wasm module for the subset described in
// spec.md: magic + version header, then zero or more sections consumed in
// the order they appear. A section id may appear at most once; custom
// sections are skipped entirely.
func DecodeModule(b []byte) (*wasm.Module, error) {
	r := newReader(b)

	magicBuf, err := r.take(4)
	if err != nil || !bytes.Equal(magicBuf, magic) {
		return nil, wasm.ErrInvalidModuleHeader
	}

	versionBuf, err := r.take(4)
	if err != nil {
		return nil, wasm.ErrInvalidModuleHeader
	}
	version := uint32(versionBuf[0]) | uint32(versionBuf[1])<<8 | uint32(versionBuf[2])<<16 | uint32(versionBuf[3])<<24
	if version != 1 {
		return nil, wasm.ErrInvalidModuleHeader
	}

	m := &wasm.Module{Version: version}
	seen := map[sectionID]bool{}

	for r.hasMore() {
		idByte, err := r.takeU8()
		if err != nil {
			return nil, fmt.Errorf("read section id: %w", err)
		}
		id := sectionID(idByte)

		size, err := r.takeULEB32()
		if err != nil {
			return nil, fmt.Errorf("read section %#x size: %w", idByte, err)
		}

		if id != sectionIDCustom {
			if seen[id] {
				return nil, fmt.Errorf("duplicate section id %#x", idByte)
			}
			seen[id] = true
		}

		start := r.read
		if err := decodeSection(r, id, size, m); err != nil {
			return nil, fmt.Errorf("section %#x: %w", idByte, err)
		}
		if consumed := r.read - start; consumed != int(size) {
			return nil, fmt.Errorf("section %#x: declared size %d but consumed %d", idByte, size, consumed)
		}
	}

	if len(m.Funcs) != len(m.Codes) {
		return nil, fmt.Errorf("function and code sections have inconsistent lengths")
	}
	return m, nil
}

func decodeSection(r *reader, id sectionID, size uint32, m *wasm.Module) (err error) {
	switch id {
	case sectionIDCustom:
		if _, err := r.take(int(size)); err != nil {
			return fmt.Errorf("skip custom section: %w", err)
		}
	case sectionIDType:
		m.Types, err = decodeTypeSection(r)
	case sectionIDImport:
		m.Imports, err = decodeImportSection(r)
	case sectionIDFunction:
		m.Funcs, err = decodeFunctionSection(r)
	case sectionIDMemory:
		m.Memory, err = decodeMemorySection(r)
	case sectionIDExport:
		m.Exports, err = decodeExportSection(r)
	case sectionIDCode:
		m.Codes, err = decodeCodeSection(r)
	case sectionIDData:
		m.Data, err = decodeDataSection(r)
	default:
		return fmt.Errorf("%w: %#x", wasm.ErrUnknownSection, byte(id))
	}
	return err
}
