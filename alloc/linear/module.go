package linear

// memoryModule returns a module that defines one memory of min..max pages and
// exports it under name.
func memoryModule(name string, min, max uint32) []byte {
	var wasm []byte

	// Magic and version
	wasm = append(wasm, 0x00, 0x61, 0x73, 0x6d)
	wasm = append(wasm, 0x01, 0x00, 0x00, 0x00)

	// Memory section
	memorySection := buildMemorySection(min, max)
	wasm = append(wasm, 0x05)
	wasm = append(wasm, encodeULEB128(uint32(len(memorySection)))...)
	wasm = append(wasm, memorySection...)

	// Export section
	exportSection := buildExportSection(name)
	wasm = append(wasm, 0x07)
	wasm = append(wasm, encodeULEB128(uint32(len(exportSection)))...)
	wasm = append(wasm, exportSection...)

	return wasm
}

func buildMemorySection(min, max uint32) []byte {
	var section []byte
	section = append(section, 0x01) // one memory
	section = append(section, 0x01) // limits: min and max
	section = append(section, encodeULEB128(min)...)
	section = append(section, encodeULEB128(max)...)
	return section
}

func buildExportSection(name string) []byte {
	var section []byte
	section = append(section, 0x01)
	section = append(section, encodeULEB128(uint32(len(name)))...)
	section = append(section, name...)
	section = append(section, 0x02, 0x00) // memory 0
	return section
}

func encodeULEB128(v uint32) []byte {
	var result []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		result = append(result, b)
		if v == 0 {
			break
		}
	}
	return result
}
