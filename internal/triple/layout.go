package triple

import "encoding/binary"

// PointerSize returns the pointer width of a in bytes, or 0 for UnknownArch.
func (a ArchType) PointerSize() int {
	switch a {
	case UnknownArch:
		return 0
	case X86, ARM, ARMEB, RISCV32, MIPS, MIPSEL, Wasm32:
		return 4
	default:
		return 8
	}
}

// IsBigEndian reports whether a stores multi-byte values most significant
// byte first.
func (a ArchType) IsBigEndian() bool {
	switch a {
	case AArch64BE, ARMEB, MIPS, PPC64, SystemZ, BPFEB:
		return true
	}
	return false
}

// ByteOrder returns the byte order of a.
func (a ArchType) ByteOrder() binary.ByteOrder {
	if a.IsBigEndian() {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
