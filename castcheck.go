package castcheck

// Memory is a read-only, byte-addressed view of memory captured from an
// external execution trace. Multi-byte reads are little-endian.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	ReadU8(offset uint32) (uint8, error)
	ReadU16(offset uint32) (uint16, error)
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
}

// BaseAddr is where generated test programs store the cast result.
const BaseAddr uint32 = 0x0200

// HaltReason is the termination reason a generated test program must report.
const HaltReason = "hlt"
