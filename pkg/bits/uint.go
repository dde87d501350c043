package bits

// Uint8 is the trivial one-byte unsigned codec.
type Uint8 struct{}

func (Uint8) Pack(bytes *[1]byte, word uint8)  { bytes[0] = word }
func (Uint8) Unpack(bytes [1]byte) uint8       { return bytes[0] }

// Uint16LE encodes a uint16 little-endian.
type Uint16LE struct{}

func (Uint16LE) Pack(bytes *[2]byte, word uint16) {
	bytes[0] = byte(word)
	bytes[1] = byte(word >> 8)
}

func (Uint16LE) Unpack(bytes [2]byte) uint16 {
	return uint16(bytes[0]) | uint16(bytes[1])<<8
}

// Uint16BE encodes a uint16 big-endian.
type Uint16BE struct{}

func (Uint16BE) Pack(bytes *[2]byte, word uint16) {
	bytes[0] = byte(word >> 8)
	bytes[1] = byte(word)
}

func (Uint16BE) Unpack(bytes [2]byte) uint16 {
	return uint16(bytes[0])<<8 | uint16(bytes[1])
}

// Uint32LE encodes a uint32 little-endian.
type Uint32LE struct{}

func (Uint32LE) Pack(bytes *[4]byte, word uint32) {
	bytes[0] = byte(word)
	bytes[1] = byte(word >> 8)
	bytes[2] = byte(word >> 16)
	bytes[3] = byte(word >> 24)
}

func (Uint32LE) Unpack(bytes [4]byte) uint32 {
	return uint32(bytes[0]) | uint32(bytes[1])<<8 | uint32(bytes[2])<<16 | uint32(bytes[3])<<24
}

// Uint32BE encodes a uint32 big-endian.
type Uint32BE struct{}

func (Uint32BE) Pack(bytes *[4]byte, word uint32) {
	bytes[0] = byte(word >> 24)
	bytes[1] = byte(word >> 16)
	bytes[2] = byte(word >> 8)
	bytes[3] = byte(word)
}

func (Uint32BE) Unpack(bytes [4]byte) uint32 {
	return uint32(bytes[0])<<24 | uint32(bytes[1])<<16 | uint32(bytes[2])<<8 | uint32(bytes[3])
}

// Uint64LE encodes a uint64 little-endian.
type Uint64LE struct{}

func (Uint64LE) Pack(bytes *[8]byte, word uint64) {
	for i := 0; i < 8; i++ {
		bytes[i] = byte(word >> (8 * uint(i)))
	}
}

func (Uint64LE) Unpack(bytes [8]byte) uint64 {
	var word uint64
	for i := 7; i >= 0; i-- {
		word = word<<8 | uint64(bytes[i])
	}
	return word
}

// Uint64BE encodes a uint64 big-endian.
type Uint64BE struct{}

func (Uint64BE) Pack(bytes *[8]byte, word uint64) {
	for i := 0; i < 8; i++ {
		bytes[7-i] = byte(word >> (8 * uint(i)))
	}
}

func (Uint64BE) Unpack(bytes [8]byte) uint64 {
	var word uint64
	for i := 0; i < 8; i++ {
		word = word<<8 | uint64(bytes[i])
	}
	return word
}
