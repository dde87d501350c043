package bits

// Int8 is the trivial one-byte signed codec.
type Int8 struct{}

func (Int8) Pack(bytes *[1]byte, word int8) { bytes[0] = byte(word) }
func (Int8) Unpack(bytes [1]byte) int8      { return int8(bytes[0]) }

// Signed decoding goes through the unsigned codec and converts to the signed
// type. Go defines integer conversion as truncation to the destination
// width followed by a signedness reinterpret (spec §8.4), so this already
// gives two's-complement semantics without the unspecified-behavior dance
// the afl source needs in C++; the unsigned-codec indirection is kept
// anyway so pack/unpack stay byte-for-byte identical to the unsigned case.

// Int16LE encodes an int16 little-endian.
type Int16LE struct{}

func (Int16LE) Pack(bytes *[2]byte, word int16) { Uint16LE{}.Pack(bytes, uint16(word)) }
func (Int16LE) Unpack(bytes [2]byte) int16      { return int16(Uint16LE{}.Unpack(bytes)) }

// Int16BE encodes an int16 big-endian.
type Int16BE struct{}

func (Int16BE) Pack(bytes *[2]byte, word int16) { Uint16BE{}.Pack(bytes, uint16(word)) }
func (Int16BE) Unpack(bytes [2]byte) int16      { return int16(Uint16BE{}.Unpack(bytes)) }

// Int32LE encodes an int32 little-endian.
type Int32LE struct{}

func (Int32LE) Pack(bytes *[4]byte, word int32) { Uint32LE{}.Pack(bytes, uint32(word)) }
func (Int32LE) Unpack(bytes [4]byte) int32      { return int32(Uint32LE{}.Unpack(bytes)) }

// Int32BE encodes an int32 big-endian.
type Int32BE struct{}

func (Int32BE) Pack(bytes *[4]byte, word int32) { Uint32BE{}.Pack(bytes, uint32(word)) }
func (Int32BE) Unpack(bytes [4]byte) int32      { return int32(Uint32BE{}.Unpack(bytes)) }

// Int64LE encodes an int64 little-endian.
type Int64LE struct{}

func (Int64LE) Pack(bytes *[8]byte, word int64) { Uint64LE{}.Pack(bytes, uint64(word)) }
func (Int64LE) Unpack(bytes [8]byte) int64      { return int64(Uint64LE{}.Unpack(bytes)) }

// Int64BE encodes an int64 big-endian.
type Int64BE struct{}

func (Int64BE) Pack(bytes *[8]byte, word int64) { Uint64BE{}.Pack(bytes, uint64(word)) }
func (Int64BE) Unpack(bytes [8]byte) int64      { return int64(Uint64BE{}.Unpack(bytes)) }
