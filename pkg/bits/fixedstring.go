package bits

// UnpackFixedString decodes a fixed-size string field: scan for the first
// NUL byte to determine the logical length (or take the whole field if
// there isn't one), then trim trailing spaces.
func UnpackFixedString(mem []byte) string {
	n := len(mem)
	length := 0
	for length < n && mem[length] != 0 {
		length++
	}
	for length > 0 && mem[length-1] == ' ' {
		length--
	}
	return string(mem[:length])
}

// PackFixedString encodes src into mem, space-padding the remainder of the
// field. src longer than mem is truncated.
func PackFixedString(mem []byte, src string) {
	copied := copy(mem, src)
	for i := copied; i < len(mem); i++ {
		mem[i] = ' '
	}
}

// FixedString is a fixed-width, space-padded or NUL-terminated string codec
// for a field of Size bytes. Go has no const-generic array length, so
// unlike the integer codecs above this operates on a slice rather than a
// fixed-size Bytes array; construct one per record-layout field width.
type FixedString struct {
	Size int
}

func (f FixedString) Pack(bytes []byte, word string) { PackFixedString(bytes[:f.Size], word) }
func (f FixedString) Unpack(bytes []byte) string     { return UnpackFixedString(bytes[:f.Size]) }
