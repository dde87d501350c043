package bits

import "testing"

func TestUint16RoundTrip(t *testing.T) {
	values := []uint16{0, 1, 255, 256, 0x1234, 0xFFFF}
	for _, v := range values {
		var b [2]byte
		Uint16LE{}.Pack(&b, v)
		if got := Uint16LE{}.Unpack(b); got != v {
			t.Errorf("Uint16LE round-trip: got %d, want %d", got, v)
		}
		Uint16BE{}.Pack(&b, v)
		if got := Uint16BE{}.Unpack(b); got != v {
			t.Errorf("Uint16BE round-trip: got %d, want %d", got, v)
		}
	}
}

func TestUint16BEByteOrder(t *testing.T) {
	var b [2]byte
	Uint16BE{}.Pack(&b, 0x1234)
	if b != [2]byte{0x12, 0x34} {
		t.Errorf("Uint16BE.Pack(0x1234) = %v, want [0x12 0x34]", b)
	}
	var le [2]byte
	Uint16LE{}.Pack(&le, 0x1234)
	if le != [2]byte{0x34, 0x12} {
		t.Errorf("Uint16LE.Pack(0x1234) = %v, want [0x34 0x12]", le)
	}
}

func TestInt32SignedRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 2147483647, -2147483648, 12345, -54321}
	for _, v := range values {
		var b [4]byte
		Int32LE{}.Pack(&b, v)
		if got := Int32LE{}.Unpack(b); got != v {
			t.Errorf("Int32LE round-trip: got %d, want %d", got, v)
		}
		Int32BE{}.Pack(&b, v)
		if got := Int32BE{}.Unpack(b); got != v {
			t.Errorf("Int32BE round-trip: got %d, want %d", got, v)
		}
	}
}

func TestInt32PackMinusOne(t *testing.T) {
	var b [4]byte
	Int32LE{}.Pack(&b, -1)
	if b != [4]byte{0xFF, 0xFF, 0xFF, 0xFF} {
		t.Errorf("Int32LE.Pack(-1) = %v, want all 0xFF", b)
	}
}

func TestInt32PackMinValue(t *testing.T) {
	var be [4]byte
	Int32BE{}.Pack(&be, -2147483648)
	if be != [4]byte{0x80, 0x00, 0x00, 0x00} {
		t.Errorf("Int32BE.Pack(INT_MIN) = %v, want [0x80 0 0 0]", be)
	}
}

func TestInt64SignedRoundTrip(t *testing.T) {
	values := []int64{0, -1, 1 << 40, -(1 << 40), 9223372036854775807, -9223372036854775808}
	for _, v := range values {
		var b [8]byte
		Int64LE{}.Pack(&b, v)
		if got := Int64LE{}.Unpack(b); got != v {
			t.Errorf("Int64LE round-trip: got %d, want %d", got, v)
		}
	}
}

func TestFixedStringUnpack(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello     ", "hello"},
		{"hello\x00rest", "hello"},
		{"          ", ""},
		{"exact", "exact"},
	}
	for _, tt := range tests {
		if got := UnpackFixedString([]byte(tt.in)); got != tt.want {
			t.Errorf("UnpackFixedString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFixedStringPack(t *testing.T) {
	buf := make([]byte, 10)
	PackFixedString(buf, "hi")
	if string(buf) != "hi        " {
		t.Errorf("PackFixedString = %q, want %q", buf, "hi        ")
	}
}

func TestFixedStringRoundTrip(t *testing.T) {
	tests := []string{"a", "hello", "", "exactlyten"}
	buf := make([]byte, 10)
	for _, s := range tests {
		PackFixedString(buf, s)
		if got := UnpackFixedString(buf); got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestPackArrayShortInputZeroPads(t *testing.T) {
	out := make([][2]byte, 4)
	in := []uint16{1, 2}
	PackArray[uint16, [2]byte, Uint16LE](out, in)
	if Uint16LE{}.Unpack(out[2]) != 0 || Uint16LE{}.Unpack(out[3]) != 0 {
		t.Errorf("expected zero padding for missing input elements, got %v", out)
	}
	if Uint16LE{}.Unpack(out[0]) != 1 || Uint16LE{}.Unpack(out[1]) != 2 {
		t.Errorf("expected first two elements packed, got %v", out)
	}
}

func TestUnpackArrayShortInputZeroFills(t *testing.T) {
	in := [][2]byte{{1, 0}, {2, 0}}
	out := make([]uint16, 4)
	UnpackArray[uint16, [2]byte, Uint16LE](out, in)
	want := []uint16{1, 2, 0, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestValueWrapper(t *testing.T) {
	var v Value[uint16, [2]byte, Uint16BE]
	v.Set(0x1234)
	if got := v.Get(); got != 0x1234 {
		t.Errorf("Value.Get() = %x, want 0x1234", got)
	}
}
