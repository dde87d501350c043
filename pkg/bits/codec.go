// Package bits implements fixed-width endian integer and padded-string wire
// codecs, the building blocks for framing binary record layouts (the
// motivating external consumer is ZIP local-file-header framing, out of
// scope for this repository but the reason this layer exists at all).
//
// A codec is a type with a fixed-size Bytes array, a decoded Word type, and
// pure Pack/Unpack functions between them. Record layouts of arbitrary
// endianness are declared as plain Go structs built from Value[Desc] fields.
// The actual Pack/Unpack contract lives in Descriptor (see value.go).
package bits
