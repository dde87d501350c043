package bits

// PackArray packs a run of words into a byte run using descriptor D. A
// short output run is filled as far as it goes and truncates; a short
// input run is zero-padded (missing words pack as the zero value) rather
// than erroring.
func PackArray[Word any, Bytes any, D Descriptor[Word, Bytes]](out []Bytes, in []Word) {
	var d D
	for i := range out {
		if i < len(in) {
			d.Pack(&out[i], in[i])
		} else {
			var zero Word
			d.Pack(&out[i], zero)
		}
	}
}

// UnpackArray unpacks a run of bytes into words using descriptor D. A short
// input run zero-fills the remaining output words.
func UnpackArray[Word any, Bytes any, D Descriptor[Word, Bytes]](out []Word, in []Bytes) {
	var d D
	for i := range out {
		if i < len(in) {
			out[i] = d.Unpack(in[i])
		} else {
			var zero Word
			out[i] = zero
		}
	}
}
