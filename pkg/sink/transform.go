package sink

import "github.com/stefanreuther/afl-sub002/pkg/byteslice"

// transformScratchSize is the fixed scratch buffer TransformDataSink pulls
// transformed output into, matching afl::io::TransformDataSink's 4096-byte
// stack buffer.
const transformScratchSize = 4096

// Transform is a byte-to-byte transformation (inflate, brotli decode, ...)
// pulling from in and pushing decoded bytes into out. It returns the number
// of output bytes produced; implementations consume as much of in as they
// can produce output for.
type Transform interface {
	Transform(in *byteslice.Cursor, out []byte) (n int)
}

// TransformDataSink holds a Transform and a peer sink, and drives bytes
// through the transform into the peer. Until a transform is set, data
// passes through unmodified. Grounded on afl::io::TransformDataSink
// (afl/io/transformdatasink.cpp).
//
// Preserves a known quirk of the source verbatim (see SPEC_FULL.md open
// questions): once the peer has signalled completion, TransformDataSink
// keeps pulling from the transform and pushing into the peer anyway,
// relying on the peer to keep reporting completion. Downstream completion
// is therefore advisory under transformation, not a hard stop.
type TransformDataSink struct {
	transform Transform
	peer      Sink
	scratch   [transformScratchSize]byte
}

// NewTransformDataSink constructs a TransformDataSink with no transform set
// (pass-through).
func NewTransformDataSink(peer Sink) *TransformDataSink {
	return &TransformDataSink{peer: peer}
}

// SetTransform installs (or clears, with nil) the transformation.
func (t *TransformDataSink) SetTransform(tr Transform) { t.transform = tr }

// HandleData implements Sink. It always runs the transform at least once,
// even when data is already empty: a transform may be backed by an
// asynchronous decoder with output still in flight from a previous call, so
// an empty "poke" call is a valid way for a caller to drain that backlog
// once it has nothing new to offer.
func (t *TransformDataSink) HandleData(data *byteslice.Cursor) bool {
	if t.transform == nil {
		return t.peer.HandleData(data)
	}

	result := false
	for {
		n := t.transform.Transform(data, t.scratch[:])
		if n > 0 {
			out := byteslice.NewCursor(t.scratch[:n])
			result = t.peer.HandleData(out)
		}
		if data.Empty() && n == 0 {
			break
		}
	}
	return result
}
