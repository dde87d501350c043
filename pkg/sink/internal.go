package sink

import (
	"github.com/stefanreuther/afl-sub002/pkg/bufpool"
	"github.com/stefanreuther/afl-sub002/pkg/byteslice"
	"github.com/valyala/bytebufferpool"
)

// InternalSink captures all data offered to it into a growable in-memory
// buffer, for example to hold a bounded response body. Grounded on
// afl::io::InternalSink (afl/io/internalsink.cpp); the backing buffer comes
// from bufpool's unbounded-growth tier (github.com/valyala/bytebufferpool)
// rather than afl's GrowableMemory, since that's the idiom this corpus uses
// for the same problem.
type InternalSink struct {
	buf *bytebufferpool.ByteBuffer
}

// NewInternalSink constructs an empty InternalSink.
func NewInternalSink() *InternalSink {
	return &InternalSink{buf: bufpool.GetGrowable()}
}

// HandleData implements Sink. It always returns false: an InternalSink
// never has "enough" on its own.
func (s *InternalSink) HandleData(data *byteslice.Cursor) bool {
	s.buf.Write(data.Split(data.Size()))
	return false
}

// Content returns the captured bytes. The returned slice is valid until the
// next HandleData or Clear call.
func (s *InternalSink) Content() []byte { return s.buf.B }

// Clear discards captured content, keeping the buffer's backing array.
func (s *InternalSink) Clear() { s.buf.Reset() }

// Close releases the backing buffer to the pool. The sink must not be used
// afterward.
func (s *InternalSink) Close() {
	bufpool.PutGrowable(s.buf)
	s.buf = nil
}
