package sink

import (
	"github.com/stefanreuther/afl-sub002/pkg/bufpool"
	"github.com/stefanreuther/afl-sub002/pkg/byteslice"
)

// bufferingCapacity is the fixed buffer size BufferingSink aggregates small
// writes into before flushing, matching afl::io::BufferedSink's 1024-byte
// m_rawBuffer.
const bufferingCapacity = 1024

// BufferingSink aggregates small writes into a fixed-size buffer before
// forwarding them downstream, so the peer sees fewer, larger calls. A write
// at least as large as the buffer that arrives while nothing is buffered
// bypasses it and goes straight through; while data is pending, large
// writes are copied through the buffer like small ones. Grounded on
// afl::io::BufferedSink (afl/io/bufferedsink.cpp).
//
// Writing never fails on the normal path. The peer's HandleData result is
// not inspected, neither while writing nor in Flush, so this sink does not
// report a downstream failure.
type BufferingSink struct {
	peer   Sink
	buf    []byte // backing array, from bufpool
	fill   int
	pooled bool
}

// NewBufferingSink constructs a BufferingSink writing to peer.
func NewBufferingSink(peer Sink) *BufferingSink {
	return &BufferingSink{
		peer:   peer,
		buf:    bufpool.GetBuffer(bufferingCapacity)[:bufferingCapacity],
		pooled: true,
	}
}

// HandleData implements Sink. BufferingSink never reports completion on its
// own — only its peer's signal, once flushed, is meaningful to the caller —
// so it always returns false; this matches afl::io::BufferedSink::handleData
// always returning false and deferring completion to flush()/the peer.
func (b *BufferingSink) HandleData(data *byteslice.Cursor) bool {
	for !data.Empty() {
		if b.fill == 0 && data.Size() >= len(b.buf) {
			direct := byteslice.NewCursor(data.Split(data.Size()))
			b.peer.HandleData(direct)
		} else {
			room := len(b.buf) - b.fill
			chunk := data.Split(room)
			copied := copy(b.buf[b.fill:], chunk)
			b.fill += copied
			if b.fill >= len(b.buf) {
				b.Flush()
			}
		}
	}
	return false
}

// Flush writes any pending buffered data to the peer, even if the buffer
// isn't full.
func (b *BufferingSink) Flush() {
	if b.fill != 0 {
		tmp := byteslice.NewCursor(b.buf[:b.fill])
		b.peer.HandleData(tmp)
		b.fill = 0
	}
}

// Close flushes remaining data and releases the backing buffer to the pool.
// The sink must not be used afterward.
func (b *BufferingSink) Close() {
	b.Flush()
	if b.pooled {
		bufpool.PutBuffer(b.buf)
		b.pooled = false
	}
}
