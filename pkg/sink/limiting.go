package sink

import "github.com/stefanreuther/afl-sub002/pkg/byteslice"

// LimitingSink forwards at most Limit bytes to its peer, then reports
// completion; any bytes past the budget remain in the caller's cursor.
// Grounded on afl::io::LimitedDataSink (afl/io/limiteddatasink.cpp).
type LimitingSink struct {
	peer  Sink
	limit uint64
}

// NewLimitingSink constructs a LimitingSink that accepts and forwards at
// most limit bytes.
func NewLimitingSink(peer Sink, limit uint64) *LimitingSink {
	return &LimitingSink{peer: peer, limit: limit}
}

// HandleData implements Sink.
func (l *LimitingSink) HandleData(data *byteslice.Cursor) bool {
	n := data.Size()
	if uint64(n) > l.limit {
		n = int(l.limit)
	}
	forwarded := byteslice.NewCursor(data.Split(n))
	l.limit -= uint64(n)
	l.peer.HandleData(forwarded)
	return l.limit == 0
}

// Remaining returns the number of bytes still accepted before completion.
func (l *LimitingSink) Remaining() uint64 { return l.limit }
