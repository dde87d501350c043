package http11

import (
	"github.com/stefanreuther/afl-sub002/pkg/byteslice"
	"github.com/stefanreuther/afl-sub002/pkg/sink"
)

type chunkedState int

const (
	chunkedSize chunkedState = iota
	chunkedExtension
	chunkedPayload
	chunkedPayloadEnd
	chunkedTrailer
	chunkedTrailerHeader
	chunkedFinal
)

// ChunkedSink decodes an HTTP "Transfer-Encoding: chunked" body, forwarding
// payload bytes to a downstream sink.Sink as they arrive. Seven states:
// ChunkSize, Extension, Payload, PayloadEnd, Trailer, TrailerHeader, Final.
// Owns no buffer beyond the current chunk-size register — unlike the
// pull-style io.Reader decoders this engine otherwise favors, the decoder
// never blocks waiting for a full chunk; it forwards whatever prefix of the
// current chunk is available and resumes mid-chunk on the next call.
// Grounded on afl::net::http::ChunkedSink (afl/net/http/chunkedsink.cpp).
type ChunkedSink struct {
	peer sink.Sink
	state chunkedState
	size  uint64
}

// NewChunkedSink constructs a decoder forwarding decoded payload to peer.
func NewChunkedSink(peer sink.Sink) *ChunkedSink {
	return &ChunkedSink{peer: peer}
}

var _ sink.Sink = (*ChunkedSink)(nil)

func hexValue(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

// HandleData implements sink.Sink. It returns true once the Final state
// (the blank line ending the body) is reached; bytes offered after that are
// not consumed and remain in the caller's cursor.
func (c *ChunkedSink) HandleData(data *byteslice.Cursor) bool {
	for c.state != chunkedFinal {
		if c.state == chunkedPayload {
			if data.Empty() {
				return false
			}
			n := c.size
			if uint64(data.Size()) < n {
				n = uint64(data.Size())
			}
			chunk := data.Split(int(n))
			sink.HandleFullData(c.peer, chunk)
			c.size -= n
			if c.size == 0 {
				c.state = chunkedPayloadEnd
			}
			continue
		}

		b, ok := data.Eat()
		if !ok {
			return false
		}
		c.step(b)
	}
	return true
}

func (c *ChunkedSink) step(b byte) {
	switch c.state {
	case chunkedSize:
		switch {
		case b == ';':
			c.state = chunkedExtension
		case b == '\n':
			if c.size == 0 {
				c.state = chunkedTrailer
			} else {
				c.state = chunkedPayload
			}
		case b == '\r':
			// ignore
		default:
			if v, ok := hexValue(b); ok {
				c.size = c.size*16 + uint64(v)
			}
			// non-hex, non-CR bytes in the size field are silently
			// skipped for robustness against stray whitespace.
		}

	case chunkedExtension:
		if b == '\n' {
			if c.size == 0 {
				c.state = chunkedTrailer
			} else {
				c.state = chunkedPayload
			}
		}

	case chunkedPayloadEnd:
		if b == '\n' {
			c.state = chunkedSize
		}

	case chunkedTrailer:
		switch b {
		case '\r':
			// ignore
		case '\n':
			c.state = chunkedFinal
		default:
			c.state = chunkedTrailerHeader
		}

	case chunkedTrailerHeader:
		if b == '\n' {
			c.state = chunkedTrailer
		}
	}
}
