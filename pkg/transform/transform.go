// Package transform implements sink.Transform adapters for the
// Content-Encoding algorithms a response body may carry: gzip, deflate, and
// brotli. Generalizes afl::io::InflateDataSink (afl/io/inflatedatasink.cpp),
// which wraps zlib's Personality-selected inflate/gunzip, to the three
// codecs this stack's response parser recognizes.
//
// Each decompressor the ecosystem provides (klauspost/compress's gzip and
// flate, andybalholm/brotli) is a pull-style io.Reader, while sink.Transform
// is push-style. streamTransform bridges the two by running the
// decompressor against an in-process io.Pipe, fed by a small queue so
// neither the pipe's synchronous rendezvous nor a full output channel can
// wedge against the caller.
package transform

import (
	"io"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"

	"github.com/stefanreuther/afl-sub002/pkg/byteslice"
	"github.com/stefanreuther/afl-sub002/pkg/sink"
)

const outputQueueDepth = 64

// streamTransform adapts a pull-style io.Reader decompressor to
// sink.Transform.
type streamTransform struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  [][]byte
	closed bool

	chunks  chan []byte
	pending []byte
}

func newStreamTransform(newReader func(io.Reader) (io.Reader, error)) *streamTransform {
	pr, pw := io.Pipe()
	t := &streamTransform{chunks: make(chan []byte, outputQueueDepth)}
	t.cond = sync.NewCond(&t.mu)
	go t.writeLoop(pw)
	go t.readLoop(pr, newReader)
	return t
}

// writeLoop drains the queued input into the pipe, one caller-supplied
// chunk at a time, in order. It runs independently of Transform so a
// blocking pipe write can never stall the caller.
func (t *streamTransform) writeLoop(pw *io.PipeWriter) {
	for {
		t.mu.Lock()
		for len(t.queue) == 0 && !t.closed {
			t.cond.Wait()
		}
		if len(t.queue) == 0 && t.closed {
			t.mu.Unlock()
			pw.Close()
			return
		}
		b := t.queue[0]
		t.queue = t.queue[1:]
		t.mu.Unlock()

		if _, err := pw.Write(b); err != nil {
			return
		}
	}
}

// readLoop pulls decoded bytes from the decompressor and hands them to
// Transform via chunks. A full chunks channel pauses this loop, which
// pauses writeLoop in turn (via the pipe's rendezvous) — backpressure
// the caller relieves simply by calling Transform again.
func (t *streamTransform) readLoop(pr *io.PipeReader, newReader func(io.Reader) (io.Reader, error)) {
	defer close(t.chunks)
	r, err := newReader(pr)
	if err != nil {
		pr.CloseWithError(err)
		return
	}
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			t.chunks <- chunk
		}
		if err != nil {
			return
		}
	}
}

// Transform implements sink.Transform: it enqueues in's remaining bytes for
// the background decompressor and returns whatever decoded output is
// already queued, if any — never blocking.
func (t *streamTransform) Transform(in *byteslice.Cursor, out []byte) int {
	if len(t.pending) == 0 {
		if b := in.Split(in.Size()); len(b) > 0 {
			t.mu.Lock()
			t.queue = append(t.queue, b)
			t.mu.Unlock()
			t.cond.Signal()
		}
		select {
		case chunk, ok := <-t.chunks:
			if !ok {
				return 0
			}
			t.pending = chunk
		default:
			return 0
		}
	}

	n := copy(out, t.pending)
	t.pending = t.pending[n:]
	return n
}

// Close releases the background goroutines. The transform must not be used
// afterward.
func (t *streamTransform) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.cond.Signal()
}

// GzipTransform decodes a gzip-encoded response body.
type GzipTransform struct{ *streamTransform }

// NewGzipTransform constructs a gzip decoder.
func NewGzipTransform() *GzipTransform {
	return &GzipTransform{newStreamTransform(func(r io.Reader) (io.Reader, error) {
		return gzip.NewReader(r)
	})}
}

// DeflateTransform decodes a raw-deflate-encoded ("deflate") response body.
type DeflateTransform struct{ *streamTransform }

// NewDeflateTransform constructs a deflate decoder.
func NewDeflateTransform() *DeflateTransform {
	return &DeflateTransform{newStreamTransform(func(r io.Reader) (io.Reader, error) {
		return flate.NewReader(r), nil
	})}
}

// BrotliTransform decodes a brotli-encoded ("br") response body.
type BrotliTransform struct{ *streamTransform }

// NewBrotliTransform constructs a brotli decoder.
func NewBrotliTransform() *BrotliTransform {
	return &BrotliTransform{newStreamTransform(func(r io.Reader) (io.Reader, error) {
		return brotli.NewReader(r), nil
	})}
}

// ForName returns the decompressor for a Content-Encoding token
// ("gzip", "x-gzip", "deflate", "br"), or nil for an unrecognized or
// identity encoding.
func ForName(name string) sink.Transform {
	switch name {
	case "gzip", "x-gzip":
		return NewGzipTransform()
	case "deflate":
		return NewDeflateTransform()
	case "br":
		return NewBrotliTransform()
	default:
		return nil
	}
}
