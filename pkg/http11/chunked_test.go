package http11

import (
	"testing"

	"github.com/stefanreuther/afl-sub002/pkg/byteslice"
	"github.com/stefanreuther/afl-sub002/pkg/sink"
)

type capturingSink struct {
	data []byte
}

func (c *capturingSink) HandleData(data *byteslice.Cursor) bool {
	c.data = append(c.data, data.Split(data.Size())...)
	return false
}

func TestChunkedSinkBasic(t *testing.T) {
	var capture capturingSink
	c := NewChunkedSink(&capture)
	input := "4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n"
	cur := byteslice.NewCursor([]byte(input))
	if !c.HandleData(cur) {
		t.Fatalf("decoder did not complete")
	}
	if string(capture.data) != "Wikipedia" {
		t.Errorf("got %q, want %q", capture.data, "Wikipedia")
	}
}

func TestChunkedSinkWithExtensionAndTrailer(t *testing.T) {
	var capture capturingSink
	c := NewChunkedSink(&capture)
	input := "3;ext=1\r\nfoo\r\n0\r\nX-Trailer: y\r\n\r\n"
	cur := byteslice.NewCursor([]byte(input))
	if !c.HandleData(cur) {
		t.Fatalf("decoder did not complete")
	}
	if string(capture.data) != "foo" {
		t.Errorf("got %q, want foo", capture.data)
	}
}

func TestChunkedSinkStopsAtFinal(t *testing.T) {
	var capture capturingSink
	c := NewChunkedSink(&capture)
	input := "3\r\nfoo\r\n0\r\n\r\nEXTRA"
	cur := byteslice.NewCursor([]byte(input))
	if !c.HandleData(cur) {
		t.Fatalf("decoder did not complete")
	}
	if cur.Size() != len("EXTRA") {
		t.Errorf("expected trailing bytes left in cursor, got %d remaining", cur.Size())
	}
}

func TestChunkedSinkArbitrarySplitPoint(t *testing.T) {
	input := "4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n"
	for k := 0; k <= len(input); k++ {
		var capture capturingSink
		c := NewChunkedSink(&capture)
		cur1 := byteslice.NewCursor([]byte(input[:k]))
		done := c.HandleData(cur1)
		if !done {
			cur2 := byteslice.NewCursor([]byte(input[k:]))
			done = c.HandleData(cur2)
		}
		if !done {
			t.Fatalf("split at %d: decoder never completed", k)
		}
		if string(capture.data) != "Wikipedia" {
			t.Fatalf("split at %d: got %q, want Wikipedia", k, capture.data)
		}
	}
}

var _ sink.Sink = (*capturingSink)(nil)
