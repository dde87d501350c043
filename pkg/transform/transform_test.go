package transform

import (
	"bytes"
	"compress/gzip"
	"testing"
	"time"

	"github.com/stefanreuther/afl-sub002/pkg/byteslice"
)

func gzipCompress(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf.Bytes()
}

// drain repeatedly calls Transform until want bytes have been produced or
// the deadline passes; the decompressor runs in background goroutines, so
// output may not be immediately available after Transform is first fed.
func drain(t *testing.T, tr *streamTransform, input []byte, want int) []byte {
	t.Helper()
	cur := byteslice.NewCursor(input)
	var got []byte
	scratch := make([]byte, 4096)
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < want && time.Now().Before(deadline) {
		n := tr.Transform(cur, scratch)
		if n > 0 {
			got = append(got, scratch[:n]...)
		} else {
			time.Sleep(time.Millisecond)
		}
	}
	return got
}

func TestGzipTransformRoundTrip(t *testing.T) {
	const payload = "hello, gzip world"
	compressed := gzipCompress(t, payload)

	gt := NewGzipTransform()
	got := drain(t, gt.streamTransform, compressed, len(payload))
	if string(got) != payload {
		t.Errorf("got %q, want %q", got, payload)
	}
}

func TestForNameRecognizesTokens(t *testing.T) {
	if ForName("identity") != nil {
		t.Errorf("expected nil transform for identity encoding")
	}
	if ForName("gzip") == nil {
		t.Errorf("expected a transform for gzip")
	}
	if ForName("br") == nil {
		t.Errorf("expected a transform for br")
	}
	if ForName("deflate") == nil {
		t.Errorf("expected a transform for deflate")
	}
}
