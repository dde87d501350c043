package form

import (
	"testing"

	"github.com/stefanreuther/afl-sub002/pkg/byteslice"
)

type recorder struct {
	names, values []string
}

func (r *recorder) HandleHeader(name, value string) {
	r.names = append(r.names, name)
	r.values = append(r.values, value)
}

func TestParserBasic(t *testing.T) {
	var rec recorder
	p := NewParser(&rec)
	cur := byteslice.NewCursor([]byte("a=1&b=hello+world&c=%2F"))
	if p.HandleData(cur) {
		t.Fatalf("HandleData must never signal completion on its own")
	}
	p.Complete()

	want := map[string]string{"a": "1", "b": "hello world", "c": "/"}
	if len(rec.names) != 3 {
		t.Fatalf("got %d pairs, want 3: %v", len(rec.names), rec.names)
	}
	for i, n := range rec.names {
		if want[n] != rec.values[i] {
			t.Errorf("%q = %q, want %q", n, rec.values[i], want[n])
		}
	}
}

func TestParserBareKeyNoEquals(t *testing.T) {
	var rec recorder
	p := NewParser(&rec)
	cur := byteslice.NewCursor([]byte("flag&a=1"))
	p.HandleData(cur)
	p.Complete()

	if len(rec.names) != 2 || rec.names[0] != "flag" || rec.values[0] != "" {
		t.Errorf("got %v / %v", rec.names, rec.values)
	}
}

func TestParserConsecutiveAmpersandsIdempotent(t *testing.T) {
	var rec recorder
	p := NewParser(&rec)
	cur := byteslice.NewCursor([]byte("a=1&&&b=2"))
	p.HandleData(cur)
	p.Complete()

	if len(rec.names) != 2 || rec.names[0] != "a" || rec.names[1] != "b" {
		t.Errorf("got %v", rec.names)
	}
}

func TestParserSplitAcrossCalls(t *testing.T) {
	var rec recorder
	p := NewParser(&rec)
	cur1 := byteslice.NewCursor([]byte("a=hel"))
	p.HandleData(cur1)
	cur2 := byteslice.NewCursor([]byte("lo&b=2"))
	p.HandleData(cur2)
	p.Complete()

	if len(rec.names) != 2 || rec.values[0] != "hello" {
		t.Errorf("got names=%v values=%v", rec.names, rec.values)
	}
}
