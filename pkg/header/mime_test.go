package header

import (
	"testing"

	"github.com/stefanreuther/afl-sub002/pkg/byteslice"
)

type recordingConsumer struct {
	names  []string
	values []string
}

func (r *recordingConsumer) HandleHeader(name, value string) {
	r.names = append(r.names, name)
	r.values = append(r.values, value)
}

func runMIME(t *testing.T, input string) (*recordingConsumer, *MIMEParser, bool) {
	t.Helper()
	rec := &recordingConsumer{}
	p := NewMIMEParser(rec)
	cur := byteslice.NewCursor([]byte(input))
	done := p.HandleData(cur)
	return rec, p, done
}

func TestMIMEParserSimple(t *testing.T) {
	rec, p, done := runMIME(t, "Content-Type: text/plain\r\nX: y\r\n\r\n")
	if !done {
		t.Fatalf("expected parser to reach Final state")
	}
	if p.HasErrors() {
		t.Errorf("unexpected error flag")
	}
	if len(rec.names) != 2 || rec.names[0] != "Content-Type" || rec.values[0] != "text/plain" {
		t.Errorf("got names=%v values=%v", rec.names, rec.values)
	}
	if rec.names[1] != "X" || rec.values[1] != "y" {
		t.Errorf("got names=%v values=%v", rec.names, rec.values)
	}
}

func TestMIMEParserFolding(t *testing.T) {
	rec, p, done := runMIME(t, "Folded: a\n b\n c\n\n")
	if !done {
		t.Fatalf("expected parser to reach Final state")
	}
	if !p.Folded() {
		t.Errorf("expected folding flag to be set")
	}
	if len(rec.names) != 1 || rec.names[0] != "Folded" || rec.values[0] != "a b c" {
		t.Errorf("got names=%v values=%v", rec.names, rec.values)
	}
}

func TestMIMEParserErrorFlagContinuesParsing(t *testing.T) {
	rec, p, done := runMIME(t, "a:b\n:c\n\n")
	if !done {
		t.Fatalf("expected parser to reach Final state")
	}
	if !p.HasErrors() {
		t.Errorf("expected error flag to be set")
	}
	if len(rec.names) != 1 || rec.names[0] != "a" || rec.values[0] != "b" {
		t.Errorf("got names=%v values=%v", rec.names, rec.values)
	}
}

func TestMIMEParserArbitrarySplitPoint(t *testing.T) {
	input := "A: 1\r\nLong-Header-Name: some value with spaces\r\nFolded: x\n y\n\r\n"

	full, _, doneFull := runMIME(t, input)
	if !doneFull {
		t.Fatalf("whole-input feed did not reach Final")
	}

	for k := 0; k <= len(input); k++ {
		rec := &recordingConsumer{}
		p := NewMIMEParser(rec)
		cur1 := byteslice.NewCursor([]byte(input[:k]))
		done := p.HandleData(cur1)
		if !done {
			cur2 := byteslice.NewCursor([]byte(input[k:]))
			done = p.HandleData(cur2)
		}
		if !done {
			t.Fatalf("split at %d: never reached Final", k)
		}
		if len(rec.names) != len(full.names) {
			t.Fatalf("split at %d: got %v names, want %v", k, rec.names, full.names)
		}
		for i := range rec.names {
			if rec.names[i] != full.names[i] || rec.values[i] != full.values[i] {
				t.Fatalf("split at %d: field %d = (%q,%q), want (%q,%q)", k, i, rec.names[i], rec.values[i], full.names[i], full.values[i])
			}
		}
	}
}
