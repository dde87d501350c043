package header

import (
	"strings"
	"testing"
)

func TestTableAddAndGet(t *testing.T) {
	var tbl Table
	tbl.Add("Content-Type", "text/plain")
	tbl.Add("X-Custom", "1")

	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
	if v, ok := tbl.GetString("content-type"); !ok || v != "text/plain" {
		t.Errorf("GetString case-insensitive = (%q, %v)", v, ok)
	}
	if !tbl.Has("x-custom") {
		t.Errorf("expected Has to be case-insensitive")
	}
	if tbl.Has("missing") {
		t.Errorf("unexpected Has(missing)")
	}
}

func TestTableSetUpdatesFirstMatch(t *testing.T) {
	var tbl Table
	tbl.Add("A", "1")
	tbl.Add("A", "2")
	tbl.Set("a", "replaced")

	if tbl.Len() != 2 {
		t.Fatalf("Set should not append when a match exists, Len() = %d", tbl.Len())
	}
	if v, _ := tbl.GetString("A"); v != "replaced" {
		t.Errorf("first match not updated, got %q", v)
	}

	tbl.Set("B", "new")
	if tbl.Len() != 3 {
		t.Fatalf("Set should append when no match exists, Len() = %d", tbl.Len())
	}
}

func TestTableEnumeratePreservesOrderAndDuplicates(t *testing.T) {
	var tbl Table
	tbl.Add("A", "1")
	tbl.Add("B", "2")
	tbl.Add("A", "3")

	var got []string
	tbl.Enumerate(ConsumerFunc(func(name, value string) {
		got = append(got, name+"="+value)
	}))
	want := []string{"A=1", "B=2", "A=3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTableReset(t *testing.T) {
	var tbl Table
	tbl.Add("A", "1")
	tbl.Reset()
	if tbl.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", tbl.Len())
	}
}

func TestTableWriteTo(t *testing.T) {
	var tbl Table
	tbl.Add("Content-Type", "text/plain")
	tbl.Add("X", "y")

	var b strings.Builder
	n, err := tbl.WriteTo(&b)
	if err != nil {
		t.Fatalf("WriteTo error: %v", err)
	}
	want := "Content-Type: text/plain\r\nX: y\r\n"
	if int(n) != len(want) {
		t.Errorf("WriteTo returned n=%d, want %d", n, len(want))
	}
	if b.String() != want {
		t.Errorf("WriteTo output = %q, want %q", b.String(), want)
	}
}

func TestTableAsHeaderHandlerConsumer(t *testing.T) {
	var tbl Table
	var c Consumer = &tbl
	c.HandleHeader("A", "1")
	if tbl.Len() != 1 {
		t.Errorf("Table did not implement Consumer correctly")
	}
}
