package header

import (
	"io"
	"strings"
)

// Table is an ordered sequence of header fields. Duplicates are preserved
// and retrievable only via Enumerate; name matching is ASCII
// case-insensitive, but names are stored verbatim so echoed header names
// preserve the caller's casing. Grounded on afl::net::HeaderTable
// (afl/net/headertable.cpp).
type Table struct {
	fields []Field
}

// Add appends a field unconditionally.
func (t *Table) Add(name, value string) {
	t.fields = append(t.fields, NewField(name, value))
}

// HandleHeader implements Consumer by appending.
func (t *Table) HandleHeader(name, value string) { t.Add(name, value) }

// Set updates the first case-insensitively matching field, or appends if
// none exists.
func (t *Table) Set(name, value string) {
	for i := range t.fields {
		if strings.EqualFold(t.fields[i].Name, name) {
			t.fields[i].Value = value
			return
		}
	}
	t.Add(name, value)
}

// Get returns the first case-insensitively matching field, or nil. The
// returned pointer is invalidated by the next mutating call.
func (t *Table) Get(name string) *Field {
	for i := range t.fields {
		if strings.EqualFold(t.fields[i].Name, name) {
			return &t.fields[i]
		}
	}
	return nil
}

// GetString is a convenience for the common case of wanting just the value.
func (t *Table) GetString(name string) (string, bool) {
	if f := t.Get(name); f != nil {
		return f.Value, true
	}
	return "", false
}

// Has reports whether a matching field exists.
func (t *Table) Has(name string) bool { return t.Get(name) != nil }

// Len returns the number of fields, including duplicates.
func (t *Table) Len() int { return len(t.fields) }

// Enumerate invokes consumer for every field in insertion order.
func (t *Table) Enumerate(consumer Consumer) {
	for _, f := range t.fields {
		consumer.HandleHeader(f.Name, f.Value)
	}
}

// Reset empties the table.
func (t *Table) Reset() { t.fields = t.fields[:0] }

// WriteTo emits "name: value\r\n" lines in insertion order, implementing
// io.WriterTo.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, f := range t.fields {
		for _, piece := range [...]string{f.Name, ": ", f.Value, "\r\n"} {
			n, err := io.WriteString(w, piece)
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}
