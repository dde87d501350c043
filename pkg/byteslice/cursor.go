// Package byteslice provides the borrowed-byte-slice cursor the sink
// pipeline and parsers are built around: a view over a contiguous region
// with in-place split/eat/trim semantics so parsing never allocates.
package byteslice

// Cursor is a mutable borrow over a contiguous byte run. Split, Eat, and
// Trim advance or shorten the view in place; the caller retains ownership
// of the backing array. Cursor itself is never copied across calls that
// should see the advanced position — always pass by pointer.
type Cursor struct {
	data []byte
}

// NewCursor wraps b for cursor-style consumption.
func NewCursor(b []byte) *Cursor {
	return &Cursor{data: b}
}

// Empty reports whether the cursor has no bytes left.
func (c *Cursor) Empty() bool { return len(c.data) == 0 }

// Size returns the number of bytes remaining.
func (c *Cursor) Size() int { return len(c.data) }

// Bytes returns the remaining bytes without consuming them.
func (c *Cursor) Bytes() []byte { return c.data }

// Eat consumes and returns the first byte, if any.
func (c *Cursor) Eat() (b byte, ok bool) {
	if len(c.data) == 0 {
		return 0, false
	}
	b, c.data = c.data[0], c.data[1:]
	return b, true
}

// Split consumes and returns up to n bytes from the front. If fewer than n
// remain, it returns all of them (never errors, never blocks).
func (c *Cursor) Split(n int) []byte {
	if n > len(c.data) {
		n = len(c.data)
	}
	out := c.data[:n]
	c.data = c.data[n:]
	return out
}

// Reset replaces the cursor's view.
func (c *Cursor) Reset(b []byte) { c.data = b }
