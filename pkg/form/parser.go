// Package form decodes "application/x-www-form-urlencoded" request bodies.
// Grounded on afl::net::http::FormParser (afl/net/http/formparser.cpp).
package form

import (
	"strconv"
	"strings"

	"github.com/stefanreuther/afl-sub002/pkg/byteslice"
	"github.com/stefanreuther/afl-sub002/pkg/header"
	"github.com/stefanreuther/afl-sub002/pkg/sink"
)

type parserState int

const (
	parserKey parserState = iota
	parserValue
)

// Parser is a two-state (Key, Value) byte-at-a-time decoder for
// "key=value&key=value" bodies. It never signals completion through
// HandleData — the body's end is determined externally (by Content-Length
// or connection close) — so the caller must call Complete() once the body
// has been fully delivered to flush any pending pair.
type Parser struct {
	consumer header.Consumer
	state    parserState
	key      strings.Builder
	value    strings.Builder
}

// NewParser constructs a parser delivering decoded (key, value) pairs to
// consumer.
func NewParser(consumer header.Consumer) *Parser {
	return &Parser{consumer: consumer}
}

var _ sink.Sink = (*Parser)(nil)

// Complete flushes any pending (key, value) pair — including one where
// either side is empty, as long as the other is not — and resets to Key.
// Idempotent when called after consecutive '&' separators.
func (p *Parser) Complete() {
	if p.key.Len() > 0 || p.value.Len() > 0 {
		p.consumer.HandleHeader(decode(p.key.String()), decode(p.value.String()))
		p.key.Reset()
		p.value.Reset()
	}
	p.state = parserKey
}

// HandleData implements sink.Sink. It always returns false: the form body
// has no internal terminator, so the caller determines completion (via
// Content-Length or connection close) and calls Complete().
func (p *Parser) HandleData(data *byteslice.Cursor) bool {
	for {
		b, ok := data.Eat()
		if !ok {
			return false
		}
		if b == '&' {
			// A bare '&' with no preceding '=' is processed the same way
			// in either state, matching httpurl.MatchArguments.
			p.Complete()
			continue
		}
		if p.state == parserKey {
			if b == '=' {
				p.state = parserValue
			} else {
				p.key.WriteByte(b)
			}
		} else {
			p.value.WriteByte(b)
		}
	}
}

func decode(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
				b.WriteByte(byte(v))
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
