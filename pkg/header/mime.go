package header

import (
	"strings"

	"github.com/stefanreuther/afl-sub002/pkg/byteslice"
	"github.com/stefanreuther/afl-sub002/pkg/sink"
)

type mimeState int

const (
	mimeInitial mimeState = iota
	mimeKey
	mimeValue
	mimeNewline
	mimeError
	mimeFinal
)

// MIMEParser is a byte-at-a-time line-folded header parser driving a
// Consumer callback, matching the state table of afl::net::HeaderParser
// (afl/net/headerparser.cpp) exactly, including folding and the
// non-halting error flag.
type MIMEParser struct {
	consumer Consumer
	state    mimeState
	name     strings.Builder
	value    strings.Builder
	errorSet bool
	folded   bool
}

// NewMIMEParser constructs a parser delivering fields to consumer.
func NewMIMEParser(consumer Consumer) *MIMEParser {
	return &MIMEParser{consumer: consumer}
}

// HasErrors reports whether any syntactic anomaly was seen. Parsing
// continues regardless.
func (p *MIMEParser) HasErrors() bool { return p.errorSet }

// Folded reports whether any continuation (line-folded) header was seen.
func (p *MIMEParser) Folded() bool { return p.folded }

func (p *MIMEParser) flush() {
	if p.name.Len() > 0 || p.value.Len() > 0 {
		p.consumer.HandleHeader(p.name.String(), p.value.String())
	}
	p.name.Reset()
	p.value.Reset()
}

// HandleData implements sink.Sink. It returns true the moment the Final
// state (end of the header block) is reached; remaining input stays in the
// caller's cursor.
func (p *MIMEParser) HandleData(data *byteslice.Cursor) bool {
	for p.state != mimeFinal {
		b, ok := data.Eat()
		if !ok {
			return false
		}
		p.step(b)
	}
	return true
}

var _ sink.Sink = (*MIMEParser)(nil)

func (p *MIMEParser) step(b byte) {
	isSpace := b == ' ' || b == '\t'

	switch p.state {
	case mimeInitial:
		switch {
		case b == 0:
			p.errorSet = true
		case b == '\r':
			// ignore
		case b == '\n':
			p.state = mimeFinal
		case isSpace:
			p.errorSet = true
			p.state = mimeError
		case b == ':':
			p.errorSet = true
			p.state = mimeError
		default:
			p.name.WriteByte(b)
			p.state = mimeKey
		}

	case mimeKey:
		switch {
		case b == 0:
			p.errorSet = true
		case b == '\r':
			// ignore
		case b == '\n':
			p.errorSet = true
			p.name.Reset()
			p.state = mimeInitial
		case isSpace:
			p.errorSet = true
			p.state = mimeError
		case b == ':':
			p.state = mimeValue
		default:
			p.name.WriteByte(b)
		}

	case mimeValue:
		switch {
		case b == 0:
			p.errorSet = true
		case b == '\r':
			// ignore
		case b == '\n':
			p.state = mimeNewline
		case isSpace:
			if p.value.Len() > 0 {
				p.value.WriteByte(' ')
			}
		default:
			p.value.WriteByte(b)
		}

	case mimeNewline:
		switch {
		case b == 0:
			p.errorSet = true
		case b == '\r':
			// ignore
		case b == '\n':
			p.flush()
			p.state = mimeFinal
		case isSpace:
			p.folded = true
			if p.value.Len() > 0 {
				p.value.WriteByte(' ')
			}
			p.state = mimeValue
		case b == ':':
			p.flush()
			p.errorSet = true
			p.state = mimeError
		default:
			p.flush()
			p.name.WriteByte(b)
			p.state = mimeKey
		}

	case mimeError:
		if b == '\n' {
			p.state = mimeInitial
		}
		// everything else (including CR and NUL) is ignored

	case mimeFinal:
		// terminal
	}
}
