package http11

import (
	"strings"

	"github.com/stefanreuther/afl-sub002/pkg/byteslice"
	"github.com/stefanreuther/afl-sub002/pkg/header"
	"github.com/stefanreuther/afl-sub002/pkg/httpurl"
	"github.com/stefanreuther/afl-sub002/pkg/sink"
)

type requestState int

const (
	requestMethod requestState = iota
	requestMethodSp
	requestPath
	requestPathSp
	requestVersion
	requestHeader
	requestDone
	requestError
)

// RequestParser parses an HTTP request line and header block byte-at-a-time.
// Eight states: Method, MethodSp, Path, PathSp, Version, Header, Done,
// Error. Grounded on afl::net::http::Request (afl/net/http/request.cpp).
type RequestParser struct {
	state      requestState
	method     strings.Builder
	path       strings.Builder
	version    strings.Builder
	version09  bool
	headers    header.Table
	mime       *header.MIMEParser
}

// NewRequestParser constructs a parser ready to receive request-line bytes.
func NewRequestParser() *RequestParser {
	p := &RequestParser{}
	p.mime = header.NewMIMEParser(&p.headers)
	return p
}

var _ sink.Sink = (*RequestParser)(nil)

// HandleData implements sink.Sink. It returns true once the request line
// and header block have both been fully parsed (Done), or parsing has
// failed terminally (Error).
func (p *RequestParser) HandleData(data *byteslice.Cursor) bool {
	for p.state != requestDone && p.state != requestError {
		if p.state == requestHeader {
			if p.mime.HandleData(data) {
				p.state = requestDone
			} else {
				return false
			}
			continue
		}
		b, ok := data.Eat()
		if !ok {
			return false
		}
		p.step(b)
	}
	return true
}

func (p *RequestParser) step(b byte) {
	isSpace := b == ' '
	isCR := b == '\r'
	isLF := b == '\n'

	switch p.state {
	case requestMethod:
		switch {
		case isLF:
			p.state = requestError
		case isSpace || isCR:
			p.state = requestMethodSp
		default:
			p.method.WriteByte(b)
		}

	case requestMethodSp:
		switch {
		case isLF:
			p.state = requestError
		case isSpace || isCR:
			// skip
		default:
			p.path.WriteByte(b)
			p.state = requestPath
		}

	case requestPath:
		switch {
		case isLF:
			p.version09 = true
			p.state = requestDone
		case isSpace || isCR:
			p.state = requestPathSp
		default:
			p.path.WriteByte(b)
		}

	case requestPathSp:
		switch {
		case isLF:
			p.version09 = true
			p.state = requestDone
		case isSpace || isCR:
			// skip
		default:
			p.version.WriteByte(b)
			p.state = requestVersion
		}

	case requestVersion:
		switch {
		case isLF:
			p.state = requestHeader
		case isCR:
			// skip
		default:
			p.version.WriteByte(b)
		}
	}
}

// Method returns the request method, verbatim (case-sensitive) as received.
func (p *RequestParser) Method() string { return p.method.String() }

// MethodID returns the numeric method ID, or MethodUnknown.
func (p *RequestParser) MethodID() uint8 { return ParseMethodID([]byte(p.method.String())) }

// Path returns the request-URI, verbatim as received.
func (p *RequestParser) Path() string { return p.path.String() }

// Version returns the protocol version ("HTTP/1.1", "HTTP/1.0", or the
// synthesized "HTTP/0.9" for requests with no version token).
func (p *RequestParser) Version() string {
	if p.version09 {
		return "HTTP/0.9"
	}
	return p.version.String()
}

// Headers returns the parsed header table.
func (p *RequestParser) Headers() *header.Table { return &p.headers }

// HasErrors reports a malformed request line or header block.
func (p *RequestParser) HasErrors() bool {
	return p.state == requestError || p.mime.HasErrors()
}

// IsResponseHeaderRequested reports whether the client expects a status
// line and headers at all; false only for HTTP/0.9.
func (p *RequestParser) IsResponseHeaderRequested() bool {
	return !p.version09
}

// IsResponseBodyRequested reports whether a response body should be sent;
// true for every method except HEAD.
func (p *RequestParser) IsResponseBodyRequested() bool {
	return p.MethodID() != MethodHEAD
}

// IsKeepalive reports whether the connection should remain open after this
// request. False for HTTP/0.9; for HTTP/1.1, true unless "Connection:
// close"; otherwise (HTTP/1.0), true iff "Connection: keepalive" is
// present.
func (p *RequestParser) IsKeepalive() bool {
	if p.version09 {
		return false
	}
	conn, has := p.headers.GetString("Connection")
	if p.version.String() == "HTTP/1.1" {
		return !(has && strings.EqualFold(strings.TrimSpace(conn), "close"))
	}
	return has && strings.EqualFold(strings.TrimSpace(conn), "keepalive")
}

// MatchPath applies the §4.2 prefix-match rule to the request path.
func (p *RequestParser) MatchPath(prefix string) (suffix string, ok bool) {
	return httpurl.MatchPath(p.path.String(), prefix)
}
