package http11

import (
	"strconv"
	"strings"

	"github.com/stefanreuther/afl-sub002/pkg/byteslice"
	"github.com/stefanreuther/afl-sub002/pkg/header"
	"github.com/stefanreuther/afl-sub002/pkg/sink"
	"github.com/stefanreuther/afl-sub002/pkg/transform"
)

type responseState int

const (
	responseVersion responseState = iota
	responseStatusCode
	responseStatusPhrase
	responseHeader
	responseFinalSuccess
	responseFinalError
)

// LimitKind classifies how a response body's end is determined.
type LimitKind int

const (
	// LimitNone means the response has no body.
	LimitNone LimitKind = iota
	// LimitChunk means the body is chunked transfer-encoded.
	LimitChunk
	// LimitByte means the body has a known length (Content-Length or
	// Content-Range).
	LimitByte
	// LimitStream means the body ends only when the connection closes.
	LimitStream
)

// ResponseParser parses an HTTP status line, headers, and interprets the
// semantically significant response headers. Six states: ParseVersion,
// ParseStatusCode, ParseStatusPhrase, ParseHeader, FinalSuccess,
// FinalError. Grounded on afl::net::http::ClientResponse
// (afl/net/http/clientresponse.cpp).
type ResponseParser struct {
	state responseState

	version strings.Builder
	code    strings.Builder
	phrase  strings.Builder

	statusCode int

	headers    header.Table
	mime       *header.MIMEParser
	setCookies []string

	headRequest bool

	hasContentLength bool
	contentLength    uint64

	hasContentRange bool
	rangeOffset     uint64
	rangeLength     uint64
	rangeTotal      uint64

	chunked      bool
	connection   string
	hasConn      bool
	contentCoding string
}

// NewResponseParser constructs a parser ready to receive status-line bytes.
// headRequest tells the parser whether the originating request used the
// HEAD method, which affects hasBody().
func NewResponseParser(headRequest bool) *ResponseParser {
	p := &ResponseParser{headRequest: headRequest}
	p.mime = header.NewMIMEParser(header.ConsumerFunc(p.consumeHeader))
	return p
}

var _ sink.Sink = (*ResponseParser)(nil)

func (p *ResponseParser) fail() {
	p.state = responseFinalError
	p.statusCode = 500
}

// HandleData implements sink.Sink.
func (p *ResponseParser) HandleData(data *byteslice.Cursor) bool {
	for p.state != responseFinalSuccess && p.state != responseFinalError {
		if p.state == responseHeader {
			if p.mime.HandleData(data) {
				p.state = responseFinalSuccess
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

func (p *ResponseParser) step(b byte) {
	if b == '\r' {
		return
	}
	isWS := b == ' ' || b == '\t'

	switch p.state {
	case responseVersion:
		if isWS {
			p.state = responseStatusCode
			return
		}
		p.version.WriteByte(b)
		if p.version.Len() > MaxStatusLineVersion {
			p.fail()
		}

	case responseStatusCode:
		if isWS {
			if p.code.Len() == 0 {
				return
			}
			code, err := strconv.Atoi(p.code.String())
			if err != nil {
				p.fail()
				return
			}
			p.statusCode = code
			p.state = responseStatusPhrase
			return
		}
		if b < '0' || b > '9' {
			p.fail()
			return
		}
		p.code.WriteByte(b)

	case responseStatusPhrase:
		if b == '\n' {
			p.state = responseHeader
			return
		}
		p.phrase.WriteByte(b)
		if p.phrase.Len() > MaxStatusLinePhrase {
			p.fail()
		}
	}
}

func (p *ResponseParser) consumeHeader(name, value string) {
	switch {
	case strings.EqualFold(name, "Content-Length"):
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err == nil {
			p.hasContentLength = true
			p.contentLength = n
		}
	case strings.EqualFold(name, "Content-Range"):
		if offset, length, total, ok := parseContentRange(value); ok {
			p.hasContentRange = true
			p.rangeOffset = offset
			p.rangeLength = length
			p.rangeTotal = total
		}
	case strings.EqualFold(name, "Connection"):
		p.hasConn = true
		p.connection = strings.TrimSpace(value)
	case strings.EqualFold(name, "Transfer-Encoding"):
		if strings.EqualFold(strings.TrimSpace(value), "chunked") {
			p.chunked = true
		}
	case strings.EqualFold(name, "Content-Encoding"):
		p.contentCoding = strings.TrimSpace(value)
	case strings.EqualFold(name, "Set-Cookie"):
		p.setCookies = append(p.setCookies, value)
	default:
		p.headers.Add(name, value)
	}
}

// parseContentRange parses "bytes <start>-<end>/<total>" and validates
// start <= end+1 <= total and end < total, per §4.6.
func parseContentRange(value string) (offset, length, total uint64, ok bool) {
	v := strings.TrimSpace(value)
	v = strings.TrimPrefix(v, "bytes")
	v = strings.TrimSpace(v)

	dash := strings.IndexByte(v, '-')
	slash := strings.IndexByte(v, '/')
	if dash < 0 || slash < 0 || slash < dash {
		return 0, 0, 0, false
	}
	start, err1 := strconv.ParseUint(v[:dash], 10, 64)
	end, err2 := strconv.ParseUint(v[dash+1:slash], 10, 64)
	total, err3 := strconv.ParseUint(v[slash+1:], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	if !(start <= end+1 && end+1 <= total) || !(end < total) {
		return 0, 0, 0, false
	}
	return start, end + 1 - start, total, true
}

// StatusCode returns the parsed numeric status code (500 on FinalError).
func (p *ResponseParser) StatusCode() int { return p.statusCode }

// Version returns the response's protocol version token.
func (p *ResponseParser) Version() string { return p.version.String() }

// Phrase returns the status reason phrase.
func (p *ResponseParser) Phrase() string { return p.phrase.String() }

// Headers returns the table of headers not semantically interpreted.
func (p *ResponseParser) Headers() *header.Table { return &p.headers }

// SetCookieValues returns the raw (still unparsed) Set-Cookie header
// values, in wire order.
func (p *ResponseParser) SetCookieValues() []string { return p.setCookies }

// HasBody reports whether a response body is expected at all.
func (p *ResponseParser) HasBody() bool {
	if p.headRequest {
		return false
	}
	switch p.statusCode {
	case 204, 304:
		return false
	}
	return p.statusCode >= 200
}

// LimitKind classifies how the body's end is determined.
func (p *ResponseParser) LimitKind() LimitKind {
	if !p.HasBody() {
		return LimitNone
	}
	if p.chunked {
		return LimitChunk
	}
	if p.hasContentRange || p.hasContentLength {
		return LimitByte
	}
	return LimitStream
}

// ResponseLength returns the expected body length, or 0 when unknown/absent.
func (p *ResponseParser) ResponseLength() uint64 {
	if !p.HasBody() {
		return 0
	}
	if p.hasContentRange {
		return p.rangeLength
	}
	if p.hasContentLength {
		return p.contentLength
	}
	return 0
}

// ResponseOffset returns the Content-Range start offset, or 0.
func (p *ResponseParser) ResponseOffset() uint64 {
	if p.hasContentRange {
		return p.rangeOffset
	}
	return 0
}

// TotalLength returns the full resource length: the Content-Range total
// when present, else the Content-Length, else 0 when neither is known.
func (p *ResponseParser) TotalLength() uint64 {
	switch {
	case p.hasContentRange:
		return p.rangeTotal
	case p.hasContentLength:
		return p.contentLength
	default:
		return 0
	}
}

// ContentEncoding returns the raw Content-Encoding token ("gzip",
// "deflate", "identity", something unrecognized, or "" if absent).
func (p *ResponseParser) ContentEncoding() string { return p.contentCoding }

// BodySink wraps peer in a decoding sink matching this response's
// Content-Encoding (gzip, deflate, br), or returns peer unchanged if the
// encoding is absent, "identity", or unrecognized.
func (p *ResponseParser) BodySink(peer sink.Sink) sink.Sink {
	tr := transform.ForName(strings.ToLower(p.contentCoding))
	if tr == nil {
		return peer
	}
	out := sink.NewTransformDataSink(peer)
	out.SetTransform(tr)
	return out
}

// IsKeepalive reports whether the connection may be reused for another
// request.
func (p *ResponseParser) IsKeepalive() bool {
	if p.LimitKind() == LimitStream || p.HasErrors() {
		return false
	}
	if p.hasConn {
		return strings.EqualFold(p.connection, "keep-alive")
	}
	return p.version.String() == "HTTP/1.1"
}

// HasErrors reports a parse failure, a MIME-header syntax error, or a
// status code outside [100, 999].
func (p *ResponseParser) HasErrors() bool {
	return p.state == responseFinalError || p.mime.HasErrors() || p.statusCode < 100 || p.statusCode > 999
}
