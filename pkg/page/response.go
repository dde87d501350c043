package page

import (
	"strconv"

	"github.com/stefanreuther/afl-sub002/pkg/header"
	"github.com/stefanreuther/afl-sub002/pkg/sink"
)

// Well-known status codes a Response can be set to directly by name.
const (
	StatusOK                  = 200
	StatusRedirectFound       = 302
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusInternalServerError = 500
)

// Response holds the result of a Page.HandleRequest call. A Page configures
// it; Dispatcher then calls Finish and sends the result to the client.
type Response struct {
	statusCode int
	headers    header.Table
	body       *sink.InternalSink
}

// NewResponse constructs a successful (200 OK) default response.
func NewResponse() *Response {
	return &Response{statusCode: StatusOK, body: sink.NewInternalSink()}
}

// SetStatusCode sets the HTTP status code.
func (r *Response) SetStatusCode(code int) { r.statusCode = code }

// StatusCode returns the current HTTP status code.
func (r *Response) StatusCode() int { return r.statusCode }

// StatusText returns a descriptive phrase for the current status code: an
// exact name for 200, 302, 400, 404, 405, 500, else a per-class fallback
// ("Informative"/"Success"/"Redirect"/"Client Error", and "Server Error"
// for 5xx and any other code).
func (r *Response) StatusText() string {
	switch r.statusCode {
	case StatusOK:
		return "OK"
	case StatusRedirectFound:
		return "Found"
	case StatusBadRequest:
		return "Bad Request"
	case StatusNotFound:
		return "Not Found"
	case StatusMethodNotAllowed:
		return "Method Not Allowed"
	case StatusInternalServerError:
		return "Internal Server Error"
	default:
		switch r.statusCode / 100 {
		case 1:
			return "Informative"
		case 2:
			return "Success"
		case 3:
			return "Redirect"
		case 4:
			return "Client Error"
		default:
			return "Server Error"
		}
	}
}

// Headers returns the response headers, mutable. Use this to set
// Content-Type and any other response headers.
func (r *Response) Headers() *header.Table { return &r.headers }

// Body returns the response message body, mutable.
func (r *Response) Body() *sink.InternalSink { return r.body }

// SetRedirect configures this response as a 302 redirect to address. No
// other configuration is needed, except possibly additional headers.
func (r *Response) SetRedirect(address string) {
	r.SetStatusCode(StatusRedirectFound)
	r.headers.Set("Location", address)
}

// Finish performs routine cleanup: if the status is an error (>= 300) and
// no body has been produced, it synthesizes a plain-text error document;
// it then always sets Content-Length to reflect the final body size.
func (r *Response) Finish() {
	if len(r.body.Content()) == 0 && r.statusCode >= 300 {
		sink.HandleFullData(r.body, []byte(r.StatusText()))
		r.headers.Add("Content-Type", "text/plain; charset=UTF-8")
	}
	r.headers.Set("Content-Length", strconv.Itoa(len(r.body.Content())))
}
