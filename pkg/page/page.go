// Package page implements a simpler request/response abstraction layered on
// top of http11: a Page takes input in a PageRequest and produces output in
// a PageResponse, without having to deal with HTTP framing itself. A
// Dispatcher serves a tree of named pages under a common prefix. Grounded on
// afl::net::http::{Page,PageRequest,PageResponse,PageDispatcher}
// (afl/net/http/{page,pagerequest,pageresponse,pagedispatcher}.{hpp,cpp}).
//
// A Page buffers its whole request and response message; it is not suited
// to huge uploads or downloads, which should instead be handled directly
// against http11's streaming parsers.
package page

// Page answers requests dispatched to it by a Dispatcher.
type Page interface {
	// IsValidMethod reports whether method (upper-case) is one this page
	// accepts.
	IsValidMethod(method string) bool

	// IsValidPath reports whether this page accepts a path remainder
	// appended to its own path.
	IsValidPath() bool

	// HandleRequest performs the page's logic, reading req and writing
	// resp. It may freely modify req.
	HandleRequest(req *Request, resp *Response)
}
