package page

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/stefanreuther/afl-sub002/pkg/http11"
	"github.com/stefanreuther/afl-sub002/pkg/httpurl"
)

// Dispatcher serves a set of named Pages under a common prefix path.
// Grounded on afl::net::http::PageDispatcher (afl/net/http/pagedispatcher.cpp).
//
// Handling of nonexistent paths: outside the prefix, Dispatch returns nil
// (the caller decides what to do); inside the prefix, it synthesizes a 404
// Handler by default, or nil if SetHandleNonexistent(false) was called.
type Dispatcher struct {
	prefix            string
	pages             map[string]Page
	handleNonexistent bool
}

// NewDispatcher constructs a Dispatcher serving pages under prefix (if
// nonempty, should start but not end with "/").
func NewDispatcher(prefix string) *Dispatcher {
	return &Dispatcher{prefix: prefix, pages: make(map[string]Page), handleNonexistent: true}
}

// AddPage registers a page at path (must start with "/", should not end
// with "/"), under this dispatcher's prefix.
func (d *Dispatcher) AddPage(path string, p Page) {
	d.pages[path] = p
}

// SetHandleNonexistent configures whether unmatched paths within the prefix
// produce an internal 404 (true, the default) or no response at all
// (false), leaving the caller to decide.
func (d *Dispatcher) SetHandleNonexistent(flag bool) {
	d.handleNonexistent = flag
}

// Handler drives a single dispatched request from body bytes through to a
// rendered response. Grounded on
// afl::net::http::PageDispatcher::Handler (afl/net/http/pagedispatcher.cpp).
type Handler struct {
	page    Page
	request *Request
	resp    *Response

	version         string
	headerRequested bool
	suppressBody    bool
	pending         bool
}

// Dispatch matches req against this dispatcher's prefix and page tree,
// returning a Handler to drive the request to completion, or nil if req's
// path does not fall under this dispatcher's prefix (the caller is then
// responsible for producing some other response) or no page matched and
// nonexistent-path handling is disabled.
func (d *Dispatcher) Dispatch(req *http11.RequestParser) *Handler {
	selfPath, ok := req.MatchPath(d.prefix)
	if !ok {
		return nil
	}

	// Pages are matched by searching their keys in reverse lexicographic
	// order (largest key first), so a registered sub-page such as
	// "/two/sub" is tried before "/two".
	keys := make([]string, 0, len(d.pages))
	for k := range d.pages {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	var matchedPage Page
	var self, path string
	for _, k := range keys {
		if suffix, ok := httpurl.MatchPath(selfPath, k); ok {
			matchedPage = d.pages[k]
			self = k
			path = suffix
			break
		}
	}

	if matchedPage == nil && !d.handleNonexistent {
		return nil
	}

	pr := NewRequest(d.prefix, self, path)
	pr.SetMethod(req.Method())
	req.Headers().Enumerate(pr.Headers())

	resp := NewResponse()
	h := &Handler{
		page:            matchedPage,
		request:         pr,
		resp:            resp,
		version:         req.Version(),
		headerRequested: req.IsResponseHeaderRequested(),
		suppressBody:    req.Method() == "HEAD",
		pending:         true,
	}

	switch {
	case matchedPage == nil:
		resp.SetStatusCode(StatusNotFound)
		resp.Finish()
		pr.SetIgnoreData()
		h.pending = false

	case !matchedPage.IsValidMethod(pr.Method()):
		if pr.Method() == "HEAD" && matchedPage.IsValidMethod("GET") {
			pr.SetMethod("GET")
		} else {
			resp.SetStatusCode(StatusMethodNotAllowed)
			resp.Finish()
			pr.SetIgnoreData()
			h.pending = false
		}

	case pr.Path() != "" && !matchedPage.IsValidPath():
		resp.SetStatusCode(StatusNotFound)
		resp.Finish()
		pr.SetIgnoreData()
		h.pending = false
	}

	return h
}

// HandleData feeds a chunk of request body bytes to the underlying
// PageRequest.
func (h *Handler) HandleData(data []byte) {
	h.request.HandleData(data)
}

// Complete must be called once the whole request body has arrived. If the
// request wasn't already rejected (bad method / bad path / unknown page),
// it invokes the page and finishes the response.
func (h *Handler) Complete() {
	if !h.pending {
		return
	}
	h.request.Finish()
	if h.page != nil {
		h.page.HandleRequest(h.request, h.resp)
	} else {
		h.resp.SetStatusCode(StatusInternalServerError)
	}
	h.resp.Finish()
	h.pending = false
}

// Response exposes the underlying PageResponse, for callers that want to
// inspect it after Complete (for example, logging the final status code).
func (h *Handler) Response() *Response { return h.resp }

// Render produces the complete HTTP response bytes: status line and headers
// (omitted entirely for HTTP/0.9 requests), a blank line, then the body
// (omitted if the original request method was HEAD).
func (h *Handler) Render() []byte {
	var buf bytes.Buffer

	if h.headerRequested {
		buf.WriteString(h.version)
		buf.WriteByte(' ')
		buf.WriteString(strconv.Itoa(h.resp.StatusCode()))
		buf.WriteByte(' ')
		buf.WriteString(h.resp.StatusText())
		buf.WriteString("\r\n")
		h.resp.Headers().WriteTo(&buf)
		buf.WriteString("\r\n")
	}

	if !h.suppressBody {
		buf.Write(h.resp.Body().Content())
	}

	return buf.Bytes()
}
