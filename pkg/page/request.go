package page

import (
	"strings"

	"github.com/stefanreuther/afl-sub002/pkg/form"
	"github.com/stefanreuther/afl-sub002/pkg/header"
	"github.com/stefanreuther/afl-sub002/pkg/httpurl"
	"github.com/stefanreuther/afl-sub002/pkg/sink"
)

type inputStatus int

const (
	inputUndecided inputStatus = iota
	inputIgnore
	inputSaveBody
	inputParseForm
)

// Request holds the input data for a Page.HandleRequest call. A Dispatcher
// configures it before handing it to a Page; since it is not needed
// afterward, a Page may also modify it.
//
// Original path layout:
//
//	/foo/bar.htm/baz?a=1&b=2&c=33
//	|  ||      ||  ||           |
//	root  self  path  arguments
type Request struct {
	headers   header.Table
	body      *sink.InternalSink
	arguments header.Table

	method   string
	rootPath string
	selfPath string
	path     string

	status     inputStatus
	formParser *form.Parser
}

// NewRequest constructs a Request for the given root/self/path segments,
// parsing any query string in path as form arguments.
func NewRequest(rootPath, selfPath, path string) *Request {
	r := &Request{
		method:   "GET",
		rootPath: rootPath,
		selfPath: selfPath,
		path:     path,
		body:     sink.NewInternalSink(),
	}
	r.formParser = form.NewParser(&r.arguments)
	httpurl.MatchArguments(&r.path, &r.arguments)
	return r
}

// SetIgnoreData marks any request body as known-irrelevant; subsequent
// HandleData calls discard their input instead of parsing or storing it.
func (r *Request) SetIgnoreData() { r.status = inputIgnore }

// HandleData processes a chunk of request body bytes, parsing it as form
// data, storing it, or discarding it depending on the request's headers.
func (r *Request) HandleData(data []byte) {
	if r.status == inputUndecided {
		switch {
		case r.method == "GET" || r.method == "HEAD":
			r.status = inputIgnore
		default:
			if f := r.headers.Get("Content-Type"); f != nil {
				switch strings.ToLower(f.GetPrimaryValue(0)) {
				case "application/x-www-form-urlencoded":
					r.status = inputParseForm
				case "multipart/form-data":
					// No multipart parser; treated as ignored body.
					r.status = inputIgnore
				default:
					r.status = inputSaveBody
				}
			} else {
				r.status = inputIgnore
			}
		}
	}

	switch r.status {
	case inputSaveBody:
		sink.HandleFullData(r.body, data)
	case inputParseForm:
		sink.HandleFullData(r.formParser, data)
	}
}

// Finish must be called once the whole request body has been delivered. It
// flushes any pending form key/value pair.
func (r *Request) Finish() {
	if r.status == inputParseForm {
		r.formParser.Complete()
	}
}

// Headers returns the request headers, mutable.
func (r *Request) Headers() *header.Table { return &r.headers }

// Body returns the raw upload body, populated only when the content type
// was neither form-urlencoded nor multipart.
func (r *Request) Body() *sink.InternalSink { return r.body }

// Arguments returns the combined GET (query-string) and POST (form-body)
// arguments.
func (r *Request) Arguments() *header.Table { return &r.arguments }

// Method returns the request method (upper-case).
func (r *Request) Method() string { return r.method }

// SetMethod overrides the request method, for example to rewrite HEAD to
// GET before dispatching to a GET-only page.
func (r *Request) SetMethod(method string) { r.method = method }

// RootPath returns the dispatcher prefix this request was served under.
func (r *Request) RootPath() string { return r.rootPath }

// SelfPath returns the matched page's own path.
func (r *Request) SelfPath() string { return r.selfPath }

// Path returns the path remainder passed to the page as a parameter.
func (r *Request) Path() string { return r.path }
