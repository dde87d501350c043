// Package sink implements the push-style streaming data sink abstraction
// that the HTTP parsers, chunked decoder, and form parser are all built on
// top of. It generalizes afl::io::DataSink (afl/io/datasink.hpp): a single
// HandleData method that consumes as much of its input as it wants and
// reports whether it's done.
//
// handleData is a synchronous, non-suspending function of (state, input) ->
// (state, output): no goroutine, no channel, no blocking I/O. Callers that
// need to interleave a sink with transport I/O do so by reading into a
// buffer, calling HandleData, and looping.
package sink

import "github.com/stefanreuther/afl-sub002/pkg/byteslice"

// Sink consumes bytes pushed to it.
//
// HandleData consumes data.Bytes(), advancing the cursor past whatever it
// accepted. It returns false if it wants more data, true if it has had
// enough — in which case any bytes left in data are not this sink's and
// belong to whatever comes next in the pipeline.
type Sink interface {
	HandleData(data *byteslice.Cursor) bool
}

// HandleFullData is the "must consume everything" convenience afl exposes
// as DataSink::handleFullData: it reports ok=false if data was left over
// after the sink signalled completion.
func HandleFullData(s Sink, data []byte) (ok bool) {
	c := byteslice.NewCursor(data)
	if s.HandleData(c) {
		return c.Empty()
	}
	return true
}
