package bufpool

import "github.com/valyala/bytebufferpool"

// Growable is a pool of unbounded byte buffers, used where the final size
// isn't known ahead of time (an InternalSink capturing a response body of
// unknown length). The size-classed pools above top out at BufferSize64KB
// and are the wrong tool once a buffer needs to keep growing past that.
var growablePool bytebufferpool.Pool

// GetGrowable returns an empty, pooled growable buffer.
func GetGrowable() *bytebufferpool.ByteBuffer {
	return growablePool.Get()
}

// PutGrowable returns a growable buffer to the pool.
func PutGrowable(b *bytebufferpool.ByteBuffer) {
	growablePool.Put(b)
}
