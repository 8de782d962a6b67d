package csvtok

import "sync"

// quotedBufferPool reduces allocations when accumulating a quoted field's
// decoded value, which may span several physical lines and several append
// operations (one per escaped quote or absorbed line).
var quotedBufferPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 64)
		return &b
	},
}

func getQuotedBuffer() []byte {
	p := quotedBufferPool.Get().(*[]byte)
	return (*p)[:0]
}

// putQuotedBuffer returns buf to the pool, unless it has grown unusually
// large (a one-off huge field shouldn't keep that memory pinned in the
// pool for subsequent, typically much smaller, fields).
func putQuotedBuffer(buf []byte) {
	const maxPooledCapacity = 64 * 1024
	if cap(buf) > maxPooledCapacity {
		return
	}
	buf = buf[:0]
	quotedBufferPool.Put(&buf)
}
