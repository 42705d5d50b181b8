package pool

import (
	"bytes"
	"sync"
)

// BufferPool implements a pool of bytes.Buffer for request bodies.
type BufferPool struct {
	pool    sync.Pool
	maxSize int
}

// NewBufferPool creates a pool whose buffers start with size bytes of
// capacity. Buffers that grew beyond four times size are dropped on Put.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, size))
			},
		},
		maxSize: 4 * size,
	}
}

// Get retrieves an empty buffer from the pool or creates a new one.
func (bp *BufferPool) Get() *bytes.Buffer {
	return bp.pool.Get().(*bytes.Buffer)
}

// Put returns a buffer to the pool for reuse.
func (bp *BufferPool) Put(buf *bytes.Buffer) {
	if buf.Cap() > bp.maxSize {
		return
	}
	buf.Reset()
	bp.pool.Put(buf)
}
