// Package pool provides a reusable byte buffer for the compress package's
// LZMA scratch space, avoiding a fresh allocation on every section written.
package pool

import "sync"

const (
	// defaultSize covers most single-array CTM sections (vertex/normal/
	// index streams of a few thousand elements) without growing.
	defaultSize = 1024 * 16
	// maxThreshold discards buffers grown far beyond typical section size
	// instead of pinning that memory in the pool indefinitely.
	maxThreshold = 1024 * 1024 * 8
)

// ByteBuffer is a growable byte slice wrapper implementing io.Writer, sized
// for repeated reuse via ByteBufferPool.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given starting capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the buffer's current contents.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Write appends data to the buffer, growing it as needed, implementing
// io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool pools ByteBuffers to amortize the allocation cost of
// compressing many sections in sequence.
type ByteBufferPool struct {
	pool sync.Pool
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize.
func NewByteBufferPool() *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
	}
}

// Get retrieves a ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool, discarding it instead if it grew past
// maxThreshold.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if cap(bb.B) > maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var defaultPool = NewByteBufferPool()

// Get retrieves a ByteBuffer from the package's default pool.
func Get() *ByteBuffer { return defaultPool.Get() }

// Put returns bb to the package's default pool.
func Put(bb *ByteBuffer) { defaultPool.Put(bb) }
