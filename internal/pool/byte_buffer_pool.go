package pool

import (
	"sync"
)

// Default sizes for the two shared pools. Instructions serialize to tens of bytes except
// for long literals; records add an 8-byte header and optional compression framing.
const (
	InstructionBufferDefaultSize  = 256
	InstructionBufferMaxThreshold = 1024 * 64 // 64KiB
	RecordBufferDefaultSize       = 1024 * 4  // 4KiB
	RecordBufferMaxThreshold      = 1024 * 1024
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// Small buffers grow by InstructionBufferDefaultSize; buffers past 4x that size grow by
// 25% of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := InstructionBufferDefaultSize
	if cap(bb.B) > 4*InstructionBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers whose capacity grew past maxThreshold are dropped on Put instead of retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	instructionPool = NewByteBufferPool(InstructionBufferDefaultSize, InstructionBufferMaxThreshold)
	recordPool      = NewByteBufferPool(RecordBufferDefaultSize, RecordBufferMaxThreshold)
)

// GetInstructionBuffer retrieves a buffer for serializing a single instruction.
func GetInstructionBuffer() *ByteBuffer {
	return instructionPool.Get()
}

// PutInstructionBuffer returns a buffer to the instruction pool.
func PutInstructionBuffer(bb *ByteBuffer) {
	instructionPool.Put(bb)
}

// GetRecordBuffer retrieves a buffer for assembling a stored record.
func GetRecordBuffer() *ByteBuffer {
	return recordPool.Get()
}

// PutRecordBuffer returns a buffer to the record pool.
func PutRecordBuffer(bb *ByteBuffer) {
	recordPool.Put(bb)
}
