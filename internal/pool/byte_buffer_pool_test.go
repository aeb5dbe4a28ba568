package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(128)

	require.NotNil(t, bb.B)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 128, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(InstructionBufferDefaultSize)

	n, err := bb.Write([]byte("LITERAL"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, []byte("LITERAL"), bb.Bytes())

	originalCap := cap(bb.B)
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		length   int
		required int
		minCap   int
	}{
		{"sufficient capacity", 64, 10, 20, 64},
		{"small buffer grows by default", 16, 16, 1, 16 + InstructionBufferDefaultSize},
		{"large buffer grows by quarter", 4096, 4096, 1, 4096 + 1024},
		{"required exceeds growth", 16, 16, 10000, 16 + 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb := NewByteBuffer(tt.capacity)
			bb.B = bb.B[:tt.length]
			for i := range bb.B {
				bb.B[i] = byte(i)
			}
			before := bytes.Clone(bb.B)

			bb.Grow(tt.required)

			assert.GreaterOrEqual(t, cap(bb.B), tt.minCap)
			assert.GreaterOrEqual(t, cap(bb.B)-bb.Len(), tt.required)
			assert.Equal(t, before, bb.B, "Grow must preserve data")
		})
	}
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	bb.Grow(1024)
	p.Put(bb)

	// oversized buffer must not come back
	got := p.Get()
	assert.LessOrEqual(t, cap(got.B), 64)

	p.Put(nil)
}

func TestPool_ResetsData(t *testing.T) {
	bb := GetInstructionBuffer()
	_, _ = bb.Write([]byte{1, 2, 3})
	PutInstructionBuffer(bb)

	bb = GetInstructionBuffer()
	assert.Equal(t, 0, bb.Len())
	PutInstructionBuffer(bb)

	rb := GetRecordBuffer()
	assert.Equal(t, 0, rb.Len())
	assert.GreaterOrEqual(t, cap(rb.B), 0)
	PutRecordBuffer(rb)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bb := GetInstructionBuffer()
			_, _ = bb.Write([]byte{byte(i)})
			assert.Equal(t, 1, bb.Len())
			PutInstructionBuffer(bb)
		}()
	}
	wg.Wait()
}

func BenchmarkByteBuffer_Write(b *testing.B) {
	data := []byte("REPEAT_TEXT_PATTERN_TO_CI")
	for b.Loop() {
		bb := GetInstructionBuffer()
		_, _ = bb.Write(data)
		PutInstructionBuffer(bb)
	}
}
