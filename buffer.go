// Package smallbuf implements a small-size-optimized byte buffer.
package smallbuf

import (
	"github.com/roy2220/smallbuf/internal/bytevec"
)

// Buffer represents a fixed-size byte buffer.
// The type parameter A must be a byte array type (such as [16]byte);
// its length is the inline capacity. Buffers no larger than the inline
// capacity are stored without heap allocation.
// A Buffer must not be copied after initialization.
// A Buffer is not safe for concurrent use: calls to CopyIn must not
// overlap with any other call on the same buffer, while concurrent
// calls to CopyOut alone are safe.
type Buffer[A any] struct {
	vec bytevec.Vec[A]
}

// Init initializes the buffer with the given size and returns it.
// The contents are zero-filled. The size never changes for the
// lifetime of the buffer. The zero value of Buffer is an initialized
// buffer of size zero.
func (b *Buffer[A]) Init(size int) *Buffer[A] {
	b.vec.Init(size)
	return b
}

// Size returns the number of bytes in the buffer.
func (b *Buffer[A]) Size() int {
	return b.vec.Size()
}

// Inline reports whether the contents are stored inside the buffer
// itself rather than in a heap allocation.
func (b *Buffer[A]) Inline() bool {
	return b.vec.IsInline()
}

// CopyIn copies the given bytes into the buffer starting at the given
// offset. The range [offset, offset+len(src)) must lie within the
// buffer, otherwise CopyIn panics before writing any byte.
func (b *Buffer[A]) CopyIn(offset int, src []byte) {
	b.checkBounds(offset, len(src))
	copy(b.vec.Slice()[offset:], src)
}

// CopyOut copies len(dst) bytes out of the buffer starting at the
// given offset into dst. The range [offset, offset+len(dst)) must lie
// within the buffer, otherwise CopyOut panics before writing any
// byte. CopyOut does not mutate the buffer.
func (b *Buffer[A]) CopyOut(dst []byte, offset int) {
	b.checkBounds(offset, len(dst))
	copy(dst, b.vec.Slice()[offset:])
}

// Bytes returns the storage of the buffer as a byte slice, bypassing
// the bounds checks of CopyIn and CopyOut. The slice remains valid
// for the lifetime of the buffer.
func (b *Buffer[A]) Bytes() []byte {
	return b.vec.Slice()
}

func (b *Buffer[A]) checkBounds(offset int, amount int) {
	if offset < 0 || amount > b.vec.Size()-offset {
		panic(errOutOfBounds)
	}
}
