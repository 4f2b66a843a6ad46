// Package bytevec implements contiguous byte storage with small-size
// optimization.
package bytevec

import (
	"errors"
	"unsafe"
)

var errNegativeSize = errors.New("bytevec: negative size")

// Vec represents a contiguous run of bytes of a size fixed at
// initialization time.
// The type parameter A must be a byte array type (such as [16]byte);
// its length is the inline capacity. Contents of a vec no larger than
// the inline capacity are embedded directly in the Vec, larger
// contents live in a single exact-fit heap allocation made by Init.
// A Vec must not be copied after initialization, since heap storage
// would be shared between the copies.
type Vec[A any] struct {
	size   int
	inline A
	heap   []byte
}

// Init initializes the vec with the given size and returns it.
// The contents are zero-filled. The size and the storage location
// never change for the lifetime of the vec.
func (v *Vec[A]) Init(size int) *Vec[A] {
	if size < 0 {
		panic(errNegativeSize)
	}

	v.size = size

	if size > v.inlineCapacity() {
		v.heap = make([]byte, size)
	}

	return v
}

// Size returns the number of bytes in the vec.
func (v *Vec[A]) Size() int {
	return v.size
}

// IsInline reports whether the contents are embedded in the vec
// rather than heap-allocated.
func (v *Vec[A]) IsInline() bool {
	return v.heap == nil
}

// Slice returns the contents of the vec as a byte slice.
// The slice remains valid for the lifetime of the vec.
func (v *Vec[A]) Slice() []byte {
	if v.heap != nil {
		return v.heap
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(&v.inline)), v.inlineCapacity())[:v.size]
}

func (v *Vec[A]) inlineCapacity() int {
	return int(unsafe.Sizeof(v.inline))
}
