package bytevec_test

import (
	"testing"

	"github.com/roy2220/smallbuf/internal/bytevec"
	"github.com/stretchr/testify/assert"
)

func TestVecInit(t *testing.T) {
	for _, size := range []int{0, 1, 15, 16} {
		v := new(bytevec.Vec[[16]byte]).Init(size)
		assert.Equal(t, size, v.Size())
		assert.True(t, v.IsInline())
		assert.Equal(t, size, len(v.Slice()))
	}

	for _, size := range []int{17, 64, 4096} {
		v := new(bytevec.Vec[[16]byte]).Init(size)
		assert.Equal(t, size, v.Size())
		assert.False(t, v.IsInline())
		assert.Equal(t, size, len(v.Slice()))
		assert.Equal(t, size, cap(v.Slice()))
	}
}

func TestVecInitNegativeSize(t *testing.T) {
	assert.Panics(t, func() {
		new(bytevec.Vec[[16]byte]).Init(-1)
	})
}

func TestVecZeroValue(t *testing.T) {
	var v bytevec.Vec[[16]byte]
	assert.Equal(t, 0, v.Size())
	assert.True(t, v.IsInline())
	assert.Equal(t, 0, len(v.Slice()))
}

func TestVecZeroFill(t *testing.T) {
	for _, size := range []int{7, 16, 29} {
		v := new(bytevec.Vec[[16]byte]).Init(size)

		for _, c := range v.Slice() {
			if !assert.Equal(t, byte(0), c) {
				t.FailNow()
			}
		}
	}
}

func TestVecSliceIsStable(t *testing.T) {
	v := new(bytevec.Vec[[8]byte]).Init(8)
	copy(v.Slice(), "ABCDEFGH")
	assert.Equal(t, []byte("ABCDEFGH"), v.Slice())

	v = new(bytevec.Vec[[8]byte]).Init(9)
	copy(v.Slice(), "ABCDEFGHI")
	assert.Equal(t, []byte("ABCDEFGHI"), v.Slice())
}

func TestVecInlineAllocations(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		var v bytevec.Vec[[16]byte]
		v.Init(16)
	})

	assert.Equal(t, 0.0, allocs)
}

func TestVecHeapAllocations(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		var v bytevec.Vec[[16]byte]
		v.Init(17)
	})

	assert.Equal(t, 1.0, allocs)
}
