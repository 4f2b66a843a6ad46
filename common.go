package smallbuf

import "errors"

var (
	errCorrupted   = errors.New("smallbuf: corrupted")
	errOutOfBounds = errors.New("smallbuf: out of bounds")
)

func copyBytes(data []byte) []byte {
	buffer := make([]byte, len(data))
	copy(buffer, data)
	return buffer
}
