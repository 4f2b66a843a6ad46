package smallbuf_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roy2220/smallbuf"
)

func Example() {
	var b smallbuf.Buffer[[16]byte]
	b.Init(10)
	b.CopyIn(0, []byte("HelloWorld"))

	out := make([]byte, 5)
	b.CopyOut(out, 5)
	fmt.Printf("%d %v %q\n", b.Size(), b.Inline(), out)

	var b2 smallbuf.Buffer[[4]byte]
	b2.Init(20)
	b2.CopyIn(16, []byte("WXYZ"))

	out2 := make([]byte, 4)
	b2.CopyOut(out2, 16)
	fmt.Printf("%d %v %q\n", b2.Size(), b2.Inline(), out2)
	// Output:
	// 10 true "World"
	// 20 false "WXYZ"
}

func ExamplePool() {
	dirName, err := os.MkdirTemp("", "smallbuf")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dirName)
	fileName := filepath.Join(dirName, "pool.tmp")

	func() {
		p, err := smallbuf.OpenPool(fileName, true)
		if err != nil {
			panic(err)
		}
		defer p.Close()

		var b smallbuf.Buffer[[16]byte]
		b.Init(10)
		b.CopyIn(0, []byte("HelloWorld"))
		smallbuf.SaveBuffer(p, "greeting", &b)
	}()

	func() {
		p, err := smallbuf.OpenPool(fileName, false)
		if err != nil {
			panic(err)
		}
		defer p.Close()

		b, ok := smallbuf.LoadBuffer[[16]byte](p, "greeting")
		fmt.Printf("%v %q\n", ok, b.Bytes())
	}()
	// Output:
	// true "HelloWorld"
}
