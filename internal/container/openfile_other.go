//go:build !unix

package container

import (
	"fmt"
	"math"
	"os"
)

// OpenFile reads path into memory wholesale on platforms where mmap isn't
// wired (see openfile_unix.go for the mmap path).
func OpenFile(path string) (buf []byte, closer func() error, err error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if st.Size() >= math.MaxInt32 {
		return nil, nil, fmt.Errorf("container: file %q is %d bytes, at or above the 2GiB guard", path, st.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
