//go:build unix

package linesource

import (
	"fmt"
	"os"
	"syscall"
)

// mmapFile memory-maps filename for reading. The returned cleanup
// function must be called to unmap the file; the returned slice must not
// be used afterward.
func mmapFile(filename string) ([]byte, func(), error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("linesource: open %s: %w", filename, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("linesource: stat %s: %w", filename, err)
	}

	size := stat.Size()
	if size == 0 {
		return []byte{}, func() { f.Close() }, nil
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("linesource: mmap %s: %w", filename, err)
	}

	cleanup := func() {
		_ = syscall.Munmap(data)
		f.Close()
	}
	return data, cleanup, nil
}
