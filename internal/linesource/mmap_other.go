//go:build !unix

package linesource

import (
	"fmt"
	"os"
)

// mmapFile reads filename into memory on platforms without mmap support,
// providing the same signature as the unix implementation for API
// uniformity.
func mmapFile(filename string) ([]byte, func(), error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("linesource: read %s: %w", filename, err)
	}
	return data, func() {}, nil
}
