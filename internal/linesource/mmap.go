package linesource

import "bytes"

// MappedFileSource memory-maps a file and splits it into lines lazily, for
// large files where copying the whole file into memory via io.ReadAll
// wastes memory proportional to file size. The mapped bytes feed a line
// splitter rather than a parser, so CSV interpretation still belongs
// entirely to the tokenizer.
type MappedFileSource struct {
	data    []byte
	cleanup func()
	pos     int
}

// NewMappedFileSource opens and maps path. On platforms without mmap
// support it falls back to reading the whole file into memory.
func NewMappedFileSource(path string) (*MappedFileSource, error) {
	data, cleanup, err := mmapFile(path)
	if err != nil {
		return nil, err
	}
	return &MappedFileSource{data: data, cleanup: cleanup}, nil
}

// Next implements linefeed.Source, splitting on '\n' and trimming a
// trailing '\r' so both LF- and CRLF-terminated files yield
// terminator-stripped lines. The final line need not end in a newline.
func (s *MappedFileSource) Next() (string, bool) {
	if s.pos >= len(s.data) {
		return "", false
	}
	rest := s.data[s.pos:]
	nl := bytes.IndexByte(rest, '\n')
	var line []byte
	if nl < 0 {
		line = rest
		s.pos = len(s.data)
	} else {
		line = rest[:nl]
		s.pos += nl + 1
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return string(line), true
}

// Close releases the memory mapping (or, on the fallback path, is a
// no-op kept for API uniformity).
func (s *MappedFileSource) Close() error {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
	return nil
}
