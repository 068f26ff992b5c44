package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink receives generated artifacts such as report downloads
type Sink interface {
	Save(data []byte, contentType, filename string) (string, error)
}

// DirSink writes artifacts as files inside Dir
type DirSink struct {
	Dir string
}

func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Save writes data to Dir/filename and returns the written path. The
// directory is created when missing.
func (s *DirSink) Save(data []byte, _ string, filename string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(s.Dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}

// WriterSink streams artifacts to W, for example stdout
type WriterSink struct {
	W io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{W: w}
}

// Save writes data to the underlying writer. The returned location is the
// artifact's file name.
func (s *WriterSink) Save(data []byte, _ string, filename string) (string, error) {
	if _, err := s.W.Write(data); err != nil {
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	return filename, nil
}
