package fastq

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"

	// "compress/gzip"
	gzip "github.com/klauspost/pgzip"
)

var gz = regexp.MustCompile(`\.gz$`)

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.file.Close())
}

// Open opens a plain or gzip-compressed (.gz) FASTQ file. A missing path
// is reported as ErrSourceNotFound.
func Open(path string) (io.ReadCloser, error) {
	var file, err = os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, err
	}
	if !gz.MatchString(path) {
		return file, nil
	}
	gr, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("open gzip %s: %w", path, err)
	}
	return &gzipFile{Reader: gr, file: file}, nil
}
