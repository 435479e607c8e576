// Package eventio opens delimited event-matrix files for the command-line
// tools. Cytometry exports arrive as CSV or TSV, frequently gzipped because
// per-cell matrices run to millions of rows, so Open sniffs the compression
// from magic bytes and the delimiter from the content rather than trusting
// file extensions.
package eventio

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/csimplestring/go-csv/detector"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type compression byte

const (
	compressionNone compression = iota
	compressionGzip
	compressionZip
	compressionXZ
	compressionZlib
	compressionBzip2
)

// Magic-byte signatures. None is a prefix of another, so match order is
// irrelevant.
var signatures = map[compression][]byte{
	compressionGzip:  {0x1f, 0x8b, 0x08},
	compressionZip:   {0x50, 0x4b, 0x03, 0x04},
	compressionXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	compressionZlib:  {0x78, 0x9c},
	compressionBzip2: {0x42, 0x5a, 0x68},
}

// Open returns a csv.Reader over the (possibly compressed) delimited file at
// path, with its delimiter already configured, plus a closer for the
// underlying handles.
func Open(path string) (*csv.Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	// First pass just to learn the delimiter; decompressed readers cannot
	// seek, so the stream is rebuilt afterwards.
	r, err := decompress(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	delim := determineDelimiter(r)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, nil, err
	}
	r, err = decompress(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	rdr := csv.NewReader(r)
	rdr.Comma = delim
	return rdr, &fileCloser{stream: r, file: f}, nil
}

// determineDelimiter returns the single most likely delimiter rune of the
// CSV-like content, falling back to a comma.
func determineDelimiter(r io.Reader) rune {
	candidates := detector.New().DetectDelimiter(r, '"')
	if len(candidates) > 0 {
		return rune(candidates[0][0])
	}
	return ','
}

// decompress wraps f according to its sniffed compression. The file offset
// is left at the start of the stream for the wrapper to consume.
func decompress(f *os.File) (io.Reader, error) {
	c, err := sniff(f)
	if err != nil {
		return nil, err
	}

	switch c {
	case compressionGzip:
		return gzip.NewReader(f)
	case compressionZip:
		// zipstream has no current entry until Next is called; reading
		// before that dereferences nil. A matrix archive is expected to
		// hold its data as the first entry.
		zr := zipstream.NewReader(f)
		if _, err := zr.Next(); err != nil {
			return nil, fmt.Errorf("zip archive holds no entries: %v", err)
		}
		return zr, nil
	case compressionXZ:
		return xz.NewReader(f, 0)
	case compressionZlib:
		return zlib.NewReader(f)
	case compressionBzip2:
		return bzip2.NewReader(f), nil
	}
	return f, nil
}

// sniff reads the leading magic bytes and seeks back to the start. A file
// shorter than the longest signature, including an empty one, is simply
// uncompressed.
func sniff(f *os.File) (compression, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(f, buff)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return compressionNone, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return compressionNone, err
	}

Outer:
	for c, sig := range signatures {
		if n < len(sig) {
			continue
		}
		for i := range sig {
			if buff[i] != sig[i] {
				continue Outer
			}
		}
		return c, nil
	}
	return compressionNone, nil
}

type fileCloser struct {
	stream io.Reader
	file   *os.File
}

func (fc *fileCloser) Close() error {
	if c, ok := fc.stream.(io.Closer); ok && fc.stream != io.Reader(fc.file) {
		c.Close()
	}
	return fc.file.Close()
}
