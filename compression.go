package heredity

import (
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/gzip"
)

// Compression indicates how (and whether) a pedigree file is compressed
type Compression uint32

const (
	CompressionDisabled Compression = iota
	CompressionGZIP
	CompressionZStandard
)

func (c Compression) String() string {
	switch c {
	case CompressionDisabled:
		return "CompressionDisabled"
	case CompressionGZIP:
		return "CompressionGZIP"
	case CompressionZStandard:
		return "CompressionZStandard"

	default:
		return "Illegal selection"
	}
}

// CompressionFromPath guesses the compression of a file from its extension.
func CompressionFromPath(path string) Compression {
	switch lower := strings.ToLower(path); {
	case strings.HasSuffix(lower, ".gz"):
		return CompressionGZIP
	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		return CompressionZStandard
	}
	return CompressionDisabled
}

// Decompress wraps r so that reads yield decompressed data. Closing the result
// does not close r.
func Decompress(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionGZIP:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return gz, nil
	case CompressionZStandard:
		return NewZStandardReader(r)
	}
	return io.NopCloser(r), nil
}
