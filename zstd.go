package heredity

import (
	"io"

	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/zstd"
)

// NewZStandardReader returns a streaming Zstd decoder over r. The decoder owns
// background goroutines, which Close releases.
func NewZStandardReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, pfx.Err(err)
	}
	return dec.IOReadCloser(), nil
}
