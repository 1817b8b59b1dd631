package heredity

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// OpenPedigree loads and validates a pedigree CSV. path may be local (a
// leading ~/ is expanded) or a gs://bucket/object URL. Files ending in .gz or
// .zst are decompressed.
func OpenPedigree(ctx context.Context, path string) (*Pedigree, error) {
	src, err := openSource(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	r, err := Decompress(src, CompressionFromPath(path))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	ped, err := ReadPedigree(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ped, nil
}

func openSource(ctx context.Context, path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, "gs://") {
		return openGoogleStorage(ctx, path)
	}

	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	return f, nil
}

// gcsObject closes the client along with the object reader.
type gcsObject struct {
	*storage.Reader
	client *storage.Client
}

func (o *gcsObject) Close() error {
	err := o.Reader.Close()
	if cerr := o.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func openGoogleStorage(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, object, err := ParseGoogleStoragePath(path)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, pfx.Err(err)
	}

	return &gcsObject{Reader: r, client: client}, nil
}

// ParseGoogleStoragePath splits gs://bucket/path/to/object into its bucket and
// object names.
func ParseGoogleStoragePath(path string) (bucket, object string, err error) {
	rest := strings.TrimPrefix(path, "gs://")
	if rest == path {
		return "", "", fmt.Errorf("%q is not a gs:// path", path)
	}

	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%q does not name both a bucket and an object", path)
	}
	return parts[0], parts[1], nil
}
