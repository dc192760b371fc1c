// Package images stores uploaded pictures either on an external image host
// (the record keeps a public URL) or inline on the record itself (the bytes
// are served back through /api/*-image endpoints).
package images

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strings"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// ErrTooLarge marks an upload over the size cap. It is the one SaveUpload
// failure the client caused; everything else is staging I/O on our side.
var ErrTooLarge = fmt.Errorf("file too large (max %d bytes)", maxUploadBytes)

// Stored is the result of persisting an upload. Exactly one of URL or Data
// is populated depending on the configured strategy.
type Stored struct {
	URL         string
	Data        []byte
	ContentType string
}

func (s Stored) External() bool { return s.URL != "" }

type Store interface {
	Store(ctx context.Context, path, contentType string) (Stored, error)
}

// SaveUpload stages a multipart upload on disk and returns the staged path
// together with a cleanup func. Callers must defer cleanup immediately so the
// temp file is released on every exit path.
func SaveUpload(fh *multipart.FileHeader) (string, func(), error) {
	if fh == nil {
		return "", nil, fmt.Errorf("missing file")
	}
	if fh.Size > maxUploadBytes {
		return "", nil, ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "rescue-upload-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return tmp.Name(), cleanup, nil
}

// ContentType extracts the declared media type of an upload, defaulting to
// image/jpeg when the client sent none.
func ContentType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		return "image/jpeg"
	}
	return ct
}

// IsImage reports whether the declared content type is an image.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
