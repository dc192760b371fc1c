package images

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, field, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File[field]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaveUploadRoundTrip(t *testing.T) {
	payload := []byte("fake png bytes")
	fh := uploadHeader(t, "image", "proof.png", "image/png", payload)

	path, cleanup, err := SaveUpload(fh)
	require.NoError(t, err)

	staged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, staged)

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "staged file must be removed by cleanup")
}

func TestSaveUploadRejectsOversize(t *testing.T) {
	fh := uploadHeader(t, "image", "big.png", "image/png", make([]byte, maxUploadBytes+1))

	_, _, err := SaveUpload(fh)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestSaveUploadMissingFile(t *testing.T) {
	_, _, err := SaveUpload(nil)
	assert.Error(t, err)
}

func TestContentTypeDefaults(t *testing.T) {
	fh := uploadHeader(t, "image", "proof.png", "image/png", []byte("x"))
	assert.Equal(t, "image/png", ContentType(fh))

	fh.Header.Del("Content-Type")
	assert.Equal(t, "image/jpeg", ContentType(fh))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage("image/jpeg"))
	assert.False(t, IsImage("application/pdf"))
	assert.False(t, IsImage(""))
}

func TestInlineStoreRoundTrip(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}
	path := filepath.Join(t.TempDir(), "staged")
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	stored, err := NewInline().Store(context.Background(), path, "image/png")
	require.NoError(t, err)

	assert.False(t, stored.External())
	assert.Equal(t, payload, stored.Data)
	assert.Equal(t, "image/png", stored.ContentType)
}

func TestInlineStoreMissingFile(t *testing.T) {
	_, err := NewInline().Store(context.Background(), filepath.Join(t.TempDir(), "nope"), "image/png")
	assert.Error(t, err)
}
