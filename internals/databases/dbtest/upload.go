package dbtest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"campusvibe_backend/internals/helpers/storage"
)

// Store returns a local store rooted in a temp dir.
func Store(t testing.TB) *storage.LocalStore {
	t.Helper()
	s, err := storage.NewLocalStore(t.TempDir(), "/uploads", nil)
	require.NoError(t, err)
	return s
}

// ImageUpload builds a multipart file header holding a small PNG.
func ImageUpload(t testing.TB, field, filename string) *multipart.FileHeader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{G: 200, A: 255})
	var content bytes.Buffer
	require.NoError(t, png.Encode(&content, img))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(10<<20))
	return req.MultipartForm.File[field][0]
}
