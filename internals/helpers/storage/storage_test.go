package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// fileHeader builds a real multipart.FileHeader by parsing a form.
func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(10<<20))
	return req.MultipartForm.File[field][0]
}

func TestReadImageFilter(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		wantErr error
	}{
		{"png accepted", pngBytes(t), nil},
		{"text rejected", []byte("just some text, not an image"), ErrUnsupportedMedia},
		{"pdf rejected", []byte("%PDF-1.4\n%âãÏÓ\n"), ErrUnsupportedMedia},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			obj, err := ReadImage(fileHeader(t, "banner", "banner.png", tc.content))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "image/png", obj.ContentType)
			assert.Equal(t, ".png", obj.Extension)
		})
	}
}

func TestReadImageSizeCap(t *testing.T) {
	big := append(pngBytes(t), make([]byte, MaxUploadSize)...)
	_, err := ReadImage(fileHeader(t, "banner", "big.png", big))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLocalStoreSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads", nil)
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "events/banners", fileHeader(t, "banner", "My Banner.png", pngBytes(t)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/events/banners/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	full := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/")))
	_, err = os.Stat(full)
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), url))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(context.Background(), "https://elsewhere.test/x.png"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "my-banner", slugify("My Banner"))
	assert.Equal(t, "file", slugify("***"))
	assert.Equal(t, "events/qr", safeFolder("/events/QR/"))
}

func TestOSSKeyFromURL(t *testing.T) {
	s := &OSSStore{BucketName: "b", Endpoint: "oss-ap-southeast-1.aliyuncs.com", PublicBase: "https://cdn.campus.test"}
	key, err := s.KeyFromURL("https://cdn.campus.test/campusvibe/events/a.png")
	require.NoError(t, err)
	assert.Equal(t, "campusvibe/events/a.png", key)
	assert.Equal(t, "https://cdn.campus.test/k.png", s.PublicURL("k.png"))

	s.PublicBase = ""
	assert.Equal(t, "https://b.oss-ap-southeast-1.aliyuncs.com/k.png", s.PublicURL("k.png"))
}
