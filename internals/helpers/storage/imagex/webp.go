// Package imagex re-encodes uploaded images. It links libwebp through cgo and
// is kept apart from the storage package so the storage tests build without it.
package imagex

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"campusvibe_backend/internals/configs"
)

type WebPOptions struct {
	MaxW     int
	MaxH     int
	Quality  float32
	Lossless bool
}

func WebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		MaxW:    configs.GetEnvInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:    configs.GetEnvInt("IMAGE_WEBP_MAX_H", 1600),
		Quality: float32(configs.GetEnvInt("IMAGE_WEBP_QUALITY", 80)),
	}
}

// WebPTransformer downsizes images to fit MaxW x MaxH and re-encodes them as WebP.
type WebPTransformer struct {
	Opts WebPOptions
}

func NewWebPTransformer(opts WebPOptions) *WebPTransformer {
	return &WebPTransformer{Opts: opts}
}

func (t *WebPTransformer) Transform(data []byte, contentType string) ([]byte, string, error) {
	img, err := decode(data, contentType)
	if err != nil {
		return nil, "", err
	}

	b := img.Bounds()
	if t.Opts.MaxW > 0 && t.Opts.MaxH > 0 && (b.Dx() > t.Opts.MaxW || b.Dy() > t.Opts.MaxH) {
		img = imaging.Fit(img, t.Opts.MaxW, t.Opts.MaxH, imaging.CatmullRom)
	}

	q := t.Opts.Quality
	if q <= 0 {
		q = 80
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: t.Opts.Lossless, Quality: q}); err != nil {
		return nil, "", fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), "image/webp", nil
}

func decode(data []byte, contentType string) (image.Image, error) {
	if contentType == "image/webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}
