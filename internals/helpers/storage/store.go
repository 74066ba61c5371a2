package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"campusvibe_backend/internals/configs"
)

const MaxUploadSize = int64(5 * 1024 * 1024)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

var (
	ErrUnsupportedMedia = fiber.NewError(fiber.StatusUnsupportedMediaType, "Only image files (jpeg, png, webp) are allowed")
	ErrTooLarge         = fiber.NewError(fiber.StatusRequestEntityTooLarge, "File too large (max 5MB)")
)

// Store persists uploaded files and returns the path or URL saved on the owning row.
type Store interface {
	Save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, url string) error
}

// Transformer rewrites an accepted image before it is stored.
type Transformer interface {
	Transform(data []byte, contentType string) (out []byte, outType string, err error)
}

// Object is an uploaded file that passed the filter.
type Object struct {
	Filename    string
	ContentType string
	Extension   string
	Data        []byte
}

// ReadImage opens fh, enforces the size cap and sniffs the content. Only
// jpeg, png and webp are accepted regardless of the client supplied header.
func ReadImage(fh *multipart.FileHeader) (*Object, error) {
	if fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File not found")
	}
	if fh.Size > MaxUploadSize {
		return nil, ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > MaxUploadSize {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Empty file")
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		log.Printf("[STORAGE] rejected %q: %s", fh.Filename, mt.String())
		return nil, ErrUnsupportedMedia
	}
	return &Object{
		Filename:    fh.Filename,
		ContentType: mt.String(),
		Extension:   mt.Extension(),
		Data:        data,
	}, nil
}

func applyTransform(t Transformer, obj *Object) {
	if t == nil {
		return
	}
	out, ct, err := t.Transform(obj.Data, obj.ContentType)
	if err != nil {
		log.Printf("[STORAGE] transform %q skipped: %v", obj.Filename, err)
		return
	}
	obj.Data = out
	obj.ContentType = ct
	if m := mimetype.Lookup(ct); m != nil {
		obj.Extension = m.Extension()
	}
}

// NewStoreFromEnv picks the backend from STORAGE_DRIVER.
func NewStoreFromEnv(t Transformer) (Store, error) {
	switch strings.ToLower(configs.GetEnv("STORAGE_DRIVER", "local")) {
	case "oss":
		return NewOSSStoreFromEnv(configs.GetEnv("ALI_OSS_PREFIX", "campusvibe"), t)
	default:
		return NewLocalStore(configs.GetEnv("UPLOAD_DIR", "uploads"), "/uploads", t)
	}
}

// SaveOptional stores fh when present and returns nil otherwise.
func SaveOptional(ctx context.Context, s Store, folder string, fh *multipart.FileHeader) (*string, error) {
	if fh == nil {
		return nil, nil
	}
	url, err := s.Save(ctx, folder, fh)
	if err != nil {
		return nil, err
	}
	return &url, nil
}
