package storage

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore writes into a directory served by the app under PublicPrefix.
type LocalStore struct {
	Dir          string
	PublicPrefix string
	transform    Transformer
}

func NewLocalStore(dir, publicPrefix string, t Transformer) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		Dir:          dir,
		PublicPrefix: "/" + strings.Trim(publicPrefix, "/"),
		transform:    t,
	}, nil
}

func (s *LocalStore) Save(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	obj, err := ReadImage(fh)
	if err != nil {
		return "", err
	}
	applyTransform(s.transform, obj)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := path.Join(safeFolder(folder), buildObjectName(obj.Filename, obj.Extension, time.Now()))
	full := filepath.Join(s.Dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}
	if err := os.WriteFile(full, obj.Data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return s.PublicPrefix + "/" + rel, nil
}

// Delete removes a file previously returned by Save. Unknown URLs are ignored.
func (s *LocalStore) Delete(_ context.Context, url string) error {
	prefix := s.PublicPrefix + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	rel := filepath.FromSlash(strings.TrimPrefix(url, prefix))
	if strings.Contains(rel, "..") {
		return fmt.Errorf("invalid path %q", url)
	}
	if err := os.Remove(filepath.Join(s.Dir, rel)); err != nil && !os.IsNotExist(err) {
		log.Printf("[STORAGE] delete %s: %v", url, err)
		return err
	}
	return nil
}
