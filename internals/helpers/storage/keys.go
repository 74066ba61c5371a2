package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

func buildObjectName(filename, ext string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(filename))
	}
	return fmt.Sprintf("%d-%s-%s%s", now.UnixMilli(), slugify(base), uuid.NewString()[:8], ext)
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-", ".", "-").Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	s = strings.Trim(s, "-")
	if s == "" {
		return "file"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}

func safeFolder(folder string) string {
	parts := strings.Split(strings.Trim(folder, "/"), "/")
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = slugify(p); p != "file" {
			clean = append(clean, p)
		}
	}
	return strings.Join(clean, "/")
}
