// Package upload abstracts the object storage service that holds message
// images and profile pictures. Each stored blob is addressed by the URL
// returned from Save.
package upload

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store saves a binary blob and returns a URL it can be fetched from.
type Store interface {
	Save(ctx context.Context, data []byte, contentType string) (string, error)
}

// DiskStore writes blobs under a local directory that the HTTP server serves
// at /uploads/.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

var _ Store = (*DiskStore)(nil)

func (s *DiskStore) Save(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filename := uuid.NewString() + extensionFor(contentType)
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return "/uploads/" + filename, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

// DecodeImage accepts either a plain base64 payload or a data URL of the form
// "data:image/png;base64,...." and returns the raw bytes and content type.
func DecodeImage(encoded string) ([]byte, string, error) {
	contentType := "application/octet-stream"
	payload := encoded

	if strings.HasPrefix(encoded, "data:") {
		header, rest, ok := strings.Cut(encoded[len("data:"):], ",")
		if !ok {
			return nil, "", fmt.Errorf("malformed data URL")
		}
		payload = rest
		header = strings.TrimSuffix(header, ";base64")
		if header != "" {
			contentType = header
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64 image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image payload")
	}
	return data, contentType, nil
}
