package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/config"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"

	"github.com/google/uuid"
)

// Store persists proof documents and returns a URL the portal can
// hand back to clients.
type Store interface {
	Save(ctx context.Context, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// New builds the configured store.
func New(cfg *config.StorageConfig) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage config is nil")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", constants.StorageBackendLocal:
		return NewLocalStore(cfg.Local), nil
	case constants.StorageBackendS3:
		return NewS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}

// LocalStore writes proof files under baseDir/proofs/YYYY/MM with
// uuid filenames.
type LocalStore struct {
	baseDir   string
	publicURL string
}

// NewLocalStore creates a local disk store.
func NewLocalStore(cfg config.LocalFSConfig) *LocalStore {
	baseDir := strings.TrimSpace(cfg.BaseDir)
	if baseDir == "" {
		baseDir = "uploads"
	}
	publicURL := strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/")
	if publicURL == "" {
		publicURL = "/uploads"
	}
	return &LocalStore{baseDir: baseDir, publicURL: publicURL}
}

// Save writes the content to disk and returns its relative URL.
func (s *LocalStore) Save(ctx context.Context, r io.Reader, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ExtensionForContentType(contentType))
	now := time.Now()
	year := now.Format("2006")
	month := now.Format("01")
	savePath := filepath.Join(s.baseDir, "proofs", year, month, filename)

	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/proofs/%s/%s/%s", s.publicURL, year, month, filename), nil
}

// Delete removes a previously saved file. Unknown URLs are ignored.
func (s *LocalStore) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, ok := strings.CutPrefix(url, s.publicURL+"/")
	if !ok {
		return nil
	}
	path := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ExtensionForContentType maps the proof MIME allow-list to file
// extensions.
func ExtensionForContentType(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}
