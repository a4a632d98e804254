package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/easybookevent/artistcal/pkg/crypto"
	apperrors "github.com/easybookevent/artistcal/pkg/errors"
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 5 << 20

var (
	ErrUnsupportedType = apperrors.New("UNSUPPORTED_FILE_TYPE", "Only png, jpg, jpeg and webp images are accepted", http.StatusBadRequest)
	ErrFileTooLarge    = apperrors.New("FILE_TOO_LARGE", "Uploaded file exceeds the 5 MB limit", http.StatusBadRequest)
)

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
}

// FileStore persists uploaded images on local disk and hands out stable
// public URL paths for them.
type FileStore struct {
	root    string
	baseURL string
}

// NewFileStore creates the upload root if needed. baseURL is the public path
// prefix the HTTP layer serves the root under.
func NewFileStore(root, baseURL string) (*FileStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("storage: upload root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload root: %w", err)
	}
	return &FileStore{
		root:    root,
		baseURL: "/" + strings.Trim(baseURL, "/"),
	}, nil
}

// BaseURL returns the public prefix files are served under.
func (s *FileStore) BaseURL() string {
	return s.baseURL
}

// Root returns the on-disk upload directory.
func (s *FileStore) Root() string {
	return s.root
}

// Save writes an uploaded image under root/<kind>/ with a random file name,
// keeping only the original extension. Returns the public URL path.
func (s *FileStore) Save(kind, originalName string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedType
	}
	if size > MaxUploadBytes {
		return "", ErrFileTooLarge
	}

	name, err := crypto.GenerateToken(16)
	if err != nil {
		return "", fmt.Errorf("storage: generate file name: %w", err)
	}

	dir := filepath.Join(s.root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create dir: %w", err)
	}

	fileName := name + ext
	dst, err := os.Create(filepath.Join(dir, fileName))
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer dst.Close()

	// LimitReader guards against clients lying about the declared size.
	written, err := io.Copy(dst, io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	if written > MaxUploadBytes {
		_ = os.Remove(dst.Name())
		return "", ErrFileTooLarge
	}

	return path.Join(s.baseURL, kind, fileName), nil
}

// Remove deletes the file behind a public URL path previously returned by
// Save. Unknown paths are ignored.
func (s *FileStore) Remove(publicURL string) error {
	rel, ok := strings.CutPrefix(publicURL, s.baseURL+"/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return nil
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: remove file: %w", err)
	}
	return nil
}
