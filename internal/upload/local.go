// Package upload stores uploaded files on local disk and serves them back
// under a public URL prefix.
package upload

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Result describes a stored file.
type Result struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Path        string `json:"path"`
}

// Store writes multipart uploads under a base directory.
type Store struct {
	dir      string
	baseURL  string
	maxBytes int64
}

// NewStore creates the upload directory if needed.
func NewStore(dir, baseURL string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), maxBytes: maxBytes}, nil
}

// MaxBytes is the configured size cap.
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Save streams one multipart file to disk under a random name, preserving
// the original extension.
func (s *Store) Save(fh *multipart.FileHeader) (*Result, error) {
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return nil, fmt.Errorf("file exceeds %d byte limit", s.maxBytes)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	name, err := randomName(filepath.Ext(fh.Filename))
	if err != nil {
		return nil, err
	}
	dstPath := filepath.Join(s.dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dstPath)
		return nil, err
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	storagePath := path.Join("files", name)
	return &Result{
		URL:         s.baseURL + "/" + storagePath,
		ContentType: contentType,
		Size:        size,
		Path:        storagePath,
	}, nil
}

// Dir returns the on-disk directory, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}

func randomName(ext string) (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf[:]) + ext, nil
}
