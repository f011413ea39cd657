// Package storage keeps uploaded employee documents on local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("storage: file exceeds size limit")
	ErrUnsupportedType = errors.New("storage: file type not allowed")
	ErrNotFound        = errors.New("storage: file not found")
)

// allowedExt lists the document types HR uploads. Anything a browser would
// render as active content stays out.
var allowedExt = map[string]bool{
	".pdf": true, ".png": true, ".jpg": true, ".jpeg": true,
	".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".txt": true,
}

type StoredFile struct {
	Path string
	Size int64
}

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Storage interface {
	Save(ctx context.Context, folder, filename string, content io.Reader) (StoredFile, error)
	Delete(ctx context.Context, relPath string) error
	Resolve(ctx context.Context, relPath string) (string, error)
}

type LocalStorage struct {
	root     string
	maxBytes int64
}

func NewLocalStorage(root string, maxBytes int64) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create document dir: %w", err)
	}
	return &LocalStorage{root: root, maxBytes: maxBytes}, nil
}

// under maps a caller supplied relative path into the storage root.
func (s *LocalStorage) under(rel string) string {
	return filepath.Join(s.root, cleanRel(rel))
}

// cleanRel drops any leading "..", so the result never leaves the root.
func cleanRel(rel string) string {
	abs := "/" + rel
	return filepath.Clean(abs)[1:]
}

// Save writes content under folder with a collision-free name and returns
// its path relative to the storage root.
func (s *LocalStorage) Save(ctx context.Context, folder, filename string, content io.Reader) (StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return StoredFile{}, err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return StoredFile{}, ErrUnsupportedType
	}

	dir := s.under(folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredFile{}, err
	}

	name := uuid.NewString() + ext
	full := filepath.Join(dir, name)
	f, err := os.Create(full)
	if err != nil {
		return StoredFile{}, err
	}

	src := content
	if s.maxBytes > 0 {
		src = io.LimitReader(content, s.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(full)
		return StoredFile{}, err
	}

	rel := path.Join(filepath.ToSlash(cleanRel(folder)), name)
	return StoredFile{Path: rel, Size: n}, nil
}

func (s *LocalStorage) Delete(_ context.Context, relPath string) error {
	if err := os.Remove(s.under(relPath)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Resolve returns the on-disk location of a stored file.
func (s *LocalStorage) Resolve(_ context.Context, relPath string) (string, error) {
	full := s.under(relPath)
	info, err := os.Stat(full)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return full, nil
}
