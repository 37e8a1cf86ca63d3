package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"cookbook/internal/storage"
)

var (
	ErrReaderNil   = errors.New("reader is nil")
	ErrKeyRequired = errors.New("file key is required")
)

// UploadPrefix is the default key prefix uploaded objects are stored under.
const UploadPrefix = "uploads"

// UploadService stores files received from multipart forms.
type UploadService interface {
	// Upload streams r to storage under a generated key that keeps the
	// original extension. The original name is kept as object metadata.
	Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (storage.ObjectInfo, error)
	// Open streams back an object stored by Upload. A missing object is
	// reported as storage.ErrNotFound. The caller closes the reader.
	Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error)
}

type uploadService struct {
	store  storage.Storage
	prefix string
}

type UploadOption func(*uploadService)

// WithKeyPrefix replaces UploadPrefix. An empty prefix stores objects at the
// root of the store, which suits a disk store already rooted at the upload dir.
func WithKeyPrefix(prefix string) UploadOption {
	return func(s *uploadService) { s.prefix = prefix }
}

func NewUploadService(store storage.Storage, opts ...UploadOption) UploadService {
	s := &uploadService{store: store, prefix: UploadPrefix}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *uploadService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (storage.ObjectInfo, error) {
	if r == nil {
		return storage.ObjectInfo{}, ErrReaderNil
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalFilename)))
	key := path.Join(s.prefix, uuid.NewString()+ext)

	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("upload to storage: %w", err)
	}
	return info, nil
}

func (s *uploadService) Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" {
		return nil, storage.ObjectInfo{}, ErrKeyRequired
	}
	rc, info, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, storage.ObjectInfo{}, fmt.Errorf("open %s: %w", key, err)
	}
	return rc, info, nil
}
