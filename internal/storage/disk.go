package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"time"
)

// diskStorage keeps objects as plain files under a root directory.
// Keys are slash-separated and cannot escape the root.
type diskStorage struct {
	root string
}

// NewDisk returns a Storage rooted at dir, creating it if needed.
func NewDisk(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &diskStorage{root: dir}, nil
}

func (d *diskStorage) path(key string) string {
	clean := path.Clean("/" + key)
	return filepath.Join(d.root, filepath.FromSlash(clean))
}

func (d *diskStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	p := d.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return ObjectInfo{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return ObjectInfo{}, err
	}
	defer os.Remove(tmp.Name())

	h := md5.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return ObjectInfo{}, err
	}
	if opt.Size >= 0 && opt.Size != n {
		return ObjectInfo{}, fmt.Errorf("size mismatch: expected %d bytes, got %d", opt.Size, n)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return ObjectInfo{}, err
	}

	ct := opt.ContentType
	if ct == "" {
		ct = contentTypeOf(key)
	}
	return ObjectInfo{
		Key:          key,
		Size:         n,
		ETag:         hex.EncodeToString(h.Sum(nil)),
		ContentType:  ct,
		LastModified: time.Now(),
		Metadata:     opt.Metadata,
	}, nil
}

func (d *diskStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(d.path(key))
	if err != nil {
		return nil, ObjectInfo{}, notFound(err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	return f, fileInfo(key, st), nil
}

func (d *diskStorage) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	st, err := os.Stat(d.path(key))
	if err != nil {
		return ObjectInfo{}, notFound(err)
	}
	if st.IsDir() {
		return ObjectInfo{}, ErrNotFound
	}
	return fileInfo(key, st), nil
}

func (d *diskStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func fileInfo(key string, st fs.FileInfo) ObjectInfo {
	return ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		ContentType:  contentTypeOf(key),
		LastModified: st.ModTime(),
	}
}

func notFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func contentTypeOf(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
