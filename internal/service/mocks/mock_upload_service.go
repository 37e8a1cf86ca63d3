package mocks

import (
	"context"
	"io"

	"cookbook/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (storage.ObjectInfo, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockUploadService) Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}
