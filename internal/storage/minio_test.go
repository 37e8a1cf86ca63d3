package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"cookbook/internal/config"
)

func TestNewMinIOValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want []string
	}{
		{
			name: "empty",
			cfg:  config.MinIOConfig{},
			want: []string{"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_BUCKET"},
		},
		{
			name: "missing secret",
			cfg:  config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "k", Bucket: "b"},
			want: []string{"MINIO_SECRET_KEY"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMinIO(context.Background(), tt.cfg, zerolog.Nop())
			for _, w := range tt.want {
				assert.ErrorContains(t, err, w)
			}
		})
	}
}

func TestMapMinIOError(t *testing.T) {
	assert.NoError(t, mapMinIOError(nil))
	assert.ErrorIs(t, mapMinIOError(minio.ErrorResponse{Code: "NoSuchKey"}), ErrNotFound)

	other := errors.New("boom")
	assert.Same(t, other, mapMinIOError(other))
}
