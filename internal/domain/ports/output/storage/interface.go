package file_storage

import (
	model "blog-post-service/internal/domain/models"
	"context"
	"errors"
)

var (
	ErrFileStore  = errors.New("failed to store file")
	ErrFileDelete = errors.New("failed to delete file")
)

// Storage is the public disk. Paths are relative to the disk root and use forward slashes.
//
//go:generate mockery --name Storage --dir . --output ../../../../../mocks/storage --outpkg mocks --filename Storage.go
type Storage interface {
	Put(ctx context.Context, dir string, upload *model.ImageUpload) (string, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	URL(path string) string
}
