package disk

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
	file_storage "blog-post-service/internal/domain/ports/output/storage"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// PublicDisk stores files on an afero filesystem whose root is served under publicURL.
type PublicDisk struct {
	fs        afero.Fs
	publicURL string
	log       ports.Logger
	metrics   ports.MetricsProvider
}

func NewPublicDisk(fs afero.Fs, publicURL string, log ports.Logger, metrics ports.MetricsProvider) *PublicDisk {
	return &PublicDisk{
		fs:        fs,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log,
		metrics:   metrics,
	}
}

// NewOSPublicDisk roots the disk at dir on the local filesystem, creating it if needed.
func NewOSPublicDisk(dir, publicURL string, log ports.Logger, metrics ports.MetricsProvider) (*PublicDisk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create public disk root: %w", err)
	}
	return NewPublicDisk(afero.NewBasePathFs(afero.NewOsFs(), dir), publicURL, log, metrics), nil
}

func (d *PublicDisk) Put(ctx context.Context, dir string, upload *model.ImageUpload) (string, error) {
	if upload == nil || upload.Open == nil {
		d.metrics.IncrementFileOperations("put", false)
		return "", fmt.Errorf("%w: empty upload", file_storage.ErrFileStore)
	}

	name := uuid.NewString() + strings.ToLower(upload.Extension)
	filePath := path.Join(cleanPath(dir), name)

	if err := d.fs.MkdirAll(fsPath(dir), 0o755); err != nil {
		d.metrics.IncrementFileOperations("put", false)
		d.log.Error("Failed to create directory on public disk", slog.String("dir", dir), slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", file_storage.ErrFileStore, err)
	}

	src, err := upload.Open()
	if err != nil {
		d.metrics.IncrementFileOperations("put", false)
		d.log.Error("Failed to open upload", slog.String("filename", upload.Filename), slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", file_storage.ErrFileStore, err)
	}
	defer src.Close()

	if err := afero.WriteReader(d.fs, fsPath(filePath), src); err != nil {
		d.metrics.IncrementFileOperations("put", false)
		d.log.Error("Failed to write file to public disk", slog.String("path", filePath), slog.String("error", err.Error()))
		_ = d.fs.Remove(fsPath(filePath))
		return "", fmt.Errorf("%w: %v", file_storage.ErrFileStore, err)
	}

	d.metrics.IncrementFileOperations("put", true)
	d.log.Debug("Stored file on public disk",
		slog.String("path", filePath),
		slog.String("original_name", upload.Filename),
		slog.Int64("size", upload.Size))
	return filePath, nil
}

func (d *PublicDisk) Delete(ctx context.Context, filePath string) error {
	if filePath == "" {
		return nil
	}

	err := d.fs.Remove(fsPath(filePath))
	if err != nil && !os.IsNotExist(err) {
		d.metrics.IncrementFileOperations("delete", false)
		d.log.Error("Failed to delete file from public disk", slog.String("path", filePath), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", file_storage.ErrFileDelete, err)
	}

	d.metrics.IncrementFileOperations("delete", true)
	d.log.Debug("Deleted file from public disk", slog.String("path", filePath), slog.Bool("existed", err == nil))
	return nil
}

func (d *PublicDisk) Exists(ctx context.Context, filePath string) (bool, error) {
	return afero.Exists(d.fs, fsPath(filePath))
}

func (d *PublicDisk) URL(filePath string) string {
	return d.publicURL + "/" + cleanPath(filePath)
}

// FileSystem exposes the disk for static serving. Directories are reported as missing.
func (d *PublicDisk) FileSystem() http.FileSystem {
	return filesOnly{fs: afero.NewHttpFs(d.fs).Dir("/")}
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}

// cleanPath keeps paths relative to the disk root so they cannot escape it.
func cleanPath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// fsPath is the rooted form used for filesystem calls.
func fsPath(p string) string {
	return "/" + cleanPath(p)
}
