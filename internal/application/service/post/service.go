package post_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	model "blog-post-service/internal/domain/models"
	output "blog-post-service/internal/domain/ports/output"
	post_repository "blog-post-service/internal/domain/ports/output/post"
	file_storage "blog-post-service/internal/domain/ports/output/storage"

	"github.com/soloda1/pinstack-proto-definitions/custom_errors"
)

// FeaturedImageDir is where featured images live on the public disk.
const FeaturedImageDir = "images/posts/featured-images"

type PostService struct {
	postRepo post_repository.Repository
	storage  file_storage.Storage
	log      output.Logger
	metrics  output.MetricsProvider
}

func NewPostService(
	postRepo post_repository.Repository,
	storage file_storage.Storage,
	log output.Logger,
	metrics output.MetricsProvider,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		storage:  storage,
		log:      log,
		metrics:  metrics,
	}
}

func (s *PostService) ListPosts(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		s.metrics.IncrementPostOperations("list", false)
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementPostOperations("list", true)
	return posts, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		s.metrics.IncrementPostOperations("get", false)
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			s.log.Debug("Post not found", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		default:
			s.log.Error("Failed to get post by id", slog.Int64("id", id), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	s.metrics.IncrementPostOperations("get", true)
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, dto *model.CreatePostDTO) (*model.Post, error) {
	if dto == nil || strings.TrimSpace(dto.Title) == "" || strings.TrimSpace(dto.Content) == "" {
		s.metrics.IncrementPostOperations("create", false)
		return nil, custom_errors.ErrPostValidation
	}

	newPost := &model.Post{
		Title:   dto.Title,
		Content: dto.Content,
	}

	var storedPath string
	if dto.FeaturedImage != nil {
		path, err := s.storage.Put(ctx, FeaturedImageDir, dto.FeaturedImage)
		if err != nil {
			s.metrics.IncrementPostOperations("create", false)
			s.log.Error("Failed to store featured image", slog.String("filename", dto.FeaturedImage.Filename), slog.String("error", err.Error()))
			return nil, err
		}
		storedPath = path
		newPost.FeaturedImage = &storedPath
	}

	created, err := s.postRepo.Create(ctx, newPost)
	if err != nil {
		s.metrics.IncrementPostOperations("create", false)
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		s.discardFile(ctx, storedPath)
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementPostOperations("create", true)
	s.log.Info("Post created", slog.Int64("id", created.ID), slog.Bool("has_image", created.HasFeaturedImage()))
	return created, nil
}

// UpdatePost stores a new featured image before persisting and removes the previous one only
// after the record points at the new file. A failed write leaves the old image in place.
func (s *PostService) UpdatePost(ctx context.Context, id int64, dto *model.UpdatePostDTO) (*model.Post, error) {
	if dto == nil || strings.TrimSpace(dto.Title) == "" || strings.TrimSpace(dto.Content) == "" {
		s.metrics.IncrementPostOperations("update", false)
		return nil, custom_errors.ErrPostValidation
	}

	existing, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		s.metrics.IncrementPostOperations("update", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for update", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	changes := &model.Post{
		Title:         dto.Title,
		Content:       dto.Content,
		FeaturedImage: existing.FeaturedImage,
	}

	var storedPath string
	if dto.FeaturedImage != nil {
		path, err := s.storage.Put(ctx, FeaturedImageDir, dto.FeaturedImage)
		if err != nil {
			s.metrics.IncrementPostOperations("update", false)
			s.log.Error("Failed to store featured image", slog.Int64("id", id), slog.String("error", err.Error()))
			return nil, err
		}
		storedPath = path
		changes.FeaturedImage = &storedPath
	}

	updated, err := s.postRepo.Update(ctx, id, changes)
	if err != nil {
		s.metrics.IncrementPostOperations("update", false)
		s.discardFile(ctx, storedPath)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post disappeared during update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to update post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if storedPath != "" && existing.HasFeaturedImage() && *existing.FeaturedImage != storedPath {
		s.discardFile(ctx, *existing.FeaturedImage)
	}

	s.metrics.IncrementPostOperations("update", true)
	s.log.Info("Post updated", slog.Int64("id", id), slog.Bool("image_replaced", storedPath != ""))
	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	existing, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		s.metrics.IncrementPostOperations("delete", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for delete", slog.Int64("id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for delete", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		s.metrics.IncrementPostOperations("delete", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post disappeared during delete", slog.Int64("id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to delete post", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if existing.HasFeaturedImage() {
		s.discardFile(ctx, *existing.FeaturedImage)
	}

	s.metrics.IncrementPostOperations("delete", true)
	s.log.Info("Post deleted", slog.Int64("id", id))
	return nil
}

// discardFile removes a stored file on a best-effort basis. The record is already consistent
// when it is called, so a failure only leaves an orphaned file behind.
func (s *PostService) discardFile(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.storage.Delete(ctx, path); err != nil {
		s.log.Warn("Failed to delete stored file", slog.String("path", path), slog.String("error", err.Error()))
	}
}
