package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	model "blog-post-service/internal/domain/models"
	post_service "blog-post-service/internal/domain/ports/input/post"
	output "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/domain/ports/output/cache"

	"github.com/soloda1/pinstack-proto-definitions/custom_errors"
)

type PostServiceCacheDecorator struct {
	service   post_service.Service
	postCache cache.PostCache
	log       output.Logger
	metrics   output.MetricsProvider
}

func NewPostServiceCacheDecorator(
	service post_service.Service,
	postCache cache.PostCache,
	log output.Logger,
	metrics output.MetricsProvider,
) post_service.Service {
	return &PostServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		log:       log,
		metrics:   metrics,
	}
}

func (d *PostServiceCacheDecorator) ListPosts(ctx context.Context) ([]*model.Post, error) {
	return d.service.ListPosts(ctx)
}

func (d *PostServiceCacheDecorator) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	d.log.Debug("Getting post by ID with cache decorator", slog.Int64("post_id", id))

	cacheStart := time.Now()
	cachedPost, err := d.postCache.GetPost(ctx, id)
	d.metrics.RecordCacheOperationDuration("post_get", time.Since(cacheStart))
	if err == nil {
		d.log.Debug("Post found in cache", slog.Int64("post_id", id))
		d.metrics.IncrementCacheHits()
		return cachedPost, nil
	}

	if !errors.Is(err, custom_errors.ErrCacheMiss) {
		d.log.Warn("Failed to get post from cache",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	} else {
		d.metrics.IncrementCacheMisses()
	}

	post, err := d.service.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.cachePost(ctx, post)
	return post, nil
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	result, err := d.service.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	d.cachePost(ctx, result)
	return result, nil
}

func (d *PostServiceCacheDecorator) UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) (*model.Post, error) {
	d.log.Debug("Updating post with cache decorator", slog.Int64("post_id", id))

	result, err := d.service.UpdatePost(ctx, id, post)
	if err != nil {
		return nil, err
	}

	d.invalidate(ctx, id, "update")
	return result, nil
}

func (d *PostServiceCacheDecorator) DeletePost(ctx context.Context, id int64) error {
	d.log.Debug("Deleting post with cache decorator", slog.Int64("post_id", id))

	if err := d.service.DeletePost(ctx, id); err != nil {
		return err
	}

	d.invalidate(ctx, id, "delete")
	return nil
}

func (d *PostServiceCacheDecorator) cachePost(ctx context.Context, post *model.Post) {
	start := time.Now()
	if err := d.postCache.SetPost(ctx, post); err != nil {
		d.log.Warn("Failed to cache post",
			slog.Int64("post_id", post.ID),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(start))
}

func (d *PostServiceCacheDecorator) invalidate(ctx context.Context, id int64, after string) {
	start := time.Now()
	if err := d.postCache.DeletePost(ctx, id); err != nil {
		d.log.Warn("Failed to invalidate post cache",
			slog.Int64("post_id", id),
			slog.String("after", after),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_delete", time.Since(start))
}
