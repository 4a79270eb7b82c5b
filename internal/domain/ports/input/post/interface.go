package post_service

import (
	model "blog-post-service/internal/domain/models"
	"context"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/service --outpkg mocks --filename PostService.go
type Service interface {
	ListPosts(ctx context.Context) ([]*model.Post, error)
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
	UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) (*model.Post, error)
	DeletePost(ctx context.Context, id int64) error
}
