package post_repository

import (
	model "blog-post-service/internal/domain/models"
	"context"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/post --outpkg mocks --filename PostRepository.go
type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	Update(ctx context.Context, id int64, post *model.Post) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
	// List returns every post ordered by updated_at ascending, then by id.
	List(ctx context.Context) ([]*model.Post, error)
}
