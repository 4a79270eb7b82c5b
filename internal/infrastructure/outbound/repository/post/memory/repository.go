package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/soloda1/pinstack-proto-definitions/custom_errors"
)

type PostRepository struct {
	log    ports.Logger
	mu     sync.RWMutex
	posts  map[int64]*model.Post
	nextID int64
	now    func() time.Time
}

func NewPostRepository(log ports.Logger) *PostRepository {
	return &PostRepository{
		log:    log,
		posts:  make(map[int64]*model.Post),
		nextID: 1,
		now:    time.Now,
	}
}

// SetClock replaces the timestamp source. Tests use it to control listing order.
func (p *PostRepository) SetClock(now func() time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = now
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.log.Debug("Creating new post (memory impl)", slog.String("title", post.Title))

	p.mu.Lock()
	defer p.mu.Unlock()

	now := pgtype.Timestamptz{Time: p.now(), Valid: true}

	newPost := &model.Post{
		ID:            p.nextID,
		Title:         post.Title,
		Content:       post.Content,
		FeaturedImage: copyString(post.FeaturedImage),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	p.nextID++

	p.posts[newPost.ID] = newPost

	p.log.Debug("Successfully created post (memory impl)", slog.Int64("id", newPost.ID))
	return clonePost(newPost), nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	return clonePost(post), nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	post.Title = update.Title
	post.Content = update.Content
	post.FeaturedImage = copyString(update.FeaturedImage)
	post.UpdatedAt = pgtype.Timestamptz{Time: p.now(), Valid: true}

	return clonePost(post), nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.posts[id]; !exists {
		return custom_errors.ErrPostNotFound
	}

	delete(p.posts, id)
	return nil
}

func (p *PostRepository) List(ctx context.Context) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*model.Post, 0, len(p.posts))
	for _, post := range p.posts {
		result = append(result, clonePost(post))
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].UpdatedAt.Time, result[j].UpdatedAt.Time
		if a.Equal(b) {
			return result[i].ID < result[j].ID
		}
		return a.Before(b)
	})

	p.log.Debug("Returning posts (memory impl)", slog.Int("count", len(result)))
	return result, nil
}

func clonePost(post *model.Post) *model.Post {
	c := *post
	c.FeaturedImage = copyString(post.FeaturedImage)
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
