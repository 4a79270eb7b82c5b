package post_http

import (
	"context"
	"net/http"

	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"

	"github.com/gin-gonic/gin"
)

type PostLister interface {
	ListPosts(ctx context.Context) ([]*model.Post, error)
}

type ListPostsHandler struct {
	postService PostLister
	images      ImageURLer
	log         ports.Logger
}

func NewListPostsHandler(postService PostLister, images ImageURLer, log ports.Logger) *ListPostsHandler {
	return &ListPostsHandler{
		postService: postService,
		images:      images,
		log:         log,
	}
}

func (h *ListPostsHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		failure(c, h.log, "list", err)
		return
	}

	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, toPostView(p, h.images))
	}

	render(c, http.StatusOK, "posts/index", page{Title: "Posts", Posts: views})
}
