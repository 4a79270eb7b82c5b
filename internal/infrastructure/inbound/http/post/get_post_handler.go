package post_http

import (
	"context"
	"net/http"

	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PostGetter interface {
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
}

type GetPostHandler struct {
	postService PostGetter
	validate    *validator.Validate
	images      ImageURLer
	log         ports.Logger
}

func NewGetPostHandler(postService PostGetter, validate *validator.Validate, images ImageURLer, log ports.Logger) *GetPostHandler {
	return &GetPostHandler{
		postService: postService,
		validate:    validate,
		images:      images,
		log:         log,
	}
}

func (h *GetPostHandler) ShowPost(c *gin.Context) {
	post, ok := h.load(c)
	if !ok {
		return
	}
	view := toPostView(post, h.images)
	render(c, http.StatusOK, "posts/show", page{Title: post.Title, Post: view})
}

func (h *GetPostHandler) EditForm(c *gin.Context) {
	post, ok := h.load(c)
	if !ok {
		return
	}
	form := formView{Title: post.Title, Content: post.Content}
	render(c, http.StatusOK, "posts/edit", editPage(toPostView(post, h.images), form, nil))
}

func (h *GetPostHandler) load(c *gin.Context) (*model.Post, bool) {
	id, ok := parsePostID(c, h.validate)
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return nil, false
	}

	post, err := h.postService.GetPostByID(c.Request.Context(), id)
	if err != nil {
		failure(c, h.log, "get", err)
		return nil, false
	}
	return post, true
}
