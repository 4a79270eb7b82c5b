package post_http

import (
	"context"
	"net/http"

	ports "blog-post-service/internal/domain/ports/output"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PostDeleter interface {
	DeletePost(ctx context.Context, id int64) error
}

type DeletePostHandler struct {
	postService PostDeleter
	validate    *validator.Validate
	log         ports.Logger
}

func NewDeletePostHandler(postService PostDeleter, validate *validator.Validate, log ports.Logger) *DeletePostHandler {
	return &DeletePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

func (h *DeletePostHandler) DeletePost(c *gin.Context) {
	id, ok := parsePostID(c, h.validate)
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), id); err != nil {
		failure(c, h.log, "delete", err)
		return
	}

	respond(c, Outcome{Redirect: "/posts", Flash: msgPostDeleted})
}
