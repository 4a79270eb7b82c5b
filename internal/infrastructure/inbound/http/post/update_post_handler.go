package post_http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/soloda1/pinstack-proto-definitions/custom_errors"
)

type PostUpdater interface {
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
	UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) (*model.Post, error)
}

type UpdatePostHandler struct {
	postService    PostUpdater
	validate       *validator.Validate
	images         ImageURLer
	maxUploadBytes int64
	log            ports.Logger
}

func NewUpdatePostHandler(postService PostUpdater, validate *validator.Validate, images ImageURLer, maxUploadBytes int64, log ports.Logger) *UpdatePostHandler {
	return &UpdatePostHandler{
		postService:    postService,
		validate:       validate,
		images:         images,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

func (h *UpdatePostHandler) UpdatePost(c *gin.Context) {
	id, ok := parsePostID(c, h.validate)
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found.")
		return
	}

	// A missing post is reported before the submission is validated.
	current, err := h.postService.GetPostByID(c.Request.Context(), id)
	if err != nil {
		failure(c, h.log, "update", err)
		return
	}

	form := bindPostForm(c, h.validate, h.maxUploadBytes)
	if !form.valid() {
		render(c, http.StatusUnprocessableEntity, "posts/edit", editPage(toPostView(current, h.images), form.view(), form.Errors))
		return
	}

	_, err = h.postService.UpdatePost(c.Request.Context(), id, &model.UpdatePostDTO{
		Title:         form.Title,
		Content:       form.Content,
		FeaturedImage: form.Image,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostValidation) {
			render(c, http.StatusUnprocessableEntity, "posts/edit",
				editPage(toPostView(current, h.images), form.view(), map[string]string{"title": "The post could not be validated."}))
			return
		}
		failure(c, h.log, "update", err)
		return
	}

	respond(c, Outcome{Redirect: "/posts", Flash: msgPostUpdated})
}

func editPage(post postView, form formView, errs map[string]string) page {
	return page{
		Title:  "Edit Post",
		Post:   post,
		Form:   form,
		Errors: errs,
		Action: fmt.Sprintf("/posts/%d", post.ID),
		Method: http.MethodPut,
	}
}
