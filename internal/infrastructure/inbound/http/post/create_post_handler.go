package post_http

import (
	"context"
	"errors"
	"net/http"

	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/soloda1/pinstack-proto-definitions/custom_errors"
)

type PostCreator interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
}

type CreatePostHandler struct {
	postService    PostCreator
	validate       *validator.Validate
	maxUploadBytes int64
	log            ports.Logger
}

func NewCreatePostHandler(postService PostCreator, validate *validator.Validate, maxUploadBytes int64, log ports.Logger) *CreatePostHandler {
	return &CreatePostHandler{
		postService:    postService,
		validate:       validate,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

func (h *CreatePostHandler) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "posts/create", createPage(formView{}, nil))
}

func (h *CreatePostHandler) StorePost(c *gin.Context) {
	form := bindPostForm(c, h.validate, h.maxUploadBytes)
	if !form.valid() {
		render(c, http.StatusUnprocessableEntity, "posts/create", createPage(form.view(), form.Errors))
		return
	}

	_, err := h.postService.CreatePost(c.Request.Context(), &model.CreatePostDTO{
		Title:         form.Title,
		Content:       form.Content,
		FeaturedImage: form.Image,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostValidation) {
			render(c, http.StatusUnprocessableEntity, "posts/create",
				createPage(form.view(), map[string]string{"title": "The post could not be validated."}))
			return
		}
		failure(c, h.log, "create", err)
		return
	}

	respond(c, Outcome{Redirect: "/posts", Flash: msgPostCreated})
}

func createPage(form formView, errs map[string]string) page {
	return page{
		Title:  "Create Post",
		Form:   form,
		Errors: errs,
		Action: "/posts",
	}
}
