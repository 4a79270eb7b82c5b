package post_http

import (
	post_service "blog-post-service/internal/domain/ports/input/post"
	ports "blog-post-service/internal/domain/ports/output"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type PostHTTPService struct {
	listPostsHandler  *ListPostsHandler
	createPostHandler *CreatePostHandler
	getPostHandler    *GetPostHandler
	updatePostHandler *UpdatePostHandler
	deletePostHandler *DeletePostHandler
}

func NewPostHTTPService(postService post_service.Service, images ImageURLer, maxUploadBytes int64, log ports.Logger) *PostHTTPService {
	return &PostHTTPService{
		listPostsHandler:  NewListPostsHandler(postService, images, log),
		createPostHandler: NewCreatePostHandler(postService, validate, maxUploadBytes, log),
		getPostHandler:    NewGetPostHandler(postService, validate, images, log),
		updatePostHandler: NewUpdatePostHandler(postService, validate, images, maxUploadBytes, log),
		deletePostHandler: NewDeletePostHandler(postService, validate, log),
	}
}

func (s *PostHTTPService) RegisterRoutes(r gin.IRouter) {
	posts := r.Group("/posts")
	posts.GET("", s.listPostsHandler.ListPosts)
	posts.GET("/create", s.createPostHandler.CreateForm)
	posts.POST("", s.createPostHandler.StorePost)
	posts.GET("/:post", s.getPostHandler.ShowPost)
	posts.GET("/:post/edit", s.getPostHandler.EditForm)
	posts.PUT("/:post", s.updatePostHandler.UpdatePost)
	posts.PATCH("/:post", s.updatePostHandler.UpdatePost)
	posts.DELETE("/:post", s.deletePostHandler.DeletePost)
}
