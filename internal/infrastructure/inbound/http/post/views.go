package post_http

import (
	"net/http"

	model "blog-post-service/internal/domain/models"

	"github.com/gin-gonic/gin"
)

const timeLayout = "Jan 2, 2006 15:04"

// ImageURLer resolves a stored featured image path to a public URL.
type ImageURLer interface {
	URL(path string) string
}

type postView struct {
	ID        int64
	Title     string
	Content   string
	ImageURL  string
	CreatedAt string
	UpdatedAt string
}

type formView struct {
	Title   string
	Content string
}

type page struct {
	Title   string
	Flash   string
	Posts   []postView
	Post    postView
	Form    formView
	Errors  map[string]string
	Action  string
	Method  string
	Status  int
	Message string
}

func toPostView(p *model.Post, images ImageURLer) postView {
	v := postView{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
	}
	if p.HasFeaturedImage() {
		v.ImageURL = images.URL(*p.FeaturedImage)
	}
	if p.CreatedAt.Valid {
		v.CreatedAt = p.CreatedAt.Time.Format(timeLayout)
	}
	if p.UpdatedAt.Valid {
		v.UpdatedAt = p.UpdatedAt.Time.Format(timeLayout)
	}
	return v
}

func render(c *gin.Context, status int, name string, p page) {
	p.Flash = consumeFlash(c)
	c.HTML(status, name, p)
}

// RenderError writes the error page. It is exported for the router's fallback handlers.
func RenderError(c *gin.Context, status int, message string) {
	render(c, status, "errors/error", page{
		Title:   http.StatusText(status),
		Status:  status,
		Message: message,
	})
}
