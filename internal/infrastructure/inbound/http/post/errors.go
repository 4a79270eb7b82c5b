package post_http

import (
	"errors"
	"log/slog"
	"net/http"

	ports "blog-post-service/internal/domain/ports/output"
	file_storage "blog-post-service/internal/domain/ports/output/storage"

	"github.com/gin-gonic/gin"
	"github.com/soloda1/pinstack-proto-definitions/custom_errors"
)

var (
	ErrInvalidImage  = errors.New("featured image must be a jpeg, png, gif or webp file")
	ErrImageTooLarge = errors.New("featured image is too large")
)

// failure renders the error page for a service error. Validation errors are handled by the
// caller before this point, everything that is not a missing post is a server error.
func failure(c *gin.Context, log ports.Logger, op string, err error) {
	switch {
	case errors.Is(err, custom_errors.ErrPostNotFound):
		RenderError(c, http.StatusNotFound, "Post not found.")
	case errors.Is(err, file_storage.ErrFileStore):
		log.Error("Featured image storage failed", slog.String("op", op), slog.String("error", err.Error()))
		RenderError(c, http.StatusInternalServerError, "Server Error")
	default:
		log.Error("Post operation failed", slog.String("op", op), slog.String("error", err.Error()))
		RenderError(c, http.StatusInternalServerError, "Server Error")
	}
}
