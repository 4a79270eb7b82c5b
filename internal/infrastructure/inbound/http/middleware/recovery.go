package middleware

import (
	"fmt"
	"log/slog"

	ports "blog-post-service/internal/domain/ports/output"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the response written by onPanic.
func Recovery(log ports.Logger, onPanic gin.HandlerFunc) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Recovered from panic",
			slog.String("path", c.Request.URL.Path),
			slog.String("panic", fmt.Sprint(recovered)))
		onPanic(c)
		c.Abort()
	})
}
