package post_http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "notif_success"

	msgPostCreated = "Post created successfully!"
	msgPostUpdated = "Post updated successfully!"
	msgPostDeleted = "Post deleted successfully"
)

// Outcome is what a successful mutating handler hands back to the HTTP layer: where to go next
// and the notification to show once on the page rendered there.
type Outcome struct {
	Redirect string
	Flash    string
}

func respond(c *gin.Context, out Outcome) {
	if out.Flash != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flashCookie, out.Flash, 0, "/", "", false, true)
	}
	c.Redirect(http.StatusSeeOther, out.Redirect)
}

// consumeFlash returns the pending notification and expires the cookie so it is shown once.
func consumeFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookie)
	if err != nil || msg == "" {
		return ""
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return msg
}
