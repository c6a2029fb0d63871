package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/naembfh/staff-schedule/internal/auth"
)

// SessionCookie is the name of the editor session cookie.
const SessionCookie = "schedule_session"

// RequireEditor gates mutating routes behind the editor login. With a nil
// service (no EDITOR_PASSWORD configured) the app runs open.
func RequireEditor(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc == nil {
			c.Next()
			return
		}

		token, err := c.Cookie(SessionCookie)
		if err == nil && token != "" {
			if _, err := svc.ValidateToken(token); err == nil {
				c.Next()
				return
			}
		}

		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			c.Abort()
			return
		}

		c.Redirect(http.StatusSeeOther, "/login?next="+c.Request.URL.Path)
		c.Abort()
	}
}
