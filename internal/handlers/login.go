package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/naembfh/staff-schedule/internal/auth"
	"github.com/naembfh/staff-schedule/internal/middleware"
)

// LoginPage renders the login form and handles the password submission.
// Registered only when the editor login gate is enabled.
func LoginPage(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, ok := middleware.MustDB(c)
		if !ok {
			return
		}

		next := c.Query("next")
		if !strings.HasPrefix(next, "/") {
			next = "/"
		}

		if c.Request.Method == http.MethodPost {
			password := c.PostForm("password")
			if err := svc.CheckPassword(password); err != nil {
				data, ok := basePage(c, db)
				if !ok {
					return
				}
				data["Error"] = "Wrong password."
				data["Next"] = next
				c.HTML(http.StatusUnauthorized, "login.html", data)
				return
			}

			token, err := svc.GenerateToken()
			if err != nil {
				c.String(http.StatusInternalServerError, "failed to create session: %v", err)
				return
			}

			c.SetCookie(middleware.SessionCookie, token, 24*60*60, "/", "", false, true)
			c.Redirect(http.StatusSeeOther, next)
			return
		}

		data, ok := basePage(c, db)
		if !ok {
			return
		}
		data["Error"] = ""
		data["Next"] = next
		c.HTML(http.StatusOK, "login.html", data)
	}
}

// Logout drops the session cookie.
func Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}
