package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/naembfh/staff-schedule/internal/middleware"
)

// ThemePage shows and saves the singleton colour theme.
func ThemePage(c *gin.Context) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return
	}

	theme, err := db.GetTheme(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load theme: %v", err)
		return
	}

	if c.Request.Method == http.MethodPost && c.PostForm("save_theme") != "" {
		set := func(dst *string, field string) {
			if v := strings.TrimSpace(c.PostForm(field)); v != "" {
				*dst = v
			}
		}
		set(&theme.HeaderBGType, "header_bg_type")
		set(&theme.HeaderBGColor1, "header_bg_color1")
		set(&theme.HeaderBGColor2, "header_bg_color2")
		set(&theme.HeaderTextColor, "header_text_color")
		set(&theme.TableHeaderBG, "table_header_bg")
		set(&theme.TableHeaderText, "table_header_text")
		set(&theme.WeekendBG, "weekend_bg")
		set(&theme.BlockedBG, "blocked_bg")

		if err := db.SaveTheme(c.Request.Context(), theme); err != nil {
			c.String(http.StatusInternalServerError, "failed to save theme: %v", err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/theme")
		return
	}

	data, ok := basePage(c, db)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "theme.html", data)
}
