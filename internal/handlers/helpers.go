package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/naembfh/staff-schedule/internal/database"
	"github.com/naembfh/staff-schedule/internal/middleware"
	"github.com/naembfh/staff-schedule/internal/models"
)

// parseWeekStart reads the :start route param and normalises it to the
// Monday of that week.
func parseWeekStart(c *gin.Context) (time.Time, bool) {
	raw := c.Param("start")
	d, err := time.ParseInLocation(models.DateLayout, raw, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return models.Monday(d), true
}

// basePage assembles the template data every page shares.
func basePage(c *gin.Context, db *database.DB) (gin.H, bool) {
	theme, err := db.GetTheme(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load theme: %v", err)
		return nil, false
	}

	title := "Weekly Staff Schedule"
	authEnabled := false
	if cfg, ok := middleware.GetConfig(c); ok {
		title = cfg.ScheduleTitle
		authEnabled = cfg.AuthEnabled()
	}

	return gin.H{
		"Theme":       theme,
		"Title":       title,
		"AuthEnabled": authEnabled,
	}, true
}
