package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/naembfh/staff-schedule/internal/middleware"
	"github.com/naembfh/staff-schedule/internal/models"
)

type weekRow struct {
	Start string
	Range string
}

// Home lists the recent weeks and hosts the open-or-create form.
func Home(c *gin.Context) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return
	}

	weeks, err := db.ListRecentWeeks(c.Request.Context(), 40)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list weeks: %v", err)
		return
	}

	rows := make([]weekRow, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, weekRow{
			Start: w.WeekStart.Format(models.DateLayout),
			Range: w.WeekStart.Format("02 Jan 2006") + " – " + w.WeekEnd().Format("02 Jan 2006"),
		})
	}

	data, ok := basePage(c, db)
	if !ok {
		return
	}
	data["Weeks"] = rows
	data["Today"] = time.Now().Format(models.DateLayout)

	c.HTML(http.StatusOK, "home.html", data)
}

// OpenWeek creates (or finds) the week containing the submitted date and
// redirects to its editor.
func OpenWeek(c *gin.Context) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return
	}

	if c.PostForm("open_week") == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	dateStr := c.PostForm("date")
	d, err := time.ParseInLocation(models.DateLayout, dateStr, time.UTC)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	monday := models.Monday(d)
	if _, err := db.GetOrCreateWeek(c.Request.Context(), monday); err != nil {
		c.String(http.StatusInternalServerError, "failed to create week: %v", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/week/"+monday.Format(models.DateLayout))
}
