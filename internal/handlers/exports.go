package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/naembfh/staff-schedule/internal/database"
	"github.com/naembfh/staff-schedule/internal/export"
	"github.com/naembfh/staff-schedule/internal/middleware"
	"github.com/naembfh/staff-schedule/internal/models"
)

func exportInputs(c *gin.Context) (*models.ScheduleWeek, []models.Slot, map[int64]string, string, bool) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return nil, nil, nil, "", false
	}

	monday, ok := parseWeekStart(c)
	if !ok {
		return nil, nil, nil, "", false
	}

	// Exports never create weeks; downloading a never-opened week is a 404.
	week, err := db.GetWeek(c.Request.Context(), monday)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.String(http.StatusNotFound, "Week not found")
			return nil, nil, nil, "", false
		}
		c.String(http.StatusInternalServerError, "failed to load week: %v", err)
		return nil, nil, nil, "", false
	}

	slots, err := db.ListSlots(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list slots: %v", err)
		return nil, nil, nil, "", false
	}
	week.EnsureDefaults(slots)

	staffMap, err := db.StaffMap(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list staff: %v", err)
		return nil, nil, nil, "", false
	}

	title := "Weekly Staff Schedule"
	if cfg, ok := middleware.GetConfig(c); ok {
		title = cfg.ScheduleTitle
	}

	return week, slots, staffMap, title, true
}

func exportStyle(c *gin.Context) int {
	style, err := strconv.Atoi(c.DefaultQuery("style", "1"))
	if err != nil || style != 2 {
		return 1
	}
	return 2
}

// WeekPDF streams the week as a PDF attachment.
func WeekPDF(c *gin.Context) {
	week, slots, staffMap, title, ok := exportInputs(c)
	if !ok {
		return
	}

	data, err := export.BuildPDF(week, slots, staffMap, title, exportStyle(c))
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to render pdf: %v", err)
		return
	}

	filename := fmt.Sprintf("schedule_%s.pdf", week.WeekStart.Format(models.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// WeekPNG streams the week as a PNG attachment at the requested dpi.
func WeekPNG(c *gin.Context) {
	week, slots, staffMap, title, ok := exportInputs(c)
	if !ok {
		return
	}

	dpi, err := strconv.Atoi(c.DefaultQuery("dpi", "450"))
	if err != nil {
		dpi = 450
	}
	dpi = export.ClampDPI(dpi)

	data, err := export.BuildPNG(week, slots, staffMap, title, exportStyle(c), dpi)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to render png: %v", err)
		return
	}

	filename := fmt.Sprintf("schedule_%s_%ddpi.png", week.WeekStart.Format(models.DateLayout), dpi)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "image/png", data)
}
