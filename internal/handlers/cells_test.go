package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naembfh/staff-schedule/internal/config"
	"github.com/naembfh/staff-schedule/internal/database"
	"github.com/naembfh/staff-schedule/internal/middleware"
	"github.com/naembfh/staff-schedule/internal/models"
	"github.com/naembfh/staff-schedule/web"
)

var testMonday = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) (*gin.Engine, *database.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Seed(context.Background(), ""))

	cfg := &config.Config{
		Logger:        log.New(io.Discard, "", 0),
		ScheduleTitle: "Test Schedule",
	}

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.ParseFS(web.FS, "templates/*.html")))
	r.Use(middleware.WithConfig(cfg))
	r.Use(middleware.WithDB(db))

	r.GET("/", Home)
	r.GET("/staff", StaffPage)
	r.POST("/staff", StaffPage)
	r.POST("/staff/:id/delete", StaffDelete)
	r.GET("/slots", SlotsPage)
	r.GET("/week/:start", WeekEditor)
	r.GET("/week/:start/pdf", WeekPDF)
	r.GET("/week/:start/png", WeekPNG)
	r.POST("/api/week/:start/cell/update", CellUpdate)
	r.POST("/api/week/:start/cell/block", CellBlock)

	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w, resp
}

func setupWeekWithStaff(t *testing.T, db *database.DB, names ...string) []int64 {
	t.Helper()
	ctx := context.Background()

	_, err := db.GetOrCreateWeek(ctx, testMonday)
	require.NoError(t, err)

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		s, err := db.CreateStaff(ctx, name)
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}
	return ids
}

func updatePath() string {
	return "/api/week/" + testMonday.Format(models.DateLayout) + "/cell/update"
}

func blockPath() string {
	return "/api/week/" + testMonday.Format(models.DateLayout) + "/cell/block"
}

func TestCellUpdateAddAndRemove(t *testing.T) {
	r, db := newTestRouter(t)
	ids := setupWeekWithStaff(t, db, "Anna")

	w, resp := postJSON(t, r, updatePath(), gin.H{
		"slot_key": "10am", "day_key": "mon", "action": "add", "staff_id": ids[0],
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, []any{float64(ids[0])}, resp["staff_ids"])

	w, resp = postJSON(t, r, updatePath(), gin.H{
		"slot_key": "10am", "day_key": "mon", "action": "remove", "staff_id": ids[0],
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["staff_ids"])
}

func TestCellUpdateOneAssignmentPerDay(t *testing.T) {
	r, db := newTestRouter(t)
	ids := setupWeekWithStaff(t, db, "Anna")

	w, _ := postJSON(t, r, updatePath(), gin.H{
		"slot_key": "10am", "day_key": "mon", "action": "add", "staff_id": ids[0],
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Same day, another row: rejected.
	w, resp := postJSON(t, r, updatePath(), gin.H{
		"slot_key": "11am", "day_key": "mon", "action": "add", "staff_id": ids[0],
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Not allowed: staff already assigned on this day.", resp["error"])

	// A different day is fine.
	w, _ = postJSON(t, r, updatePath(), gin.H{
		"slot_key": "11am", "day_key": "tue", "action": "add", "staff_id": ids[0],
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCellUpdateExclusiveRules(t *testing.T) {
	r, db := newTestRouter(t)
	ids := setupWeekWithStaff(t, db, "Anna")

	// On Off Day, no work row allowed.
	w, _ := postJSON(t, r, updatePath(), gin.H{
		"slot_key": "off_day", "day_key": "mon", "action": "add", "staff_id": ids[0],
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := postJSON(t, r, updatePath(), gin.H{
		"slot_key": "10am", "day_key": "mon", "action": "add", "staff_id": ids[0],
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Not allowed: staff is Off Day / PH-AL on this day.", resp["error"])
}

func TestCellUpdateExclusiveAssignmentEvicts(t *testing.T) {
	r, db := newTestRouter(t)
	ids := setupWeekWithStaff(t, db, "Anna")

	w, _ := postJSON(t, r, updatePath(), gin.H{
		"slot_key": "10am", "day_key": "mon", "action": "add", "staff_id": ids[0],
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Moving to PH/AL pulls the staff member out of the work row.
	w, _ = postJSON(t, r, updatePath(), gin.H{
		"slot_key": "ph_al", "day_key": "mon", "action": "add", "staff_id": ids[0],
	})
	require.Equal(t, http.StatusOK, w.Code)

	week, err := db.GetWeek(context.Background(), testMonday)
	require.NoError(t, err)
	assert.Empty(t, week.Cells.Cell("10am", "mon").Staff)
	assert.Equal(t, []int64{ids[0]}, week.Cells.Cell("ph_al", "mon").Staff)
}

func TestCellUpdatePTTime(t *testing.T) {
	r, db := newTestRouter(t)
	setupWeekWithStaff(t, db)

	w, resp := postJSON(t, r, updatePath(), gin.H{
		"slot_key": "pt", "day_key": "wed", "action": "set_pt_time", "pt_time": "9-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "9-1", resp["pt_time"])

	w, resp = postJSON(t, r, updatePath(), gin.H{
		"slot_key": "10am", "day_key": "wed", "action": "set_pt_time", "pt_time": "9-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PT time only applies to PT row.", resp["error"])
}

func TestCellUpdateValidation(t *testing.T) {
	r, db := newTestRouter(t)
	ids := setupWeekWithStaff(t, db, "Anna")

	tests := []struct {
		name     string
		body     gin.H
		wantCode int
		wantErr  string
	}{
		{"missing staff id", gin.H{"slot_key": "10am", "day_key": "mon", "action": "add"}, http.StatusBadRequest, "Missing staff_id."},
		{"unknown staff", gin.H{"slot_key": "10am", "day_key": "mon", "action": "add", "staff_id": 9999}, http.StatusNotFound, "Staff not found."},
		{"unknown slot", gin.H{"slot_key": "nope", "day_key": "mon", "action": "add", "staff_id": ids[0]}, http.StatusNotFound, "Slot not found."},
		{"bad day", gin.H{"slot_key": "10am", "day_key": "monday", "action": "add", "staff_id": ids[0]}, http.StatusBadRequest, "Invalid day."},
		{"bad action", gin.H{"slot_key": "10am", "day_key": "mon", "action": "swap", "staff_id": ids[0]}, http.StatusBadRequest, "Invalid action."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := postJSON(t, r, updatePath(), tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, resp["error"])
		})
	}
}

func TestCellUpdateUnknownWeek(t *testing.T) {
	r, db := newTestRouter(t)
	ids := setupWeekWithStaff(t, db, "Anna")

	w, resp := postJSON(t, r, "/api/week/2030-01-07/cell/update", gin.H{
		"slot_key": "10am", "day_key": "mon", "action": "add", "staff_id": ids[0],
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Week not found.", resp["error"])
}

func TestCellUpdateBadDateParam(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := postJSON(t, r, "/api/week/junk/cell/update", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid date format. Use YYYY-MM-DD", resp["error"])
}

func TestCellBlockToggleClearsStaff(t *testing.T) {
	r, db := newTestRouter(t)
	ids := setupWeekWithStaff(t, db, "Anna")

	w, _ := postJSON(t, r, updatePath(), gin.H{
		"slot_key": "pt", "day_key": "thu", "action": "add", "staff_id": ids[0],
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := postJSON(t, r, blockPath(), gin.H{"slot_key": "pt", "day_key": "thu"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["blocked"])
	assert.Empty(t, resp["staff_ids"])

	// Adding to a blocked cell is rejected.
	w, resp = postJSON(t, r, updatePath(), gin.H{
		"slot_key": "pt", "day_key": "thu", "action": "add", "staff_id": ids[0],
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "This cell is blocked.", resp["error"])

	// Toggle back off.
	w, resp = postJSON(t, r, blockPath(), gin.H{"slot_key": "pt", "day_key": "thu"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["blocked"])
}

func TestCellBlockRejectsNonBlockableRow(t *testing.T) {
	r, db := newTestRouter(t)
	setupWeekWithStaff(t, db)

	w, resp := postJSON(t, r, blockPath(), gin.H{"slot_key": "10am", "day_key": "mon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This slot cannot be blocked.", resp["error"])
}
