package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(t *testing.T, r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStaffPageAdd(t *testing.T) {
	r, db := newTestRouter(t)

	w := postForm(t, r, "/staff", url.Values{"add_staff": {"1"}, "name": {"anna lee"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	staff, err := db.ListStaff(context.Background())
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "Anna Lee", staff[0].Name)
}

func TestStaffPageRejectsEmptyName(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postForm(t, r, "/staff", url.Values{"add_staff": {"1"}, "name": {"   "}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Name is required.")
}

func TestStaffPageRejectsDuplicateName(t *testing.T) {
	r, db := newTestRouter(t)
	_, err := db.CreateStaff(context.Background(), "Anna Lee")
	require.NoError(t, err)

	w := postForm(t, r, "/staff", url.Values{"add_staff": {"1"}, "name": {"ANNA lee"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "This name already exists.")
}

func TestStaffDeleteScrubsWeeks(t *testing.T) {
	r, db := newTestRouter(t)
	ctx := context.Background()

	s, err := db.CreateStaff(ctx, "Ben")
	require.NoError(t, err)

	week, err := db.GetOrCreateWeek(ctx, testMonday)
	require.NoError(t, err)
	slots, err := db.ListSlots(ctx)
	require.NoError(t, err)
	week.EnsureDefaults(slots)
	week.Cells.Cell("10am", "mon").AddStaff(s.ID)
	require.NoError(t, db.SaveCells(ctx, week.ID, week.Cells))

	w := postForm(t, r, "/staff/"+strconv.FormatInt(s.ID, 10)+"/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)

	got, err := db.GetWeek(ctx, testMonday)
	require.NoError(t, err)
	assert.Empty(t, got.Cells.Cell("10am", "mon").Staff)
}

func TestWeekEditorCreatesAndRenders(t *testing.T) {
	r, db := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/week/2025-06-04", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Any date lands on its Monday and the week is materialised.
	monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	week, err := db.GetWeek(context.Background(), monday)
	require.NoError(t, err)
	assert.NotNil(t, week.Cells.Cell("pt", "mon"))
	assert.Contains(t, w.Body.String(), "02 Jun 2025")
}

func TestWeekEditorRendersSlotColours(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/week/2025-06-02", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.NotContains(t, body, "ZgotmplZ", "slot row styles must survive template sanitisation")
	assert.Contains(t, body, "#fde68a", "seeded Off Day / PT fill")
	assert.Contains(t, body, "#bae6fd", "seeded PH*/AL@ fill")
}

func TestSlotsPageRendersSwatchColours(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/slots", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.NotContains(t, body, "ZgotmplZ")
	assert.Contains(t, body, "#fde68a")
}

func TestHomeListsWeeks(t *testing.T) {
	r, db := newTestRouter(t)
	_, err := db.GetOrCreateWeek(context.Background(), testMonday)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/week/2025-06-02")
}
