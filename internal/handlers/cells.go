package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/naembfh/staff-schedule/internal/database"
	"github.com/naembfh/staff-schedule/internal/middleware"
	"github.com/naembfh/staff-schedule/internal/models"
)

// CellUpdateRequest is the body for the cell mutation endpoint.
type CellUpdateRequest struct {
	SlotKey string  `json:"slot_key"`
	DayKey  string  `json:"day_key"`
	Action  string  `json:"action"`
	StaffID *int64  `json:"staff_id,omitempty"`
	PTTime  *string `json:"pt_time,omitempty"`
}

// CellBlockRequest is the body for the block toggle endpoint.
type CellBlockRequest struct {
	SlotKey string `json:"slot_key"`
	DayKey  string `json:"day_key"`
}

func cellResponse(cell *models.Cell) gin.H {
	staffIDs := cell.Staff
	if staffIDs == nil {
		staffIDs = []int64{}
	}
	return gin.H{
		"ok":        true,
		"staff_ids": staffIDs,
		"pt_time":   cell.PTTime,
		"blocked":   cell.Blocked,
	}
}

// CellUpdate applies an add / remove / set_pt_time action to one grid cell,
// enforcing the one-assignment-per-day and Off-Day/PH-AL exclusivity rules.
func CellUpdate(c *gin.Context) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return
	}

	monday, ok := parseWeekStart(c)
	if !ok {
		return
	}

	week, err := db.GetWeek(c.Request.Context(), monday)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Week not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to load week", "details": err.Error()})
		return
	}

	var req CellUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request body."})
		return
	}
	req.SlotKey = strings.TrimSpace(req.SlotKey)
	req.DayKey = strings.TrimSpace(req.DayKey)
	req.Action = strings.TrimSpace(req.Action)

	slot, err := db.GetSlotByKey(c.Request.Context(), req.SlotKey)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Slot not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to load slot", "details": err.Error()})
		return
	}

	if !models.ValidDayKey(req.DayKey) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid day."})
		return
	}

	slots, err := db.ListSlots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to list slots", "details": err.Error()})
		return
	}
	week.EnsureDefaults(slots)

	cell := week.Cells.Cell(slot.Key, req.DayKey)

	if slot.AllowBlock && cell.Blocked && (req.Action == "add" || req.Action == "remove") {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "This cell is blocked."})
		return
	}

	if req.Action == "set_pt_time" {
		if slot.Key != models.PTSlotKey {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "PT time only applies to PT row."})
			return
		}
		if req.PTTime != nil {
			cell.PTTime = strings.TrimSpace(*req.PTTime)
		} else {
			cell.PTTime = ""
		}
		if err := db.SaveCells(c.Request.Context(), week.ID, week.Cells); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to save week", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cellResponse(cell))
		return
	}

	if req.StaffID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Missing staff_id."})
		return
	}
	staffID := *req.StaffID

	exists, err := db.StaffExists(c.Request.Context(), staffID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to look up staff", "details": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Staff not found."})
		return
	}

	switch req.Action {
	case "add":
		if !models.IsExclusiveSlot(slot.Key) {
			if week.Cells.InExclusive(req.DayKey, staffID) {
				c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "Not allowed: staff is Off Day / PH-AL on this day."})
				return
			}
			if week.Cells.AssignedAnywhere(req.DayKey, staffID) {
				c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "Not allowed: staff already assigned on this day."})
				return
			}
		}

		cell.AddStaff(staffID)

		// An exclusive assignment pushes the staff member out of every
		// other row that day.
		if models.IsExclusiveSlot(slot.Key) {
			week.Cells.EvictFromOtherSlots(req.DayKey, slot.Key, staffID)
		}

	case "remove":
		cell.RemoveStaff(staffID)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid action."})
		return
	}

	if err := db.SaveCells(c.Request.Context(), week.ID, week.Cells); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to save week", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cellResponse(cell))
}

// CellBlock toggles the block flag on an allow_block row; blocking a cell
// clears any staff in it.
func CellBlock(c *gin.Context) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return
	}

	monday, ok := parseWeekStart(c)
	if !ok {
		return
	}

	week, err := db.GetWeek(c.Request.Context(), monday)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Week not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to load week", "details": err.Error()})
		return
	}

	var req CellBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request body."})
		return
	}
	req.SlotKey = strings.TrimSpace(req.SlotKey)
	req.DayKey = strings.TrimSpace(req.DayKey)

	slot, err := db.GetSlotByKey(c.Request.Context(), req.SlotKey)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Slot not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to load slot", "details": err.Error()})
		return
	}

	if !slot.AllowBlock {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "This slot cannot be blocked."})
		return
	}
	if !models.ValidDayKey(req.DayKey) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid day."})
		return
	}

	slots, err := db.ListSlots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to list slots", "details": err.Error()})
		return
	}
	week.EnsureDefaults(slots)

	cell := week.Cells.Cell(slot.Key, req.DayKey)
	cell.Blocked = !cell.Blocked
	if cell.Blocked {
		cell.Staff = []int64{}
	}

	if err := db.SaveCells(c.Request.Context(), week.ID, week.Cells); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to save week", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cellResponse(cell))
}
