package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/naembfh/staff-schedule/internal/database"
	"github.com/naembfh/staff-schedule/internal/middleware"
	"github.com/naembfh/staff-schedule/internal/models"
)

func renderSlotsPage(c *gin.Context, formError string) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return
	}

	slots, err := db.ListSlots(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list slots: %v", err)
		return
	}

	data, ok := basePage(c, db)
	if !ok {
		return
	}
	data["Slots"] = slots
	data["Error"] = formError
	data["PTKey"] = models.PTSlotKey

	c.HTML(http.StatusOK, "slots.html", data)
}

// SlotsPage lists the roster rows and handles the add and update forms.
func SlotsPage(c *gin.Context) {
	if c.Request.Method == http.MethodPost && c.PostForm("add_slot") != "" {
		addSlot(c)
		return
	}
	if c.Request.Method == http.MethodPost && c.PostForm("update_slot") != "" {
		updateSlot(c)
		return
	}
	renderSlotsPage(c, "")
}

func addSlot(c *gin.Context) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return
	}

	label := strings.TrimSpace(c.PostForm("label"))
	key := strings.TrimSpace(c.PostForm("key"))
	if label == "" || key == "" {
		renderSlotsPage(c, "Label and key are required.")
		return
	}

	sortOrder, _ := strconv.Atoi(strings.TrimSpace(c.DefaultPostForm("sort_order", "0")))

	slot := models.Slot{
		Key:           key,
		Label:         label,
		SortOrder:     sortOrder,
		AllowBlock:    c.PostForm("allow_block") != "",
		BGType:        strings.TrimSpace(c.DefaultPostForm("bg_type", models.BGSolid)),
		BGColor1:      strings.TrimSpace(c.DefaultPostForm("bg_color1", "#ffffff")),
		TextColor:     strings.TrimSpace(c.DefaultPostForm("text_color", "#111827")),
		PTDefaultTime: strings.TrimSpace(c.DefaultPostForm("pt_default_time", "7-11")),
	}
	slot.BGColor2 = strings.TrimSpace(c.DefaultPostForm("bg_color2", slot.BGColor1))

	if err := db.CreateSlot(c.Request.Context(), slot); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			renderSlotsPage(c, "Slot key must be unique.")
			return
		}
		c.String(http.StatusInternalServerError, "failed to add slot: %v", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/slots")
}

func updateSlot(c *gin.Context) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.PostForm("slot_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot ID"})
		return
	}

	slot, err := db.GetSlot(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
			return
		}
		c.String(http.StatusInternalServerError, "failed to load slot: %v", err)
		return
	}

	if v := strings.TrimSpace(c.PostForm("label")); v != "" {
		slot.Label = v
	}
	if v := strings.TrimSpace(c.PostForm("sort_order")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			slot.SortOrder = n
		}
	}
	slot.AllowBlock = c.PostForm("allow_block") != ""

	if v := strings.TrimSpace(c.PostForm("bg_type")); v != "" {
		slot.BGType = v
	}
	if v := strings.TrimSpace(c.PostForm("bg_color1")); v != "" {
		slot.BGColor1 = v
	}
	if v := strings.TrimSpace(c.PostForm("bg_color2")); v != "" {
		slot.BGColor2 = v
	}
	if v := strings.TrimSpace(c.PostForm("text_color")); v != "" {
		slot.TextColor = v
	}

	// The default time window only means something on the PT row.
	if slot.Key == models.PTSlotKey {
		if v := strings.TrimSpace(c.PostForm("pt_default_time")); v != "" {
			slot.PTDefaultTime = v
		}
	}

	if err := db.UpdateSlot(c.Request.Context(), *slot); err != nil {
		c.String(http.StatusInternalServerError, "failed to update slot: %v", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/slots")
}

// SlotDelete removes a roster row.
func SlotDelete(c *gin.Context) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot ID"})
		return
	}

	if err := db.DeleteSlot(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
			return
		}
		c.String(http.StatusInternalServerError, "failed to delete slot: %v", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/slots")
}
