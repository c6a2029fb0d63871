package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/naembfh/staff-schedule/internal/database"
	"github.com/naembfh/staff-schedule/internal/middleware"
)

func renderStaffPage(c *gin.Context, formError string) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return
	}

	staff, err := db.ListStaff(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list staff: %v", err)
		return
	}

	data, ok := basePage(c, db)
	if !ok {
		return
	}
	data["Staff"] = staff
	data["Error"] = formError

	c.HTML(http.StatusOK, "staff.html", data)
}

// StaffPage lists staff and handles the add-staff form.
func StaffPage(c *gin.Context) {
	if c.Request.Method == http.MethodPost && c.PostForm("add_staff") != "" {
		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			renderStaffPage(c, "Name is required.")
			return
		}

		db, ok := middleware.MustDB(c)
		if !ok {
			return
		}
		if _, err := db.CreateStaff(c.Request.Context(), name); err != nil {
			if errors.Is(err, database.ErrDuplicateName) {
				renderStaffPage(c, "This name already exists.")
				return
			}
			c.String(http.StatusInternalServerError, "failed to add staff: %v", err)
			return
		}

		c.Redirect(http.StatusSeeOther, "/staff")
		return
	}

	renderStaffPage(c, "")
}

// StaffDelete removes a staff member and scrubs them from every week.
func StaffDelete(c *gin.Context) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	if err := db.DeleteStaff(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
			return
		}
		c.String(http.StatusInternalServerError, "failed to delete staff: %v", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/staff")
}
