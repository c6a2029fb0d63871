package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/naembfh/staff-schedule/internal/middleware"
	"github.com/naembfh/staff-schedule/internal/models"
)

type dayHeader struct {
	Key     string
	Label   string
	DateStr string
	Weekend bool
}

type staffChip struct {
	ID   int64
	Name string
}

type cellView struct {
	DayKey  string
	Staff   []staffChip
	Blocked bool
	PTTime  string
	Weekend bool
}

type slotRowView struct {
	Slot  models.Slot
	IsPT  bool
	Cells []cellView
}

// WeekEditor renders the drag-and-drop grid for one week, creating the week
// on first visit. POST with save_notes persists the notes field.
func WeekEditor(c *gin.Context) {
	db, ok := middleware.MustDB(c)
	if !ok {
		return
	}

	monday, ok := parseWeekStart(c)
	if !ok {
		return
	}

	week, err := db.GetOrCreateWeek(c.Request.Context(), monday)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load week: %v", err)
		return
	}

	slots, err := db.ListSlots(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list slots: %v", err)
		return
	}

	week.EnsureDefaults(slots)
	if err := db.SaveCells(c.Request.Context(), week.ID, week.Cells); err != nil {
		c.String(http.StatusInternalServerError, "failed to save week: %v", err)
		return
	}

	if c.Request.Method == http.MethodPost && c.PostForm("save_notes") != "" {
		notes := strings.TrimSpace(c.PostForm("notes"))
		if err := db.SaveNotes(c.Request.Context(), week.ID, notes); err != nil {
			c.String(http.StatusInternalServerError, "failed to save notes: %v", err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/week/"+monday.Format(models.DateLayout))
		return
	}

	staff, err := db.ListStaff(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to list staff: %v", err)
		return
	}
	staffMap := make(map[int64]string, len(staff))
	for _, s := range staff {
		staffMap[s.ID] = s.Name
	}

	headers := make([]dayHeader, 0, len(models.Days))
	for i, day := range models.Days {
		headers = append(headers, dayHeader{
			Key:     day.Key,
			Label:   day.Label,
			DateStr: week.DateForDay(day.Key).Format("02 Jan"),
			Weekend: i >= 5,
		})
	}

	rows := make([]slotRowView, 0, len(slots))
	for _, slot := range slots {
		row := slotRowView{Slot: slot, IsPT: slot.Key == models.PTSlotKey}
		for i, day := range models.Days {
			cell := week.Cells.Cell(slot.Key, day.Key)
			view := cellView{
				DayKey:  day.Key,
				Blocked: cell.Blocked,
				PTTime:  cell.PTTime,
				Weekend: i >= 5,
			}
			for _, id := range cell.Staff {
				if name, ok := staffMap[id]; ok {
					view.Staff = append(view.Staff, staffChip{ID: id, Name: name})
				}
			}
			row.Cells = append(row.Cells, view)
		}
		rows = append(rows, row)
	}

	data, ok := basePage(c, db)
	if !ok {
		return
	}
	data["WeekStart"] = monday.Format(models.DateLayout)
	data["WeekRange"] = week.WeekStart.Format("02 Jan 2006") + " – " + week.WeekEnd().Format("02 Jan 2006")
	data["Notes"] = week.Notes
	data["DayHeaders"] = headers
	data["Rows"] = rows
	data["Staff"] = staff
	data["PrevWeek"] = monday.AddDate(0, 0, -7).Format(models.DateLayout)
	data["NextWeek"] = monday.AddDate(0, 0, 7).Format(models.DateLayout)

	c.HTML(http.StatusOK, "week_editor.html", data)
}
