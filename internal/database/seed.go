package database

import (
	"context"
	"fmt"
	"os"

	"github.com/naembfh/staff-schedule/internal/models"
	"gopkg.in/yaml.v3"
)

// seedSlot mirrors the slot columns for seeding; also the YAML shape of the
// optional SEED_FILE.
type seedSlot struct {
	Key           string `yaml:"key"`
	Label         string `yaml:"label"`
	SortOrder     int    `yaml:"sort_order"`
	AllowBlock    bool   `yaml:"allow_block"`
	BGType        string `yaml:"bg_type"`
	BGColor1      string `yaml:"bg_color1"`
	BGColor2      string `yaml:"bg_color2"`
	TextColor     string `yaml:"text_color"`
	PTDefaultTime string `yaml:"pt_default_time"`
}

type seedFile struct {
	Slots []seedSlot `yaml:"slots"`
	Theme *struct {
		HeaderBGType    string `yaml:"header_bg_type"`
		HeaderBGColor1  string `yaml:"header_bg_color1"`
		HeaderBGColor2  string `yaml:"header_bg_color2"`
		HeaderTextColor string `yaml:"header_text_color"`
		TableHeaderBG   string `yaml:"table_header_bg"`
		TableHeaderText string `yaml:"table_header_text"`
		WeekendBG       string `yaml:"weekend_bg"`
		BlockedBG       string `yaml:"blocked_bg"`
	} `yaml:"theme"`
}

var defaultSlots = []seedSlot{
	// exclusive rows
	{Key: "off_day", Label: "Off Day", SortOrder: 10, BGType: models.BGSolid, BGColor1: "#fde68a", BGColor2: "#fde68a", TextColor: "#111827", PTDefaultTime: "7-11"},
	{Key: "pt", Label: "PT", SortOrder: 20, AllowBlock: true, BGType: models.BGSolid, BGColor1: "#fde68a", BGColor2: "#fde68a", TextColor: "#111827", PTDefaultTime: "7-11"},
	{Key: "ph_al", Label: "PH*/AL@", SortOrder: 30, BGType: models.BGSolid, BGColor1: "#bae6fd", BGColor2: "#bae6fd", TextColor: "#111827", PTDefaultTime: "7-11"},

	// time rows
	{Key: "10am", Label: "10am", SortOrder: 40, BGType: models.BGSolid, BGColor1: "#ffffff", BGColor2: "#ffffff", TextColor: "#111827", PTDefaultTime: "7-11"},
	{Key: "11am", Label: "11am", SortOrder: 50, BGType: models.BGSolid, BGColor1: "#ffffff", BGColor2: "#ffffff", TextColor: "#111827", PTDefaultTime: "7-11"},
	{Key: "12pm", Label: "12pm", SortOrder: 60, BGType: models.BGSolid, BGColor1: "#ffffff", BGColor2: "#ffffff", TextColor: "#111827", PTDefaultTime: "7-11"},
	{Key: "1pm", Label: "1pm", SortOrder: 70, BGType: models.BGSolid, BGColor1: "#ffffff", BGColor2: "#ffffff", TextColor: "#111827", PTDefaultTime: "7-11"},
	{Key: "2pm", Label: "2pm", SortOrder: 80, BGType: models.BGSolid, BGColor1: "#ffffff", BGColor2: "#ffffff", TextColor: "#111827", PTDefaultTime: "7-11"},
	{Key: "3pm", Label: "3pm", SortOrder: 90, BGType: models.BGSolid, BGColor1: "#ffffff", BGColor2: "#ffffff", TextColor: "#111827", PTDefaultTime: "7-11"},
	{Key: "4pm", Label: "4pm", SortOrder: 100, BGType: models.BGSolid, BGColor1: "#ffffff", BGColor2: "#ffffff", TextColor: "#111827", PTDefaultTime: "7-11"},
}

// Seed installs the default slot rows and theme when the tables are empty.
// A YAML seed file, when given, replaces the built-in slot/theme defaults.
func (db *DB) Seed(ctx context.Context, seedPath string) error {
	slots := defaultSlots
	theme := models.DefaultTheme()

	if seedPath != "" {
		raw, err := os.ReadFile(seedPath)
		if err != nil {
			return fmt.Errorf("read seed file %q: %w", seedPath, err)
		}
		var sf seedFile
		if err := yaml.Unmarshal(raw, &sf); err != nil {
			return fmt.Errorf("parse seed file %q: %w", seedPath, err)
		}
		if len(sf.Slots) > 0 {
			slots = sf.Slots
		}
		if sf.Theme != nil {
			theme = models.Theme{
				HeaderBGType:    orDefault(sf.Theme.HeaderBGType, theme.HeaderBGType),
				HeaderBGColor1:  orDefault(sf.Theme.HeaderBGColor1, theme.HeaderBGColor1),
				HeaderBGColor2:  orDefault(sf.Theme.HeaderBGColor2, theme.HeaderBGColor2),
				HeaderTextColor: orDefault(sf.Theme.HeaderTextColor, theme.HeaderTextColor),
				TableHeaderBG:   orDefault(sf.Theme.TableHeaderBG, theme.TableHeaderBG),
				TableHeaderText: orDefault(sf.Theme.TableHeaderText, theme.TableHeaderText),
				WeekendBG:       orDefault(sf.Theme.WeekendBG, theme.WeekendBG),
				BlockedBG:       orDefault(sf.Theme.BlockedBG, theme.BlockedBG),
			}
		}
	}

	var slotCount int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM slots").Scan(&slotCount); err != nil {
		return fmt.Errorf("count slots: %w", err)
	}
	if slotCount == 0 {
		for _, s := range slots {
			bgType := s.BGType
			if bgType == "" {
				bgType = models.BGSolid
			}
			_, err := db.ExecContext(ctx, `
				INSERT INTO slots (key, label, sort_order, allow_block, bg_type, bg_color1, bg_color2, text_color, pt_default_time)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, s.Key, s.Label, s.SortOrder, s.AllowBlock, bgType,
				orDefault(s.BGColor1, "#ffffff"), orDefault(s.BGColor2, orDefault(s.BGColor1, "#ffffff")),
				orDefault(s.TextColor, "#111827"), orDefault(s.PTDefaultTime, "7-11"))
			if err != nil {
				return fmt.Errorf("seed slot %q: %w", s.Key, err)
			}
		}
	}

	var themeCount int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM themes").Scan(&themeCount); err != nil {
		return fmt.Errorf("count themes: %w", err)
	}
	if themeCount == 0 {
		_, err := db.ExecContext(ctx, `
			INSERT INTO themes (header_bg_type, header_bg_color1, header_bg_color2, header_text_color,
				table_header_bg, table_header_text, weekend_bg, blocked_bg)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, theme.HeaderBGType, theme.HeaderBGColor1, theme.HeaderBGColor2, theme.HeaderTextColor,
			theme.TableHeaderBG, theme.TableHeaderText, theme.WeekendBG, theme.BlockedBG)
		if err != nil {
			return fmt.Errorf("seed theme: %w", err)
		}
	}

	return nil
}

func orDefault(val, def string) string {
	if val == "" {
		return def
	}
	return val
}
