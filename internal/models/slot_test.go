package models

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotStyleBG(t *testing.T) {
	solid := Slot{BGType: BGSolid, BGColor1: "#fde68a", TextColor: "#111827"}
	assert.Equal(t,
		template.CSS("background-color: #fde68a; color: #111827;"),
		solid.StyleBG())

	grad := Slot{BGType: BGGradient, BGColor1: "#0f172a", BGColor2: "#2563eb", TextColor: "#ffffff"}
	assert.Equal(t,
		template.CSS("background-image: linear-gradient(90deg, #0f172a, #2563eb); color: #ffffff;"),
		grad.StyleBG())
}
