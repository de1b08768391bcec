package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/squash/components"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a bar filled to value/max with text to its right. Bars
// past 80% of full scale use the high fill color.
func (r *Renderer) DrawBar(x, y int32, label string, value, max float64, text string, width int32) int32 {
	frac := BarFraction(value, max)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 70

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	fill := r.Theme.BarFill
	if frac > 0.8 {
		fill = r.Theme.BarFillHigh
	}
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*frac), r.Theme.BarHeight, fill)
	rl.DrawText(text, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawFields draws one line per descriptor: a bar when the field has a
// full scale, plain text otherwise. values must match descs in order.
func (r *Renderer) DrawFields(x, y int32, descs []components.FieldDescriptor, values []float64, width int32) int32 {
	for i, fd := range descs {
		if i >= len(values) {
			break
		}
		text := FormatField(fd, values[i])
		if fd.Max > 0 {
			y = r.DrawBar(x, y, fd.Label, values[i], fd.Max, text, width)
		} else {
			y = r.DrawLabelValue(x, y, fd.Label, text)
		}
	}
	return y
}

// BarFraction maps value onto [0, 1] of a bar with full scale max.
func BarFraction(value, max float64) float32 {
	if max <= 0 || value <= 0 {
		return 0
	}
	if value >= max {
		return 1
	}
	return float32(value / max)
}

// FormatField renders a value with the descriptor's format.
func FormatField(fd components.FieldDescriptor, value float64) string {
	if fd.Format == "" {
		return fmt.Sprintf("%.2f", value)
	}
	return fmt.Sprintf(fd.Format, value)
}
