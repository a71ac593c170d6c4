package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel lists the overlay toggles and their keys.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.RayWhite)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}
	return y
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 120, G: 200, B: 230, A: 255}
		nameColor = rl.RayWhite
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "display":
		return "Display"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

// TuningValues are the live-tunable parameters shown in the tuning panel.
type TuningValues struct {
	WindGain       float32
	Smoothing      float32
	PointScale     float32
	TwinkleSpeed   float32
	LightIntensity float32
}

// TuningAction reports what the user did in the tuning panel this frame.
type TuningAction struct {
	Changed       bool // a slider moved
	ClearPointers bool
	ResetWind     bool
	ResetView     bool
}

type slider struct {
	label    string
	value    *float32
	min, max float32
	format   string
}

// TuningPanel is a raygui panel of sliders and buttons.
type TuningPanel struct {
	renderer *Renderer
	x, y     float32
	width    float32
	visible  bool
}

// NewTuningPanel creates a hidden tuning panel.
func NewTuningPanel(x, y, width float32) *TuningPanel {
	return &TuningPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (t *TuningPanel) SetPosition(x, y float32) {
	t.x = x
	t.y = y
}

// Toggle switches panel visibility.
func (t *TuningPanel) Toggle() bool {
	t.visible = !t.visible
	return t.visible
}

// Contains reports whether a screen point is over the visible panel, so
// pointer input there can be kept out of the star field.
func (t *TuningPanel) Contains(sx, sy float32) bool {
	if !t.visible {
		return false
	}
	return sx >= t.x && sx <= t.x+t.width && sy >= t.y && sy <= t.y+t.height()
}

func (t *TuningPanel) height() float32 {
	return 5*35 + 30 + 40 + 2*float32(t.renderer.Theme.Padding)
}

// Draw renders the panel, writing slider changes into v.
func (t *TuningPanel) Draw(v *TuningValues) TuningAction {
	var action TuningAction
	if !t.visible {
		return action
	}

	pad := float32(t.renderer.Theme.Padding)
	t.renderer.DrawPanel(int32(t.x), int32(t.y), int32(t.width), int32(t.height()))

	x := t.x + pad
	y := t.y + pad
	rl.DrawText("Tuning", int32(x), int32(y), 16, rl.RayWhite)
	y += 30

	sliders := []slider{
		{"Wind gain", &v.WindGain, 0, 40, "%.1f"},
		{"Smoothing", &v.Smoothing, 0.005, 0.5, "%.3f"},
		{"Point scale", &v.PointScale, 0.01, 0.3, "%.3f"},
		{"Twinkle speed", &v.TwinkleSpeed, 0, 8, "%.2f"},
		{"Light", &v.LightIntensity, 0, 2, "%.2f"},
	}
	barWidth := t.width - 2*pad - 60
	for _, s := range sliders {
		rl.DrawText(s.label, int32(x), int32(y), 12, t.renderer.Theme.LabelColor)
		next := gui.SliderBar(
			rl.Rectangle{X: x, Y: y + 14, Width: barWidth, Height: 14},
			"", "",
			*s.value, s.min, s.max,
		)
		rl.DrawText(fmt.Sprintf(s.format, *s.value), int32(x+barWidth+8), int32(y+14), 12, t.renderer.Theme.ValueColor)
		if next != *s.value {
			*s.value = next
			action.Changed = true
		}
		y += 35
	}

	btnWidth := (t.width - 2*pad - 20) / 3
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: btnWidth, Height: 26}, "Clear pointers") {
		action.ClearPointers = true
	}
	if gui.Button(rl.Rectangle{X: x + btnWidth + 10, Y: y, Width: btnWidth, Height: 26}, "Calm wind") {
		action.ResetWind = true
	}
	if gui.Button(rl.Rectangle{X: x + 2*(btnWidth+10), Y: y, Width: btnWidth, Height: 26}, "Reset view") {
		action.ResetView = true
	}
	return action
}
