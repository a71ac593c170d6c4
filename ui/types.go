// Package ui draws the star field's HUD, overlay toggles and tuning panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	PointerColor    rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 10, G: 12, B: 24, A: 220},
		PanelBorder:     rl.Color{R: 60, G: 70, B: 100, A: 255},
		SectionHeader:   rl.Color{R: 255, G: 220, B: 160, A: 255},
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		BarBg:           rl.Color{R: 30, G: 32, B: 44, A: 255},
		BarFill:         rl.Color{R: 120, G: 160, B: 230, A: 255},
		BarFillNegative: rl.Color{R: 230, G: 140, B: 90, A: 255},
		BarFillPositive: rl.Color{R: 120, G: 200, B: 230, A: 255},
		PointerColor:    rl.Color{R: 180, G: 200, B: 255, A: 90},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      80,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
