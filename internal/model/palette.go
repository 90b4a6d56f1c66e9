package model

import "slices"

// Palette is the fixed set of task colors offered by the forms.
var Palette = []string{
	"#007aff", // blue
	"#ff9500", // orange
	"#34c759", // green
	"#ff3b30", // red
	"#af52de", // purple
	"#ff2d55", // pink
}

// paletteNames maps palette colors to the labels shown in the color picker.
var paletteNames = map[string]string{
	"#007aff": "Blue",
	"#ff9500": "Orange",
	"#34c759": "Green",
	"#ff3b30": "Red",
	"#af52de": "Purple",
	"#ff2d55": "Pink",
}

// DefaultColor is the preselected palette entry.
func DefaultColor() string {
	return Palette[0]
}

// ColorName returns a human label for a palette color, or the raw value.
func ColorName(color string) string {
	if name, ok := paletteNames[color]; ok {
		return name
	}
	return color
}

// InPalette reports whether color is one of the Palette values.
func InPalette(color string) bool {
	return slices.Contains(Palette, color)
}
