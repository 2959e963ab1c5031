package theme

import "github.com/genricoloni/dailyblessing/internal/domain"

// Built-in palettes, indexed by domain.ThemeSelection.
// Callers get copies through All and Lookup.
var (
	light = domain.ThemeDefinition{
		ID:         domain.ThemeLight,
		Name:       "Pure Serenity",
		Background: "#F6F7F9",
		Text:       "#1A1A1A",
		Accent:     "#3A6EA5",
		Gradient:   []string{"#FDFCFF", "#E6ECF5"},
	}

	dark = domain.ThemeDefinition{
		ID:         domain.ThemeDark,
		Name:       "Midnight Calm",
		Background: "#0E0E0F",
		Text:       "#F5F5F5",
		Accent:     "#6A8FFF",
		Gradient:   []string{"#0F0F12", "#1A1D24"},
	}

	// colorful has no solid background; its gradient fills the screen.
	colorful = domain.ThemeDefinition{
		ID:       domain.ThemeColorful,
		Name:     "Hope & Harmony",
		Text:     "#FFFFFF",
		Accent:   "#6A5AE0",
		Gradient: []string{"#6A5AE0", "#FF6FB1", "#FFD36E"},
	}
)

// All returns the built-in themes in selection order
func All() []domain.ThemeDefinition {
	return []domain.ThemeDefinition{clone(light), clone(dark), clone(colorful)}
}

// Lookup returns the definition for sel, or the light theme for unknown selections
func Lookup(sel domain.ThemeSelection) domain.ThemeDefinition {
	switch sel {
	case domain.ThemeDark:
		return clone(dark)
	case domain.ThemeColorful:
		return clone(colorful)
	default:
		return clone(light)
	}
}

func clone(d domain.ThemeDefinition) domain.ThemeDefinition {
	d.Gradient = append([]string(nil), d.Gradient...)
	return d
}
