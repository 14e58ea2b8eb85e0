// Package theme provides the map palette and the centralized lipgloss styles
// for the terminal browser. All colors live in one place.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette holds the seven color values the map engine consumes. Absent
// values must be filled via Normalize before they reach the engine.
type Palette struct {
	Surface       string `yaml:"surface" json:"surface"`
	SurfaceBorder string `yaml:"surface_border" json:"surfaceBorder"`
	NodeText      string `yaml:"node_text" json:"nodeText"`
	TooltipBg     string `yaml:"tooltip_bg" json:"tooltipBg"`
	TooltipText   string `yaml:"tooltip_text" json:"tooltipText"`
	LinkText      string `yaml:"link_text" json:"linkText"`
	ErrorText     string `yaml:"error_text" json:"errorText"`
}

// Dark is the default palette.
func Dark() Palette {
	return Palette{
		Surface:       "#111827",
		SurfaceBorder: "rgba(148, 163, 184, 0.25)",
		NodeText:      "#f8fafc",
		TooltipBg:     "#020617",
		TooltipText:   "#f8fafc",
		LinkText:      "#60a5fa",
		ErrorText:     "#fca5a5",
	}
}

// Light is the palette for light backgrounds.
func Light() Palette {
	return Palette{
		Surface:       "#f8fafc",
		SurfaceBorder: "rgba(71, 85, 105, 0.35)",
		NodeText:      "#0f172a",
		TooltipBg:     "#e2e8f0",
		TooltipText:   "#0f172a",
		LinkText:      "#2563eb",
		ErrorText:     "#b91c1c",
	}
}

// Normalize fills every absent value from the fallback palette.
func (p Palette) Normalize(fallback Palette) Palette {
	pick := func(v, fb string) string {
		if v == "" {
			return fb
		}
		return v
	}
	return Palette{
		Surface:       pick(p.Surface, fallback.Surface),
		SurfaceBorder: pick(p.SurfaceBorder, fallback.SurfaceBorder),
		NodeText:      pick(p.NodeText, fallback.NodeText),
		TooltipBg:     pick(p.TooltipBg, fallback.TooltipBg),
		TooltipText:   pick(p.TooltipText, fallback.TooltipText),
		LinkText:      pick(p.LinkText, fallback.LinkText),
		ErrorText:     pick(p.ErrorText, fallback.ErrorText),
	}
}

// Mode selects a palette family.
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
	ModeAuto  Mode = "auto"
)

// Resolve picks the palette for a mode, probing the terminal background when
// set to auto.
func Resolve(mode Mode) Palette {
	switch mode {
	case ModeLight:
		return Light()
	case ModeDark:
		return Dark()
	default:
		if termenv.HasDarkBackground() {
			return Dark()
		}
		return Light()
	}
}

// Design tokens for the terminal browser.
var (
	Accent        = lipgloss.Color("#60A5FA")
	AccentAlt     = lipgloss.Color("#38BDF8")
	TextPrimary   = lipgloss.Color("#F8FAFC")
	TextSecondary = lipgloss.Color("#CBD5E1")
	TextMuted     = lipgloss.Color("#94A3B8")
	Danger        = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#FCA5A5"}
	Border        = lipgloss.Color("#3A3A3A")
)

// Title styles the page heading of the browser.
var Title = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Background(Accent).
	Padding(0, 1)

// CategoryRow styles a top-level accordion row.
var CategoryRow = lipgloss.NewStyle().Bold(true)

// GroupRow styles a group row inside an expanded category.
var GroupRow = lipgloss.NewStyle().Foreground(TextSecondary)

// ServiceRow styles a service row.
var ServiceRow = lipgloss.NewStyle().Foreground(TextSecondary)

// CursorRow highlights the row under the cursor.
var CursorRow = lipgloss.NewStyle().Foreground(TextPrimary).Background(lipgloss.Color("#1E293B")).Bold(true)

// SearchHit highlights rows matched by the live query.
var SearchHit = lipgloss.NewStyle().Foreground(AccentAlt).Bold(true)

// Muted styles hints and secondary copy.
var Muted = lipgloss.NewStyle().Foreground(TextMuted)

// DetailsPane frames the details panel next to the list.
var DetailsPane = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)

// Link styles clickable hrefs in the details panel.
var Link = lipgloss.NewStyle().Foreground(Accent).Underline(true)

// Tag styles a resource tag chip.
var Tag = lipgloss.NewStyle().Foreground(TextMuted).Background(lipgloss.Color("#1E293B")).Padding(0, 1)

// ErrorText styles load failures in the browser.
var ErrorText = lipgloss.NewStyle().Foreground(Danger)
