// Package theme holds the dashboard color themes. Every color in the TUI is
// looked up through Active so switching themes restyles everything at once.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps color roles to concrete colors.
type Theme struct {
	Name          string
	Description   string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Highlighted surface (active tab, selected row)
	SurfaceBright lipgloss.Color // Extra bright surface for emphasis
	Border        lipgloss.Color // Subtle borders
	BorderBright  lipgloss.Color // Prominent borders (cards, focus)
	BorderAccent  lipgloss.Color // Accent-colored borders for focus states
	TextDim       lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted     lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary   lipgloss.Color // Primary content text
	Accent        lipgloss.Color // Primary accent (links, active states)
	AccentBright  lipgloss.Color // Brighter accent for emphasis
	AccentDim     lipgloss.Color // Dimmed accent for backgrounds
	Green         lipgloss.Color
	GreenBright   lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	BlueBright    lipgloss.Color
	Yellow        lipgloss.Color
	Magenta       lipgloss.Color
	Cyan          lipgloss.Color
}

// Series returns the colors used for ranked series such as locations, in
// rank order.
func (t Theme) Series() []lipgloss.Color {
	return []lipgloss.Color{t.Accent, t.Blue, t.Magenta, t.Yellow, t.Orange, t.Green, t.Red}
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default.
var FlexokiDark = Theme{
	Name:          "flexoki-dark",
	Description:   "Warm paper-and-ink dark palette (default)",
	Background:    lipgloss.Color("#100F0F"),
	Surface:       lipgloss.Color("#1C1B1A"),
	SurfaceHover:  lipgloss.Color("#282726"),
	SurfaceBright: lipgloss.Color("#343331"),
	Border:        lipgloss.Color("#403E3C"),
	BorderBright:  lipgloss.Color("#575653"),
	BorderAccent:  lipgloss.Color("#3AA99F"),
	TextDim:       lipgloss.Color("#575653"),
	TextMuted:     lipgloss.Color("#878580"),
	TextPrimary:   lipgloss.Color("#FFFCF0"),
	Accent:        lipgloss.Color("#3AA99F"),
	AccentBright:  lipgloss.Color("#5BC8BE"),
	AccentDim:     lipgloss.Color("#1A3533"),
	Green:         lipgloss.Color("#879A39"),
	GreenBright:   lipgloss.Color("#A3B859"),
	Orange:        lipgloss.Color("#DA702C"),
	Red:           lipgloss.Color("#D14D41"),
	Blue:          lipgloss.Color("#4385BE"),
	BlueBright:    lipgloss.Color("#6BA3D6"),
	Yellow:        lipgloss.Color("#D0A215"),
	Magenta:       lipgloss.Color("#CE5D97"),
	Cyan:          lipgloss.Color("#24837B"),
}

// PennDark is built around the university's navy and red.
var PennDark = Theme{
	Name:          "penn-dark",
	Description:   "Navy surfaces with red and gold accents",
	Background:    lipgloss.Color("#000F2E"),
	Surface:       lipgloss.Color("#0A1B3F"),
	SurfaceHover:  lipgloss.Color("#142A57"),
	SurfaceBright: lipgloss.Color("#1E3A6E"),
	Border:        lipgloss.Color("#2A4780"),
	BorderBright:  lipgloss.Color("#4A66A0"),
	BorderAccent:  lipgloss.Color("#C8102E"),
	TextDim:       lipgloss.Color("#4F6590"),
	TextMuted:     lipgloss.Color("#9AAACB"),
	TextPrimary:   lipgloss.Color("#EEF2FA"),
	Accent:        lipgloss.Color("#E0475B"),
	AccentBright:  lipgloss.Color("#FF7A8A"),
	AccentDim:     lipgloss.Color("#3A1020"),
	Green:         lipgloss.Color("#5FB37C"),
	GreenBright:   lipgloss.Color("#86D49F"),
	Orange:        lipgloss.Color("#F29A4A"),
	Red:           lipgloss.Color("#C8102E"),
	Blue:          lipgloss.Color("#5B8DEF"),
	BlueBright:    lipgloss.Color("#8DB0F5"),
	Yellow:        lipgloss.Color("#F2C14E"),
	Magenta:       lipgloss.Color("#C77DDB"),
	Cyan:          lipgloss.Color("#5CC8D6"),
}

var TokyoNight = Theme{
	Name:          "tokyo-night",
	Description:   "Cool blues and violets",
	Background:    lipgloss.Color("#1A1B26"),
	Surface:       lipgloss.Color("#24283B"),
	SurfaceHover:  lipgloss.Color("#343A52"),
	SurfaceBright: lipgloss.Color("#414868"),
	Border:        lipgloss.Color("#565F89"),
	BorderBright:  lipgloss.Color("#7982A9"),
	BorderAccent:  lipgloss.Color("#7AA2F7"),
	TextDim:       lipgloss.Color("#565F89"),
	TextMuted:     lipgloss.Color("#A9B1D6"),
	TextPrimary:   lipgloss.Color("#C0CAF5"),
	Accent:        lipgloss.Color("#7AA2F7"),
	AccentBright:  lipgloss.Color("#A9C1FF"),
	AccentDim:     lipgloss.Color("#252B3F"),
	Green:         lipgloss.Color("#9ECE6A"),
	GreenBright:   lipgloss.Color("#B9E87A"),
	Orange:        lipgloss.Color("#FF9E64"),
	Red:           lipgloss.Color("#F7768E"),
	Blue:          lipgloss.Color("#7AA2F7"),
	BlueBright:    lipgloss.Color("#A9C1FF"),
	Yellow:        lipgloss.Color("#E0AF68"),
	Magenta:       lipgloss.Color("#BB9AF7"),
	Cyan:          lipgloss.Color("#7DCFFF"),
}

// Terminal sticks to ANSI indexes so it follows the user's terminal scheme.
var Terminal = Theme{
	Name:          "terminal",
	Description:   "The terminal's own 16 ANSI colors",
	Background:    lipgloss.Color("0"),
	Surface:       lipgloss.Color("0"),
	SurfaceHover:  lipgloss.Color("8"),
	SurfaceBright: lipgloss.Color("8"),
	Border:        lipgloss.Color("8"),
	BorderBright:  lipgloss.Color("7"),
	BorderAccent:  lipgloss.Color("6"),
	TextDim:       lipgloss.Color("8"),
	TextMuted:     lipgloss.Color("7"),
	TextPrimary:   lipgloss.Color("15"),
	Accent:        lipgloss.Color("6"),
	AccentBright:  lipgloss.Color("14"),
	AccentDim:     lipgloss.Color("0"),
	Green:         lipgloss.Color("2"),
	GreenBright:   lipgloss.Color("10"),
	Orange:        lipgloss.Color("3"),
	Red:           lipgloss.Color("1"),
	Blue:          lipgloss.Color("4"),
	BlueBright:    lipgloss.Color("12"),
	Yellow:        lipgloss.Color("3"),
	Magenta:       lipgloss.Color("5"),
	Cyan:          lipgloss.Color("6"),
}

// All lists the themes in the order settings cycle through them.
var All = []Theme{FlexokiDark, PennDark, TokyoNight, Terminal}

// ByName returns the named theme, falling back to FlexokiDark.
func ByName(name string) Theme {
	if i := index(name); i >= 0 {
		return All[i]
	}
	return FlexokiDark
}

// Next returns the theme after name, wrapping around. Unknown names start over.
func Next(name string) Theme {
	return All[(index(name)+1)%len(All)]
}

func index(name string) int {
	for i, t := range All {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// SetActive switches the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
