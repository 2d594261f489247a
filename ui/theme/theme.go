package theme

// Palette and ttk styles for the damage scanner windows. Apply activates the
// base theme and configures the semantic styles for light or dark mode.

import (
	tk "modernc.org/tk9.0"
)

// Palette holds resolved colors for one mode.
type Palette struct {
	AppBg     string
	Surface   string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

var (
	light = Palette{
		AppBg:     "#f7f9fb",
		Surface:   "#ffffff",
		Primary:   "#2563eb",
		Danger:    "#dc2626",
		Accent:    "#10b981",
		Text:      "#1e293b",
		TextMuted: "#64748b",
	}
	dark = Palette{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#10b981",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
	}
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStatusLabel   = "status.TLabel"
)

var darkMode bool

// PaletteFor returns the colors for the given mode.
func PaletteFor(isDark bool) Palette {
	if isDark {
		return dark
	}
	return light
}

// Current returns the colors of the active mode.
func Current() Palette { return PaletteFor(darkMode) }

// IsDark reports current mode.
func IsDark() bool { return darkMode }

// Apply sets the mode and (re)configures styles.
func Apply(isDark bool) {
	darkMode = isDark
	p := PaletteFor(isDark)
	_ = tk.ActivateTheme("azure light") // baseline metrics
	tk.App.Configure(tk.Background(p.AppBg))

	tk.StyleConfigure(StylePrimaryButton,
		tk.Background(p.Primary),
		tk.Foreground("white"),
		tk.Padding("4p 3p"),
		tk.Borderwidth(1),
		tk.Relief("ridge"),
	)
	tk.StyleConfigure(StyleDangerButton,
		tk.Background(p.Danger),
		tk.Foreground("white"),
		tk.Padding("4p 3p"),
		tk.Borderwidth(1),
		tk.Relief("ridge"),
	)
	tk.StyleConfigure(StyleStatusLabel,
		tk.Foreground(p.TextMuted),
		tk.Background(p.Surface),
		tk.Padding("2p 1p"),
	)
}
