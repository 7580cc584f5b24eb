package theme

import "github.com/charmbracelet/lipgloss"

// Общие для обеих тем цвета бренда.
var (
	Primary   = lipgloss.Color("#1976d2") // синий
	Accent    = lipgloss.Color("#ff4081") // розовый
	Secondary = lipgloss.Color("#424242") // серый
)

// Palette — набор цветов темы.
type Palette struct {
	Mode Mode

	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Secondary lipgloss.Color

	BgPrimary     lipgloss.Color
	BgSecondary   lipgloss.Color
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	NoteBg        lipgloss.Color
	InputBg       lipgloss.Color
}

// PaletteFor возвращает палитру режима m. Неизвестный режим — light.
func PaletteFor(m Mode) Palette {
	p := Palette{
		Mode:      m,
		Primary:   Primary,
		Accent:    Accent,
		Secondary: Secondary,
	}
	if m == Dark {
		p.BgPrimary = lipgloss.Color("#181a1b")
		p.BgSecondary = lipgloss.Color("#23272a")
		p.TextPrimary = lipgloss.Color("#ffffff")
		p.TextSecondary = lipgloss.Color("#9ca3af")
		p.NoteBg = lipgloss.Color("#23272a")
		p.InputBg = lipgloss.Color("#22254b")
		return p
	}

	p.Mode = Light
	p.BgPrimary = lipgloss.Color("#fff")
	p.BgSecondary = lipgloss.Color("#f8f9fa")
	p.TextPrimary = lipgloss.Color("#191b22")
	p.TextSecondary = lipgloss.Color("#424242")
	p.NoteBg = lipgloss.Color("#f4f6fa")
	p.InputBg = lipgloss.Color("#f4f6fa")
	return p
}

// Tokens возвращает палитру как CSS custom properties ("--primary" -> "#1976d2").
func (p Palette) Tokens() map[string]string {
	return map[string]string{
		"--primary":        string(p.Primary),
		"--accent":         string(p.Accent),
		"--secondary":      string(p.Secondary),
		"--bg-primary":     string(p.BgPrimary),
		"--bg-secondary":   string(p.BgSecondary),
		"--text-primary":   string(p.TextPrimary),
		"--text-secondary": string(p.TextSecondary),
		"--note-bg":        string(p.NoteBg),
		"--input-bg":       string(p.InputBg),
	}
}

// Styles — стили lipgloss для вывода CLI.
type Styles struct {
	Title    lipgloss.Style
	Category lipgloss.Style
	Muted    lipgloss.Style
	Body     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Badge    lipgloss.Style
}

// NewStyles строит стили CLI из палитры.
func NewStyles(p Palette) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		Category: lipgloss.NewStyle().
			Foreground(p.Accent),
		Muted: lipgloss.NewStyle().
			Foreground(p.TextSecondary),
		Body: lipgloss.NewStyle().
			Foreground(p.TextPrimary),
		Success: lipgloss.NewStyle().
			Foreground(p.Primary),
		Error: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		Badge: lipgloss.NewStyle().
			Background(p.Secondary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1),
	}
}
