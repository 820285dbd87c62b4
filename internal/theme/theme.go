package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title             *lipgloss.Style
	Heading           *lipgloss.Style
	SubHeading        *lipgloss.Style
	Item              *lipgloss.Style
	SelectedItem      *lipgloss.Style
	FadedItem         *lipgloss.Style
	ItemIndicator     *lipgloss.Style
	SelectedIndicator *lipgloss.Style
	Icon              *lipgloss.Style
	Placeholder       *lipgloss.Style
	ProgressFilled    *lipgloss.Style
	ProgressEmpty     *lipgloss.Style
	Scrollbar         *lipgloss.Style
	Footer            *lipgloss.Style
	JumpPrompt        *lipgloss.Style
	Application       *lipgloss.Style
	Error             *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Heading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	SubHeading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	FadedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	Icon: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	ProgressFilled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	ProgressEmpty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Scrollbar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	JumpPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Application: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// RowStyle derives the style for one menu row from its item colors. Malformed
// colors fall back to the base style.
func (s *Styles) RowStyle(base *lipgloss.Style, fg, bg string, opacity float64) lipgloss.Style {
	style := *base
	if c, ok := parseColor(fg); ok {
		if opacity < 1 {
			c = dim(c, opacity)
		}
		style = style.Foreground(lipgloss.Color(c.Hex()))
	}
	if c, ok := parseColor(bg); ok {
		style = style.Background(lipgloss.Color(c.Hex()))
	}
	return style
}

// parseColor accepts "#rrggbb" hex strings.
func parseColor(v string) (colorful.Color, bool) {
	if v == "" {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// dim scales a color toward black, approximating reduced opacity on terminals
// without alpha support.
func dim(c colorful.Color, opacity float64) colorful.Color {
	if opacity < 0 {
		opacity = 0
	}
	black := colorful.Color{}
	return black.BlendRgb(c, opacity)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
