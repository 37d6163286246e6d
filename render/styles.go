// Package render turns a formatted document view into a line/span plan a
// cell-grid backend can draw without knowing anything about ropes or
// selections.
package render

import "github.com/charmbracelet/lipgloss"

// Overlay marks a span cell as part of a selection or cursor.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlaySelection
	OverlayCursor
	OverlayActiveCursor
)

// Styles resolves highlights and overlays to concrete terminal styles.
type Styles struct {
	Selection    lipgloss.Style
	Cursor       lipgloss.Style
	ActiveCursor lipgloss.Style
	VirtualText  lipgloss.Style
	// Theme maps highlight indices to styles; out-of-range highlights
	// render unstyled.
	Theme []lipgloss.Style
}

// DefaultStyles returns a theme-less style set with visible selection and
// cursor colors.
func DefaultStyles() Styles {
	return Styles{
		Selection:    lipgloss.NewStyle().Background(lipgloss.Color("57")),
		Cursor:       lipgloss.NewStyle().Reverse(true).Faint(true),
		ActiveCursor: lipgloss.NewStyle().Reverse(true),
		VirtualText:  lipgloss.NewStyle().Faint(true),
	}
}

// Apply renders span text with its highlight and overlay styles.
func (s Styles) Apply(sp Span) string {
	style := lipgloss.NewStyle()
	if sp.Highlight >= 0 && sp.Highlight < len(s.Theme) {
		style = s.Theme[sp.Highlight]
	} else if sp.Virtual {
		style = s.VirtualText
	}
	switch sp.Overlay {
	case OverlaySelection:
		style = style.Inherit(s.Selection)
	case OverlayCursor:
		style = style.Inherit(s.Cursor)
	case OverlayActiveCursor:
		style = style.Inherit(s.ActiveCursor)
	}
	return style.Render(sp.Text)
}
