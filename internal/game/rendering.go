package game

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mitchelldurbincs/tanks/internal/game/core"
)

// Renderer turns a field into text
type Renderer interface {
	Render(f *Field) string
}

// PlainRenderer renders exactly Field.String
type PlainRenderer struct{}

func (PlainRenderer) Render(f *Field) string { return f.String() }

// ANSI palette indices, one per tank in order
var tankColors = []lipgloss.Color{"1", "4", "2", "3", "5", "6"}

// ColorRenderer draws each tank in its own color and dims empty cells.
// Without a color-capable terminal lipgloss falls back to plain glyphs.
type ColorRenderer struct {
	empty  lipgloss.Style
	styles map[core.Player]lipgloss.Style
}

// NewColorRenderer assigns a color to every tank of the field
func NewColorRenderer(tanks []core.Player) *ColorRenderer {
	r := &ColorRenderer{
		empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		styles: make(map[core.Player]lipgloss.Style, len(tanks)),
	}
	for i, p := range tanks {
		r.styles[p] = lipgloss.NewStyle().Bold(true).Foreground(tankColors[i%len(tankColors)])
	}
	return r
}

// Render draws the field in the same layout as Field.String
func (r *ColorRenderer) Render(f *Field) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < f.Size(); row++ {
		for col := 0; col < f.Size(); col++ {
			cell := f.CellAt(core.NewPosition(row, col))
			occupant := cell.Occupant()
			if occupant == nil {
				sb.WriteString(r.empty.Render(EmptyGlyph))
				continue
			}
			style, ok := r.styles[occupant]
			if !ok {
				sb.WriteString(occupant.String())
				continue
			}
			sb.WriteString(style.Render(occupant.String()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
