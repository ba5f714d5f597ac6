package board

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the playable board as a skewed hex diagram, with
// stones labelled by their absolute side.
func (g *Grid) ToDisplayText(me Side) string {
	return g.render(func(c Coord) string {
		switch g.At(c) {
		case Mine:
			return me.String()
		case Opp:
			return me.Other().String()
		}
		return "."
	})
}

// HeatDisplayText renders per-cell values (e.g. attention probabilities)
// scaled to a single digit, with stones shown as in ToDisplayText.
func (g *Grid) HeatDisplayText(me Side, heat []float64) string {
	hi := 0.0
	for _, h := range heat {
		if h > hi {
			hi = h
		}
	}
	return g.render(func(c Coord) string {
		switch g.At(c) {
		case Mine:
			return me.String()
		case Opp:
			return me.Other().String()
		}
		h := heat[c.Index()]
		if hi <= 0 || h <= 0 {
			return "."
		}
		return fmt.Sprintf("%d", int(9*h/hi))
	})
}

func (g *Grid) render(label func(Coord) string) string {
	var sb strings.Builder
	sb.WriteString("    ")
	for c := 0; c < BoardSize; c++ {
		sb.WriteString(fmt.Sprintf("%c ", 'a'+c))
	}
	sb.WriteString("\n")
	for r := 1; r <= BoardSize; r++ {
		sb.WriteString(strings.Repeat(" ", r-1))
		sb.WriteString(fmt.Sprintf("%2d  ", r))
		for c := 1; c <= BoardSize; c++ {
			sb.WriteString(label(Coord{r, c}))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return "\n" + sb.String()
}
