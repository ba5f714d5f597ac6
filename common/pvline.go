package common

import (
	"fmt"
	"strings"

	"github.com/domino14/hexengine/move"
)

// Credit: MIT-licensed https://github.com/algerbrex/blunder/blob/main/engine/search.go
type PVLine struct {
	Moves []move.Move
	score float64
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Moves = pvLine.Moves[:0]
	pvLine.score = 0
}

// Update the principal variation line with a new best move,
// and a new line of best play after the best move.
func (pvLine *PVLine) Update(m move.Move, newPVLine PVLine, score float64) {
	pvLine.Moves = append(pvLine.Moves[:0], m)
	pvLine.Moves = append(pvLine.Moves, newPVLine.Moves...)
	pvLine.score = score
}

func (pvLine PVLine) Score() float64 {
	return pvLine.score
}

// Get the best move from the principal variation line.
func (pvLine PVLine) GetPVMove() (move.Move, bool) {
	if len(pvLine.Moves) == 0 {
		return move.Move{}, false
	}
	return pvLine.Moves[0], true
}

// Convert the principal variation line to a string.
func (pvLine PVLine) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PV; val %.3f\n", pvLine.score)
	for i, m := range pvLine.Moves {
		fmt.Fprintf(&sb, "%d: %s %s\n", i+1, m.Side(), m.ShortDescription())
	}
	return sb.String()
}

func (pvLine PVLine) NLBString() string {
	// no line breaks
	var sb strings.Builder
	fmt.Fprintf(&sb, "PV; val %.3f; ", pvLine.score)
	for i, m := range pvLine.Moves {
		fmt.Fprintf(&sb, "%d: %s %s; ", i+1, m.Side(), m.ShortDescription())
	}
	return sb.String()
}
