package turnplayer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/hexengine/move"
)

var ErrUnrecognizedMove = errors.New("unrecognized move")

// ParseMove reads a move for the side on turn. Accepted forms are "h6",
// "5,7" and "5 7".
func (p *BaseTurnPlayer) ParseMove(fields []string) (move.Move, error) {
	var coords string
	switch len(fields) {
	case 1:
		coords = fields[0]
	case 2:
		coords = fields[0] + "," + fields[1]
	default:
		return move.Move{}, fmt.Errorf("%w: %s", ErrUnrecognizedMove, strings.Join(fields, " "))
	}
	return p.NewPlacementMove(p.PlayerOnTurn(), coords)
}
