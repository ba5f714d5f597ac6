package turnplayer

import (
	"github.com/domino14/hexengine/ai/player"
	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/game"
)

// AITurnPlayer picks moves for one side of one game. It must be shown every
// position in order, or be synced when joining mid-game.
type AITurnPlayer interface {
	Side() board.Side
	ComputeMove(st game.State) player.Result
	Sync(st game.State)
}

var _ AITurnPlayer = (*player.HexPlayer)(nil)
