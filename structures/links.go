package structures

import "github.com/domino14/hexengine/board"

type bridgeDir struct {
	partner board.Offset
	links   [2]board.Offset
}

// The six bridge directions: the partner two hex-steps away and the two
// cells shared by both stones.
var bridgeDirs = [6]bridgeDir{
	{board.Offset{DRow: -2, DCol: 1}, [2]board.Offset{{DRow: -1, DCol: 0}, {DRow: -1, DCol: 1}}},
	{board.Offset{DRow: 2, DCol: -1}, [2]board.Offset{{DRow: 1, DCol: 0}, {DRow: 1, DCol: -1}}},
	{board.Offset{DRow: -1, DCol: 2}, [2]board.Offset{{DRow: -1, DCol: 1}, {DRow: 0, DCol: 1}}},
	{board.Offset{DRow: -1, DCol: -1}, [2]board.Offset{{DRow: -1, DCol: 0}, {DRow: 0, DCol: -1}}},
	{board.Offset{DRow: 1, DCol: 1}, [2]board.Offset{{DRow: 1, DCol: 0}, {DRow: 0, DCol: 1}}},
	{board.Offset{DRow: 1, DCol: -2}, [2]board.Offset{{DRow: 1, DCol: -1}, {DRow: 0, DCol: -1}}},
}

// findBridges calls fn once per bridge on the grid. The whole padded grid is
// scanned, so a stone bridged to its own edge's sentinel ring is found too.
func findBridges(g *board.Grid, fn func(a, b board.Coord, owner board.Cell, links []board.Coord)) {
	seen := make(map[Key]struct{})
	for i := range g {
		a := board.CoordFromIndex(i)
		v := g.At(a)
		if v == board.Empty {
			continue
		}
		for _, d := range bridgeDirs {
			b := a.Add(d.partner)
			l1, l2 := a.Add(d.links[0]), a.Add(d.links[1])
			if !b.InBounds() || !l1.InBounds() || !l2.InBounds() {
				continue
			}
			if g.At(b) != v || g.At(l1) != board.Empty || g.At(l2) != board.Empty {
				continue
			}
			k := BridgeKey(a, b)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			fn(a, b, v, []board.Coord{l1, l2})
		}
	}
}
