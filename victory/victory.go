// Package victory detects positions that are already won, counting bridges
// and edge templates as connected.
package victory

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/structures"
)

// WinScore is returned for a position the engine has won. Its negation is
// returned for a position the opponent has won.
const WinScore = 40000.0

const (
	nodeTop = board.NumCells + iota
	nodeBottom
	nodeLeft
	nodeRight
	numNodes
)

type disjointSet struct {
	parent [numNodes]int
	rank   [numNodes]uint8
}

func newDisjointSet() *disjointSet {
	d := &disjointSet{}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

func (d *disjointSet) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

func (d *disjointSet) union(x, y int) {
	rx, ry := d.find(x), d.find(y)
	if rx == ry {
		return
	}
	switch {
	case d.rank[rx] < d.rank[ry]:
		d.parent[rx] = ry
	case d.rank[rx] > d.rank[ry]:
		d.parent[ry] = rx
	default:
		d.parent[ry] = rx
		d.rank[rx]++
	}
}

// Detector answers whether either side has connected its edges. Once
// deactivated it stops giving verdicts for the rest of the game.
type Detector struct {
	disabled bool
}

func (d *Detector) Deactivate() {
	if !d.disabled {
		log.Debug().Msg("win-detector-deactivated")
	}
	d.disabled = true
}

func (d *Detector) Active() bool {
	return !d.disabled
}

// Check returns WinScore if the engine's side is connected, -WinScore if the
// opponent is, and 0 otherwise. ok is false once the detector is deactivated.
func (d *Detector) Check(g *board.Grid, ix *structures.Index, me board.Side) (score float64, ok bool) {
	if d.disabled {
		return 0, false
	}
	if Connected(g, ix, me, board.Mine) {
		return WinScore, true
	}
	if Connected(g, ix, me, board.Opp) {
		return -WinScore, true
	}
	return 0, true
}

// Connected reports whether owner joins its two edges through stones,
// bridges and edge templates.
func Connected(g *board.Grid, ix *structures.Index, me board.Side, owner board.Cell) bool {
	vertical := board.Absolute(me, owner).Vertical()
	near, far := nodeLeft, nodeRight
	if vertical {
		near, far = nodeTop, nodeBottom
	}
	ds := newDisjointSet()

	for i := range g {
		c := board.CoordFromIndex(i)
		if g.At(c) != owner {
			continue
		}
		for _, d := range board.Directions {
			n := c.Add(d)
			if n.InBounds() && g.At(n) == owner {
				ds.union(i, n.Index())
			}
		}
		line, last := c.Col, board.Dim-1
		if vertical {
			line = c.Row
		}
		switch {
		case line <= 1:
			ds.union(i, near)
		case line >= last-1:
			ds.union(i, far)
		}
	}

	links := ix.Links(owner)
	for _, k := range links.Keys() {
		cells, _ := links.Cells(k)
		clique(ds, k.Anchors(), cells)
	}
	templates := ix.Templates(owner)
	for _, k := range templates.Keys() {
		anchors := k.Anchors()
		if len(anchors) > 1 {
			cells, _ := templates.Cells(k)
			clique(ds, anchors, cells)
			continue
		}
		a := anchors[0]
		line := a.Col
		if vertical {
			line = a.Row
		}
		if line < board.Dim/2 {
			ds.union(a.Index(), near)
		} else {
			ds.union(a.Index(), far)
		}
	}
	return ds.find(near) == ds.find(far)
}

func clique(ds *disjointSet, anchors, cells []board.Coord) {
	root := anchors[0].Index()
	for _, a := range anchors[1:] {
		ds.union(root, a.Index())
	}
	for _, c := range cells {
		ds.union(root, c.Index())
	}
}
