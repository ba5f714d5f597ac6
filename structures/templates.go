package structures

import (
	"github.com/domino14/hexengine/board"
	"github.com/domino14/hexengine/cache"
)

// Edge-template shapes as written for the bottom edge. Offsets are relative
// to the anchor stone and every listed cell must be empty. The depth is the
// anchor's distance in rows from the edge, counting the edge row as 1.
var baseShapes = map[int][]board.Offset{
	3: {
		{DRow: 1, DCol: -1}, {DRow: 1, DCol: 0}, {DRow: 2, DCol: -2}, {DRow: 2, DCol: -1},
		{DRow: 2, DCol: 0}, {DRow: 2, DCol: -3}, {DRow: 1, DCol: -2}, {DRow: 0, DCol: -1},
	},
	4: {
		{DRow: 1, DCol: -1}, {DRow: 1, DCol: 0}, {DRow: 2, DCol: -2}, {DRow: 2, DCol: -1},
		{DRow: 2, DCol: 0}, {DRow: 2, DCol: -3}, {DRow: 1, DCol: -2}, {DRow: 0, DCol: -1},
		{DRow: 3, DCol: -2}, {DRow: 3, DCol: -1}, {DRow: 3, DCol: 0}, {DRow: 3, DCol: -3},
		{DRow: 3, DCol: -4}, {DRow: 3, DCol: -5}, {DRow: 3, DCol: 1}, {DRow: 2, DCol: 1},
		{DRow: 1, DCol: 1}, {DRow: 1, DCol: -3}, {DRow: 2, DCol: -4},
	},
	// Depth 5 anchors are scanned but no shape is known for them.
	5: nil,
}

var mirrorShapes = map[int][]board.Offset{
	3: {
		{DRow: 1, DCol: -1}, {DRow: 1, DCol: 0}, {DRow: 2, DCol: -2}, {DRow: 2, DCol: -1},
		{DRow: 2, DCol: 0}, {DRow: 2, DCol: 1}, {DRow: 1, DCol: 1}, {DRow: 0, DCol: 1},
	},
	4: {
		{DRow: 1, DCol: -1}, {DRow: 1, DCol: 0}, {DRow: 2, DCol: -2}, {DRow: 2, DCol: -1},
		{DRow: 2, DCol: 0}, {DRow: 2, DCol: -3}, {DRow: 1, DCol: -2}, {DRow: 0, DCol: 1},
		{DRow: 3, DCol: -2}, {DRow: 3, DCol: -1}, {DRow: 3, DCol: 0}, {DRow: 3, DCol: -3},
		{DRow: 3, DCol: -4}, {DRow: 3, DCol: 2}, {DRow: 3, DCol: 1}, {DRow: 2, DCol: 1},
		{DRow: 1, DCol: 1}, {DRow: 1, DCol: 2}, {DRow: 2, DCol: 2},
	},
	5: nil,
}

// rot60 turns a bottom-edge shape into a left-edge one.
func rot60(o board.Offset) board.Offset {
	return board.Offset{DRow: o.DRow + o.DCol, DCol: -o.DRow}
}

func rot180(o board.Offset) board.Offset {
	return board.Offset{DRow: -o.DRow, DCol: -o.DCol}
}

func orient(shape []board.Offset, fns ...func(board.Offset) board.Offset) []board.Offset {
	if shape == nil {
		return nil
	}
	out := make([]board.Offset, len(shape))
	for i, o := range shape {
		for _, fn := range fns {
			o = fn(o)
		}
		out[i] = o
	}
	return out
}

// edgeLine is one row or column of anchors scanned for templates.
type edgeLine struct {
	depth int
	// fixed is the row (horizontal line) or column (vertical line) index.
	fixed    int
	vertical bool
	from, to int
}

func (l edgeLine) coords() []board.Coord {
	cs := make([]board.Coord, 0, l.to-l.from+1)
	for i := l.from; i <= l.to; i++ {
		if l.vertical {
			cs = append(cs, board.Coord{Row: i, Col: l.fixed})
		} else {
			cs = append(cs, board.Coord{Row: l.fixed, Col: i})
		}
	}
	return cs
}

// edgeScan is everything needed to look for templates along one edge.
type edgeScan struct {
	name string
	// ref is a sentinel cell holding the edge's colour.
	ref    board.Coord
	lines  []edgeLine
	base   map[int][]board.Offset
	mirror map[int][]board.Offset
}

func orientAll(shapes map[int][]board.Offset, fns ...func(board.Offset) board.Offset) map[int][]board.Offset {
	out := make(map[int][]board.Offset, len(shapes))
	for d, s := range shapes {
		out[d] = orient(s, fns...)
	}
	return out
}

func buildEdgeScans() []edgeScan {
	last := board.Dim - 1
	return []edgeScan{
		{
			name: "bottom",
			ref:  board.Coord{Row: last, Col: 1},
			lines: []edgeLine{
				{depth: 5, fixed: last - 5, from: 2, to: 14},
				{depth: 4, fixed: last - 4, from: 2, to: 14},
				{depth: 3, fixed: last - 3, from: 2, to: 14},
			},
			base:   orientAll(baseShapes),
			mirror: orientAll(mirrorShapes),
		},
		{
			name: "top",
			ref:  board.Coord{Row: 0, Col: 5},
			lines: []edgeLine{
				{depth: 5, fixed: 5, from: 1, to: 13},
				{depth: 4, fixed: 4, from: 1, to: 13},
				{depth: 3, fixed: 3, from: 1, to: 13},
			},
			base:   orientAll(baseShapes, rot180),
			mirror: orientAll(mirrorShapes, rot180),
		},
		{
			name: "left",
			ref:  board.Coord{Row: 5, Col: 0},
			lines: []edgeLine{
				{depth: 5, fixed: 5, vertical: true, from: 2, to: 14},
				{depth: 4, fixed: 4, vertical: true, from: 2, to: 14},
				{depth: 3, fixed: 3, vertical: true, from: 2, to: 14},
			},
			base:   orientAll(baseShapes, rot60),
			mirror: orientAll(mirrorShapes, rot60),
		},
		{
			name: "right",
			ref:  board.Coord{Row: 5, Col: last},
			lines: []edgeLine{
				{depth: 5, fixed: last - 5, vertical: true, from: 2, to: 14},
				{depth: 4, fixed: last - 4, vertical: true, from: 2, to: 14},
				{depth: 3, fixed: last - 3, vertical: true, from: 2, to: 14},
			},
			base:   orientAll(baseShapes, rot60, rot180),
			mirror: orientAll(mirrorShapes, rot60, rot180),
		},
	}
}

func edgeScans() []edgeScan {
	return cache.MustLoad("structures.edge-scans", buildEdgeScans)
}

// matchShape reports whether every cell of shape around anchor is on the
// grid and empty.
func matchShape(g *board.Grid, anchor board.Coord, shape []board.Offset) ([]board.Coord, bool) {
	if len(shape) == 0 {
		return nil, false
	}
	cells := make([]board.Coord, len(shape))
	for i, o := range shape {
		c := anchor.Add(o)
		if !c.InBounds() || g.At(c) != board.Empty {
			return nil, false
		}
		cells[i] = c
	}
	return cells, true
}

// findTemplates calls fn for every anchor that matches a template, base
// shape before mirror, first match only.
func findTemplates(g *board.Grid, fn func(anchor board.Coord, cells []board.Coord)) {
	for _, scan := range edgeScans() {
		edge := g.At(scan.ref)
		for _, line := range scan.lines {
			for _, anchor := range line.coords() {
				v := g.At(anchor)
				if v == board.Empty || v != edge {
					continue
				}
				if cells, ok := matchShape(g, anchor, scan.base[line.depth]); ok {
					fn(anchor, cells)
					continue
				}
				if cells, ok := matchShape(g, anchor, scan.mirror[line.depth]); ok {
					fn(anchor, cells)
				}
			}
		}
	}
}
