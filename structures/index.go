package structures

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/hexengine/board"
)

// Broken records a structure whose linking cell was just taken by the
// owner's opponent.
type Broken struct {
	Structure
	Owner board.Cell
	// Remaining are the linking cells other than the one just taken.
	Remaining []board.Coord
	BrokenBy  board.Coord
}

type sideIndex struct {
	links     *Registry
	templates *Registry
	// broken structures from the most recent update
	brokenLinks     []Broken
	brokenTemplates []Broken
}

func newSideIndex() *sideIndex {
	return &sideIndex{links: NewRegistry(), templates: NewRegistry()}
}

type brokenFrame struct {
	links, templates [2][]Broken
}

// Index holds the bridges and edge templates of both sides. Registries are
// derived from the grid and rebuilt on every update and undo; broken records
// are kept on a stack so that undo restores them exactly.
type Index struct {
	sides [2]*sideIndex
	stack []brokenFrame
}

func NewIndex() *Index {
	return &Index{sides: [2]*sideIndex{newSideIndex(), newSideIndex()}}
}

func sideIdx(owner board.Cell) int {
	if owner == board.Mine {
		return 0
	}
	return 1
}

func (ix *Index) side(owner board.Cell) *sideIndex {
	return ix.sides[sideIdx(owner)]
}

// Links returns the bridge registry of the given owner (Mine or Opp).
func (ix *Index) Links(owner board.Cell) *Registry {
	return ix.side(owner).links
}

// Templates returns the edge-template registry of the given owner.
func (ix *Index) Templates(owner board.Cell) *Registry {
	return ix.side(owner).templates
}

func (ix *Index) BrokenLinks(owner board.Cell) []Broken {
	return ix.side(owner).brokenLinks
}

func (ix *Index) BrokenTemplates(owner board.Cell) []Broken {
	return ix.side(owner).brokenTemplates
}

func (ix *Index) IsLinkCell(owner board.Cell, c board.Coord) bool {
	return ix.side(owner).links.Has(c)
}

func (ix *Index) IsTemplateCell(owner board.Cell, c board.Coord) bool {
	return ix.side(owner).templates.Has(c)
}

// Count returns the number of bridges and templates owned by owner.
func (ix *Index) Count(owner board.Cell) (links, templates int) {
	s := ix.side(owner)
	return s.links.Len(), s.templates.Len()
}

// Update detects the structures broken by the move at last, then rebuilds
// both sides' registries from g. g already holds the move.
func (ix *Index) Update(g *board.Grid, last board.Coord) {
	ix.stack = append(ix.stack, ix.frame())
	occupant := g.At(last)
	for _, owner := range []board.Cell{board.Mine, board.Opp} {
		s := ix.side(owner)
		s.brokenLinks = nil
		s.brokenTemplates = nil
		if occupant != owner.Other() {
			continue
		}
		s.brokenLinks = detectBroken(KindBridge, s.links, owner, last, 1)
		s.brokenTemplates = detectBroken(KindTemplate, s.templates, owner, last, 2)
	}
	ix.rebuild(g)
	for _, owner := range []board.Cell{board.Mine, board.Opp} {
		s := ix.side(owner)
		if len(s.brokenLinks) > 0 || len(s.brokenTemplates) > 0 {
			log.Debug().Str("owner", owner.String()).Str("by", last.String()).
				Int("links", len(s.brokenLinks)).Int("templates", len(s.brokenTemplates)).
				Msg("structures-broken")
		}
	}
}

// detectBroken lists the structures of r using c as a linking cell. Only
// structures left with at least atLeast linking cells are reported.
func detectBroken(kind Kind, r *Registry, owner board.Cell, c board.Coord, atLeast int) []Broken {
	var broken []Broken
	for _, k := range r.Using(c) {
		cells, _ := r.Cells(k)
		remaining := lo.Without(cells, c)
		if len(remaining) < atLeast {
			continue
		}
		broken = append(broken, Broken{
			Structure: Structure{Kind: kind, Key: k, Cells: append([]board.Coord(nil), cells...)},
			Owner:     owner,
			Remaining: remaining,
			BrokenBy:  c,
		})
	}
	return broken
}

// Undo rebuilds the registries from the reverted grid and restores the
// broken records that were current before the last Update.
func (ix *Index) Undo(g *board.Grid) {
	ix.rebuild(g)
	if len(ix.stack) == 0 {
		ix.restore(brokenFrame{})
		return
	}
	f := ix.stack[len(ix.stack)-1]
	ix.stack = ix.stack[:len(ix.stack)-1]
	ix.restore(f)
}

// Reset forgets all history and derives the registries from g.
func (ix *Index) Reset(g *board.Grid) {
	ix.stack = ix.stack[:0]
	ix.restore(brokenFrame{})
	ix.rebuild(g)
}

func (ix *Index) frame() brokenFrame {
	var f brokenFrame
	for i, s := range ix.sides {
		f.links[i] = s.brokenLinks
		f.templates[i] = s.brokenTemplates
	}
	return f
}

func (ix *Index) restore(f brokenFrame) {
	for i, s := range ix.sides {
		s.brokenLinks = f.links[i]
		s.brokenTemplates = f.templates[i]
	}
}

func (ix *Index) rebuild(g *board.Grid) {
	for _, s := range ix.sides {
		s.links.clear()
		s.templates.clear()
	}
	findBridges(g, func(a, b board.Coord, owner board.Cell, links []board.Coord) {
		ix.side(owner).links.Add(BridgeKey(a, b), links)
	})
	findTemplates(g, func(anchor board.Coord, cells []board.Coord) {
		ix.side(g.At(anchor)).templates.Add(TemplateKey(anchor), cells)
	})
}

// Consistent checks every registry's forward and reverse indexes.
func (ix *Index) Consistent() bool {
	return lo.EveryBy(ix.sides[:], func(s *sideIndex) bool {
		return s.links.Consistent() && s.templates.Consistent()
	})
}

// Snapshot is a comparable copy of the registries and broken records.
type Snapshot struct {
	Links, Templates [2]map[Key][]board.Coord
	Broken           [2][]Broken
}

func (ix *Index) Snapshot() Snapshot {
	var s Snapshot
	for i, si := range ix.sides {
		s.Links[i] = copyForward(si.links)
		s.Templates[i] = copyForward(si.templates)
		s.Broken[i] = append(append([]Broken(nil), si.brokenLinks...), si.brokenTemplates...)
	}
	return s
}

func copyForward(r *Registry) map[Key][]board.Coord {
	m := make(map[Key][]board.Coord, r.Len())
	for _, k := range r.Keys() {
		c, _ := r.Cells(k)
		m[k] = append([]board.Coord(nil), c...)
	}
	return m
}

// String dumps the registries for the shell.
func (ix *Index) String() string {
	var sb strings.Builder
	for _, owner := range []board.Cell{board.Mine, board.Opp} {
		s := ix.side(owner)
		fmt.Fprintf(&sb, "%s bridges (%d):\n", owner, s.links.Len())
		for _, k := range s.links.Keys() {
			c, _ := s.links.Cells(k)
			fmt.Fprintf(&sb, "  %s via %v\n", k, c)
		}
		fmt.Fprintf(&sb, "%s templates (%d):\n", owner, s.templates.Len())
		for _, k := range s.templates.Keys() {
			c, _ := s.templates.Cells(k)
			fmt.Fprintf(&sb, "  %s via %d cells\n", k, len(c))
		}
		for _, b := range append(append([]Broken(nil), s.brokenLinks...), s.brokenTemplates...) {
			fmt.Fprintf(&sb, "  broken %s %s by %s, remaining %v\n", b.Kind, b.Key, b.BrokenBy, b.Remaining)
		}
	}
	return sb.String()
}
