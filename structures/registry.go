// Package structures derives the tactical structures of a position:
// bridges (two stones two hex-steps apart with both linking cells empty) and
// edge templates (a stone connected to its home edge through a fixed
// pattern of empty cells).
package structures

import (
	"github.com/samber/lo"

	"github.com/domino14/hexengine/board"
)

type Kind uint8

const (
	KindBridge Kind = iota
	KindTemplate
)

func (k Kind) String() string {
	if k == KindTemplate {
		return "template"
	}
	return "bridge"
}

// Key identifies a structure by its unordered anchor set. A bridge has two
// anchors; an edge template has one.
type Key struct {
	anchors [2]board.Coord
	n       uint8
}

func BridgeKey(a, b board.Coord) Key {
	if b.Index() < a.Index() {
		a, b = b, a
	}
	return Key{anchors: [2]board.Coord{a, b}, n: 2}
}

func TemplateKey(a board.Coord) Key {
	return Key{anchors: [2]board.Coord{a, a}, n: 1}
}

func (k Key) Anchors() []board.Coord {
	return append([]board.Coord(nil), k.anchors[:k.n]...)
}

func (k Key) String() string {
	if k.n == 1 {
		return k.anchors[0].String()
	}
	return k.anchors[0].String() + "-" + k.anchors[1].String()
}

// Structure is a registered bridge or template with its linking cells.
type Structure struct {
	Kind  Kind
	Key   Key
	Cells []board.Coord
}

// Registry holds one side's structures of one kind, indexed both ways:
// structure -> linking cells and linking cell -> structures using it.
type Registry struct {
	forward map[Key][]board.Coord
	reverse map[board.Coord][]Key
	order   []Key
}

func NewRegistry() *Registry {
	return &Registry{
		forward: make(map[Key][]board.Coord),
		reverse: make(map[board.Coord][]Key),
	}
}

func (r *Registry) clear() {
	clear(r.forward)
	clear(r.reverse)
	r.order = r.order[:0]
}

// Add registers a structure. It returns false if the key is already present.
func (r *Registry) Add(k Key, cells []board.Coord) bool {
	if _, ok := r.forward[k]; ok {
		return false
	}
	r.forward[k] = append([]board.Coord(nil), cells...)
	r.order = append(r.order, k)
	for _, c := range cells {
		if !lo.Contains(r.reverse[c], k) {
			r.reverse[c] = append(r.reverse[c], k)
		}
	}
	return true
}

// Remove unregisters a structure and drops reverse entries that become empty.
func (r *Registry) Remove(k Key) bool {
	cells, ok := r.forward[k]
	if !ok {
		return false
	}
	delete(r.forward, k)
	r.order = lo.Without(r.order, k)
	for _, c := range cells {
		left := lo.Without(r.reverse[c], k)
		if len(left) == 0 {
			delete(r.reverse, c)
		} else {
			r.reverse[c] = left
		}
	}
	return true
}

func (r *Registry) Len() int {
	return len(r.forward)
}

// Cells returns the linking cells of a structure.
func (r *Registry) Cells(k Key) ([]board.Coord, bool) {
	c, ok := r.forward[k]
	return c, ok
}

// Using returns the structures that use c as a linking cell, in
// registration order.
func (r *Registry) Using(c board.Coord) []Key {
	return r.reverse[c]
}

// Has is true if c is a linking cell of any registered structure.
func (r *Registry) Has(c board.Coord) bool {
	_, ok := r.reverse[c]
	return ok
}

// Keys lists structures in registration order.
func (r *Registry) Keys() []Key {
	return append([]Key(nil), r.order...)
}

// LinkingCells lists every cell used by at least one structure.
func (r *Registry) LinkingCells() []board.Coord {
	return lo.Uniq(lo.Flatten(lo.Map(r.order, func(k Key, _ int) []board.Coord {
		return r.forward[k]
	})))
}

// Consistent checks that the forward and reverse indexes agree.
func (r *Registry) Consistent() bool {
	for k, cells := range r.forward {
		for _, c := range cells {
			if !lo.Contains(r.reverse[c], k) {
				return false
			}
		}
	}
	for c, keys := range r.reverse {
		if len(keys) == 0 {
			return false
		}
		for _, k := range keys {
			if !lo.Contains(r.forward[k], c) {
				return false
			}
		}
	}
	return len(r.order) == len(r.forward)
}
