package automatic

import (
	"encoding/hex"
	"strconv"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"

	"github.com/domino14/hexengine/board"
)

// NewRunID names a batch of self-play games.
func NewRunID() string {
	return hex.EncodeToString(frand.Bytes(4))
}

// GameSeed derives the seed of game n of a run, so a single game of a large
// run can be replayed from the run id and its number alone.
func GameSeed(runID string, n int) uint64 {
	return xxhash.Sum64String(runID + "/" + strconv.Itoa(n))
}

// sideSource gives each side of a seeded game its own stream.
func sideSource(seed uint64, s board.Side) *frand.Source {
	src := frand.NewSource()
	src.Seed(int64(xxhash.Sum64String(strconv.FormatUint(seed, 10) + "/" + s.String())))
	return src
}
