package cache

// ScoreCache memoises heuristic scores by position hash. It is cleared once
// per real turn and reused across every position visited by that turn's
// search.
type ScoreCache struct {
	scores map[uint64]float64
	hits   int
	misses int
}

func NewScoreCache() *ScoreCache {
	return &ScoreCache{scores: make(map[uint64]float64)}
}

func (s *ScoreCache) Get(key uint64) (float64, bool) {
	v, ok := s.scores[key]
	if ok {
		s.hits++
	} else {
		s.misses++
	}
	return v, ok
}

func (s *ScoreCache) Put(key uint64, v float64) {
	s.scores[key] = v
}

func (s *ScoreCache) Len() int {
	return len(s.scores)
}

// Clear drops every entry and resets the counters.
func (s *ScoreCache) Clear() {
	clear(s.scores)
	s.hits, s.misses = 0, 0
}

// Stats returns hit and miss counts since the last Clear.
func (s *ScoreCache) Stats() (hits, misses int) {
	return s.hits, s.misses
}
