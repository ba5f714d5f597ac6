package search

import (
	"gopkg.in/yaml.v3"

	"github.com/domino14/hexengine/move"
)

// ChildRecord is the value found for one root child.
type ChildRecord struct {
	Move   string  `yaml:"move"`
	Value  float64 `yaml:"value"`
	Forced bool    `yaml:"forced,omitempty"`
}

// SearchRecord is written to the log stream once per Solve.
type SearchRecord struct {
	Side     string        `yaml:"side"`
	Stones   int           `yaml:"stones"`
	Depth    int           `yaml:"depth"`
	Children []ChildRecord `yaml:"children"`
	Chosen   string        `yaml:"chosen"`
	Value    float64       `yaml:"value"`
	Nodes    int           `yaml:"nodes"`
}

func (s *Solver) logChild(depth int, m move.Move, v float64, forced bool) {
	if s.record == nil || depth != 0 {
		return
	}
	s.record.Children = append(s.record.Children, ChildRecord{
		Move:   m.ShortDescription(),
		Value:  v,
		Forced: forced,
	})
}

func (s *Solver) writeRecord() error {
	// A one-element list per search, so that the stream as a whole is a
	// single YAML list.
	out, err := yaml.Marshal([]*SearchRecord{s.record})
	if err != nil {
		return err
	}
	_, err = s.logStream.Write(out)
	return err
}
