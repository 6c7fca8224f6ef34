package facet

// Selection holds the coach's current filter choices at the UI level:
// level and drill type labels, fundamentals, and the two boolean
// options. The zero value means "no filter active".
type Selection struct {
	Levels          []string `json:"levels" schema:"level"`
	Fundamentals    []string `json:"fundamentals" schema:"fundamental"`
	DrillTypes      []string `json:"drill_types" schema:"type"`
	CoachOnly       bool     `json:"coach_only" schema:"coach"`
	ManyPlayersOnly bool     `json:"many_players_only" schema:"many"`
}

// Params is the wire-level filter parameter object consumed by the
// remote query layer. Empty slices mean "no constraint on that facet".
// The booleans are tri-state on the wire: only true constrains, there
// is no "constrain to false".
type Params struct {
	Levels       []int
	Fundamentals []string
	DrillTypes   []string
	Coach        bool
	Many         bool
}

// Params translates the UI selection into backend codes. Unknown
// labels on any facet are dropped silently; fundamentals are
// normalized first so legacy aliases count as known. Only vocabulary
// codes ever reach the wire.
func (s Selection) Params() Params {
	p := Params{
		Levels:       make([]int, 0, len(s.Levels)),
		Fundamentals: make([]string, 0, len(s.Fundamentals)),
		DrillTypes:   make([]string, 0, len(s.DrillTypes)),
		Coach:        s.CoachOnly,
		Many:         s.ManyPlayersOnly,
	}
	for _, label := range s.Levels {
		if id, ok := LevelID(label); ok {
			p.Levels = append(p.Levels, id)
		}
	}
	for _, f := range s.Fundamentals {
		n := NormalizeFundamental(f)
		if _, ok := fundamentalSet[n]; ok {
			p.Fundamentals = append(p.Fundamentals, n)
		}
	}
	for _, label := range s.DrillTypes {
		if v, ok := DrillTypeValue(label); ok {
			p.DrillTypes = append(p.DrillTypes, v)
		}
	}
	return p
}

// Empty reports whether every facet is unconstrained. An empty Params
// must never be sent to the remote store; the catalog shows nothing
// until at least one filter is active.
func (p Params) Empty() bool {
	return len(p.Levels) == 0 &&
		len(p.Fundamentals) == 0 &&
		len(p.DrillTypes) == 0 &&
		!p.Coach && !p.Many
}
