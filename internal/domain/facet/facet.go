// Package facet defines the filterable dimensions of the drill catalog:
// skill levels, fundamentals, drill types and the two boolean options.
// It owns the UI-label to backend-code mappings and fundamental
// normalization used everywhere else in the application.
package facet

import "strings"

// Level labels in ordinal order. Backend codes are 1-based positions.
var LevelLabels = []string{"A", "B1", "B2", "C1", "C2", "C3"}

// Fundamentals is the fixed vocabulary, already normalized.
var Fundamentals = []string{"serve", "receive", "setting", "attack", "block", "defense", "ball control"}

// DrillTypeLabels are the UI labels for drill types.
var DrillTypeLabels = []string{"Warm-up", "Technical", "Game-like", "Educational"}

var (
	levelToID = map[string]int{"A": 1, "B1": 2, "B2": 3, "C1": 4, "C2": 5, "C3": 6}
	idToLevel = map[int]string{1: "A", 2: "B1", 3: "B2", 4: "C1", 5: "C2", 6: "C3"}

	drillTypeToValue = map[string]string{
		"Warm-up":     "warmup",
		"Technical":   "technical",
		"Game-like":   "game_like",
		"Educational": "educational",
	}
	drillValueToLabel = map[string]string{
		"warmup":      "Warm-up",
		"technical":   "Technical",
		"game_like":   "Game-like",
		"educational": "Educational",
	}

	fundamentalSet = map[string]struct{}{}
	drillTypeSet   = map[string]struct{}{}
)

func init() { //nolint:gochecknoinits // builds lookup sets from the fixed vocabularies
	for _, f := range Fundamentals {
		fundamentalSet[f] = struct{}{}
	}
	for _, v := range drillTypeToValue {
		drillTypeSet[v] = struct{}{}
	}
}

// LevelID maps a level label to its backend code. ok is false for
// unknown labels.
func LevelID(label string) (int, bool) {
	id, ok := levelToID[strings.ToUpper(strings.TrimSpace(label))]
	return id, ok
}

// LevelLabel maps a backend level code back to its label. Unknown codes
// return the empty string.
func LevelLabel(id int) string {
	return idToLevel[id]
}

// DrillTypeValue maps a drill type UI label to its backend value.
func DrillTypeValue(label string) (string, bool) {
	v, ok := drillTypeToValue[strings.TrimSpace(label)]
	return v, ok
}

// DrillTypeLabel maps a backend drill type value to its UI label.
// Unknown values pass through unchanged so stray data still renders.
func DrillTypeLabel(value string) string {
	if l, ok := drillValueToLabel[value]; ok {
		return l
	}
	return value
}

// ValidDrillType reports whether value is part of the backend vocabulary.
func ValidDrillType(value string) bool {
	_, ok := drillTypeSet[value]
	return ok
}

// ValidFundamental reports whether f (after normalization) is part of
// the fixed vocabulary.
func ValidFundamental(f string) bool {
	_, ok := fundamentalSet[NormalizeFundamental(f)]
	return ok
}

// NormalizeFundamental lowercases, trims, and collapses the legacy
// aliases (reception -> receive, ballcontrol -> ball control). It is
// idempotent: normalizing an already-normalized value returns it as-is.
func NormalizeFundamental(f string) string {
	s := strings.ToLower(strings.TrimSpace(f))
	switch s {
	case "reception":
		return "receive"
	case "ballcontrol":
		return "ball control"
	default:
		return s
	}
}

// PrettyFundamental renders a fundamental for display: normalized, then
// title-cased ("ball control" -> "Ball Control").
func PrettyFundamental(f string) string {
	s := NormalizeFundamental(f)
	if s == "" {
		return ""
	}
	if s == "ball control" {
		return "Ball Control"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
