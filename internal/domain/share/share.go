// Package share derives the plain-text session summary exported to the
// clipboard or a share sheet: one numbered line per selected drill plus
// an optional metadata line listing its facets.
package share

import (
	"fmt"
	"strings"

	"github.com/volleykit/drillboard/internal/domain/drill"
	"github.com/volleykit/drillboard/internal/domain/facet"
)

const header = "Drills for today:"

const metaDelimiter = " | "

// Compose builds the share text from the ranked result list and a
// selection predicate. Ranked order is preserved, not selection-click
// order. An empty selection yields an empty string; callers must not
// attempt copy/share on empty output.
func Compose(ranked []drill.Drill, selected func(id string) bool) string {
	var picked []drill.Drill
	for _, d := range ranked {
		if selected(d.ID) {
			picked = append(picked, d)
		}
	}
	if len(picked) == 0 {
		return ""
	}

	lines := make([]string, 0, 2*len(picked)+1)
	lines = append(lines, header)
	for i, d := range picked {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, d.URL))
		if meta := metaLine(d); meta != "" {
			lines = append(lines, "   "+meta)
		}
	}
	return strings.Join(lines, "\n")
}

func metaLine(d drill.Drill) string {
	var parts []string
	if len(d.Levels) > 0 {
		labels := make([]string, 0, len(d.Levels))
		for _, lv := range d.Levels {
			if l := facet.LevelLabel(lv); l != "" {
				labels = append(labels, l)
			} else {
				labels = append(labels, fmt.Sprintf("%d", lv))
			}
		}
		parts = append(parts, "Levels: "+strings.Join(labels, ", "))
	}
	if len(d.Fundamentals) > 0 {
		pretty := make([]string, 0, len(d.Fundamentals))
		for _, f := range d.Fundamentals {
			pretty = append(pretty, facet.PrettyFundamental(f))
		}
		parts = append(parts, "Fundamentals: "+strings.Join(pretty, ", "))
	}
	if len(d.DrillTypes) > 0 {
		labels := make([]string, 0, len(d.DrillTypes))
		for _, t := range d.DrillTypes {
			labels = append(labels, facet.DrillTypeLabel(t))
		}
		parts = append(parts, "Type: "+strings.Join(labels, ", "))
	}
	return strings.Join(parts, metaDelimiter)
}
