package seeder

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/volleykit/drillboard/internal/domain/drill"
	"github.com/volleykit/drillboard/internal/domain/facet"
)

// Fixture shape constants.
const (
	maxLevelsPerDrill       = 3
	maxFundamentalsPerDrill = 2
	coachShare              = 0.4
	manyPlayersShare        = 0.5
	maxAgeDays              = 240
)

var drillTypeValues = []string{"warmup", "technical", "game_like", "educational"}

// GenerateDrills produces n valid drill fixtures with plausible facet
// spreads. Every fixture passes drill.ValidateNew.
func GenerateDrills(n int) []drill.Drill {
	out := make([]drill.Drill, 0, n)
	for i := 0; i < n; i++ {
		d := drill.Drill{
			ID:                 uuid.NewString(),
			URL:                fmt.Sprintf("https://videos.example.com/drills/%04d", i+1),
			Levels:             pickLevels(),
			Fundamentals:       pickFundamentals(),
			DrillTypes:         []string{drillTypeValues[rand.Intn(len(drillTypeValues))]},
			CoachParticipates:  rand.Float64() < coachShare,
			GoodForManyPlayers: rand.Float64() < manyPlayersShare,
			CreatedAt:          time.Now().AddDate(0, 0, -rand.Intn(maxAgeDays)),
		}
		out = append(out, d)
	}
	return out
}

// pickLevels returns 1..maxLevelsPerDrill adjacent level codes; an
// occasional empty set means "all levels".
func pickLevels() []int {
	if rand.Intn(10) == 0 {
		return nil
	}
	count := 1 + rand.Intn(maxLevelsPerDrill)
	start := 1 + rand.Intn(len(facet.LevelLabels))
	levels := make([]int, 0, count)
	for lv := start; lv <= len(facet.LevelLabels) && len(levels) < count; lv++ {
		levels = append(levels, lv)
	}
	return levels
}

func pickFundamentals() []string {
	count := 1 + rand.Intn(maxFundamentalsPerDrill)
	picked := make([]string, 0, count)
	seen := map[string]struct{}{}
	for len(picked) < count {
		f := facet.Fundamentals[rand.Intn(len(facet.Fundamentals))]
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		picked = append(picked, f)
	}
	return picked
}
