// Package drill contains the catalog domain models and the local
// validation applied before any write reaches the remote store.
package drill

import (
	"time"

	"github.com/volleykit/drillboard/internal/domain/facet"
)

// Score bounds for ratings.
const (
	MinScore = 1
	MaxScore = 10
)

// Drill is the client projection of the public drills view. The
// aggregate fields (AvgRating, RatingsCount, CommentsCount) are
// precomputed by the data source.
type Drill struct {
	ID                 string    `json:"id"`
	URL                string    `json:"url"`
	Levels             []int     `json:"levels"`
	Fundamentals       []string  `json:"fundamentals"`
	DrillTypes         []string  `json:"drill_types"`
	CoachParticipates  bool      `json:"coach_participates"`
	GoodForManyPlayers bool      `json:"good_for_many_players"`
	AvgRating          *float64  `json:"avg_rating"`
	RatingsCount       int       `json:"ratings_count"`
	CommentsCount      int       `json:"comments_count"`
	CreatedAt          time.Time `json:"created_at"`
}

// Tested reports whether the drill has at least one submitted rating.
func (d Drill) Tested() bool {
	return d.RatingsCount > 0
}

// Comment on a drill. Append-only: comments are never deleted through
// this application.
type Comment struct {
	ID             string    `json:"id"`
	DrillID        string    `json:"drill_id"`
	Comment        string    `json:"comment"`
	CreatedByName  string    `json:"created_by_name"`
	CreatedByEmail string    `json:"created_by_email"`
	CreatedAt      time.Time `json:"created_at"`
}

// Rating of a drill, score 1..10. Append-only like Comment.
type Rating struct {
	ID             string    `json:"id"`
	DrillID        string    `json:"drill_id"`
	Score          int       `json:"score"`
	CreatedByName  string    `json:"created_by_name"`
	CreatedByEmail string    `json:"created_by_email"`
	CreatedAt      time.Time `json:"created_at"`
}

// DisplayRating resolves the average rating shown to the user. The
// precomputed value from the data source wins; when it is absent the
// mean of the raw scores is derived locally. Returns nil when neither
// source yields a value.
func DisplayRating(d Drill, ratings []Rating) *float64 {
	if d.AvgRating != nil {
		return d.AvgRating
	}
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}
	avg := float64(sum) / float64(len(ratings))
	return &avg
}

// Normalize rewrites legacy fundamental aliases in place so the rest of
// the application only ever sees vocabulary values.
func (d *Drill) Normalize() {
	for i, f := range d.Fundamentals {
		d.Fundamentals[i] = facet.NormalizeFundamental(f)
	}
}
