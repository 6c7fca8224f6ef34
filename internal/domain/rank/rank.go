// Package rank orders fetched drills deterministically. Drills with
// ratings come first, then drills with only comments, then the rest;
// each bucket has its own tie-break chain ending on recency.
package rank

import (
	"cmp"
	"slices"

	"github.com/volleykit/drillboard/internal/domain/drill"
)

// Buckets, lower sorts first.
const (
	bucketRated     = 1
	bucketCommented = 2
	bucketRest      = 3
)

func bucket(d drill.Drill) int {
	switch {
	case d.RatingsCount > 0:
		return bucketRated
	case d.CommentsCount > 0:
		return bucketCommented
	default:
		return bucketRest
	}
}

// avg treats a missing average as lower than any real value.
func avg(d drill.Drill) float64 {
	if d.AvgRating == nil {
		return -1
	}
	return *d.AvgRating
}

// Sort orders drills in place. The sort is stable: when every key ties,
// the original fetch order is preserved.
func Sort(drills []drill.Drill) {
	slices.SortStableFunc(drills, compare)
}

// Sorted returns an ordered copy, leaving the input untouched.
func Sorted(drills []drill.Drill) []drill.Drill {
	out := slices.Clone(drills)
	Sort(out)
	return out
}

func compare(a, b drill.Drill) int {
	if c := cmp.Compare(bucket(a), bucket(b)); c != 0 {
		return c
	}
	switch bucket(a) {
	case bucketRated:
		if c := cmp.Compare(avg(b), avg(a)); c != 0 {
			return c
		}
		if c := cmp.Compare(b.RatingsCount, a.RatingsCount); c != 0 {
			return c
		}
	case bucketCommented:
		if c := cmp.Compare(b.CommentsCount, a.CommentsCount); c != 0 {
			return c
		}
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}
