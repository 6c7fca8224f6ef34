package rank_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/volleykit/drillboard/internal/domain/drill"
	"github.com/volleykit/drillboard/internal/domain/rank"
)

func ts(day int) time.Time {
	return time.Date(2026, time.March, day, 12, 0, 0, 0, time.UTC)
}

func ptr(f float64) *float64 { return &f }

func ids(drills []drill.Drill) []string {
	out := make([]string, 0, len(drills))
	for _, d := range drills {
		out = append(out, d.ID)
	}
	return out
}

func TestSorted(t *testing.T) {
	Convey("Given drills across the three buckets", t, func() {
		rated := drill.Drill{ID: "rated", RatingsCount: 2, AvgRating: ptr(8), CreatedAt: ts(1)}
		commented := drill.Drill{ID: "commented", CommentsCount: 3, CreatedAt: ts(2)}
		rest := drill.Drill{ID: "rest", CreatedAt: ts(3)}

		Convey("Then rated comes before commented before the rest", func() {
			got := rank.Sorted([]drill.Drill{rest, commented, rated})
			So(ids(got), ShouldResemble, []string{"rated", "commented", "rest"})
		})

		Convey("Then the input order does not influence the result", func() {
			a := rank.Sorted([]drill.Drill{rated, rest, commented})
			b := rank.Sorted([]drill.Drill{commented, rated, rest})
			So(ids(a), ShouldResemble, ids(b))
		})

		Convey("Then the input slice is left untouched", func() {
			in := []drill.Drill{rest, rated}
			_ = rank.Sorted(in)
			So(in[0].ID, ShouldEqual, "rest")
		})
	})
}

func TestRatedTieBreaks(t *testing.T) {
	Convey("Given rated drills", t, func() {
		Convey("When averages differ", func() {
			lo := drill.Drill{ID: "lo", RatingsCount: 5, AvgRating: ptr(6), CreatedAt: ts(9)}
			hi := drill.Drill{ID: "hi", RatingsCount: 1, AvgRating: ptr(9), CreatedAt: ts(1)}

			Convey("Then the higher average wins regardless of count or age", func() {
				got := rank.Sorted([]drill.Drill{lo, hi})
				So(ids(got), ShouldResemble, []string{"hi", "lo"})
			})
		})

		Convey("When averages tie", func() {
			few := drill.Drill{ID: "few", RatingsCount: 1, AvgRating: ptr(7), CreatedAt: ts(9)}
			many := drill.Drill{ID: "many", RatingsCount: 4, AvgRating: ptr(7), CreatedAt: ts(1)}

			Convey("Then more ratings win", func() {
				got := rank.Sorted([]drill.Drill{few, many})
				So(ids(got), ShouldResemble, []string{"many", "few"})
			})
		})

		Convey("When a rated drill has no precomputed average", func() {
			withAvg := drill.Drill{ID: "with", RatingsCount: 1, AvgRating: ptr(2), CreatedAt: ts(1)}
			without := drill.Drill{ID: "without", RatingsCount: 3, CreatedAt: ts(9)}

			Convey("Then any real average sorts above the missing one", func() {
				got := rank.Sorted([]drill.Drill{without, withAvg})
				So(ids(got), ShouldResemble, []string{"with", "without"})
			})
		})

		Convey("When every rating key ties", func() {
			old := drill.Drill{ID: "old", RatingsCount: 2, AvgRating: ptr(7), CreatedAt: ts(1)}
			fresh := drill.Drill{ID: "fresh", RatingsCount: 2, AvgRating: ptr(7), CreatedAt: ts(8)}

			Convey("Then the newer drill wins", func() {
				got := rank.Sorted([]drill.Drill{old, fresh})
				So(ids(got), ShouldResemble, []string{"fresh", "old"})
			})
		})
	})
}

func TestCommentedTieBreaks(t *testing.T) {
	Convey("Given commented drills without ratings", t, func() {
		chatty := drill.Drill{ID: "chatty", CommentsCount: 5, CreatedAt: ts(1)}
		quiet := drill.Drill{ID: "quiet", CommentsCount: 1, CreatedAt: ts(9)}

		Convey("Then more comments win over recency", func() {
			got := rank.Sorted([]drill.Drill{quiet, chatty})
			So(ids(got), ShouldResemble, []string{"chatty", "quiet"})
		})

		Convey("When comment counts tie, the newer drill wins", func() {
			a := drill.Drill{ID: "a", CommentsCount: 2, CreatedAt: ts(3)}
			b := drill.Drill{ID: "b", CommentsCount: 2, CreatedAt: ts(7)}
			got := rank.Sorted([]drill.Drill{a, b})
			So(ids(got), ShouldResemble, []string{"b", "a"})
		})
	})
}

func TestStability(t *testing.T) {
	Convey("Given drills where every sort key ties", t, func() {
		when := ts(4)
		in := []drill.Drill{
			{ID: "first", CreatedAt: when},
			{ID: "second", CreatedAt: when},
			{ID: "third", CreatedAt: when},
		}

		Convey("Then the original fetch order is preserved", func() {
			got := rank.Sorted(in)
			So(ids(got), ShouldResemble, []string{"first", "second", "third"})
		})
	})
}
