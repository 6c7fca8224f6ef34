package facet_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	facet "github.com/volleykit/drillboard/internal/domain/facet"
)

func TestSelectionParams(t *testing.T) {
	Convey("Given a facet selection", t, func() {
		Convey("When no facet is chosen", func() {
			p := facet.Selection{}.Params()

			Convey("Then the params should be empty and constrain nothing", func() {
				So(p.Empty(), ShouldBeTrue)
				So(p.Levels, ShouldBeEmpty)
				So(p.Fundamentals, ShouldBeEmpty)
				So(p.DrillTypes, ShouldBeEmpty)
				So(p.Coach, ShouldBeFalse)
				So(p.Many, ShouldBeFalse)
			})
		})

		Convey("When labels are chosen", func() {
			sel := facet.Selection{
				Levels:       []string{"B1", "C1"},
				Fundamentals: []string{"Reception", "attack"},
				DrillTypes:   []string{"Warm-up", "Game-like"},
			}
			p := sel.Params()

			Convey("Then labels should translate to backend codes", func() {
				So(p.Levels, ShouldResemble, []int{2, 4})
				So(p.Fundamentals, ShouldResemble, []string{"receive", "attack"})
				So(p.DrillTypes, ShouldResemble, []string{"warmup", "game_like"})
				So(p.Empty(), ShouldBeFalse)
			})
		})

		Convey("When unknown labels are mixed in", func() {
			sel := facet.Selection{
				Levels:     []string{"B1", "Z9"},
				DrillTypes: []string{"Technical", "Swimming"},
			}
			p := sel.Params()

			Convey("Then the unknown labels should be dropped silently", func() {
				So(p.Levels, ShouldResemble, []int{2})
				So(p.DrillTypes, ShouldResemble, []string{"technical"})
			})
		})

		Convey("When only a boolean option is active", func() {
			p := facet.Selection{CoachOnly: true}.Params()

			Convey("Then the params should count as constrained", func() {
				So(p.Empty(), ShouldBeFalse)
				So(p.Coach, ShouldBeTrue)
				So(p.Many, ShouldBeFalse)
			})
		})

		Convey("Then params output only contains vocabulary codes", func() {
			sel := facet.Selection{
				Fundamentals: []string{"ballcontrol", "serve", "nonsense"},
			}
			p := sel.Params()

			So(p.Fundamentals, ShouldResemble, []string{"ball control", "serve"})
			So(p.Fundamentals, ShouldNotContain, "nonsense")
		})

		Convey("When only unknown fundamentals are chosen", func() {
			p := facet.Selection{Fundamentals: []string{"nonsense"}}.Params()

			Convey("Then every facet stays unconstrained", func() {
				So(p.Fundamentals, ShouldBeEmpty)
				So(p.Empty(), ShouldBeTrue)
			})
		})
	})
}
