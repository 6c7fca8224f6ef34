package facet_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	facet "github.com/volleykit/drillboard/internal/domain/facet"
)

func TestNormalizeFundamental(t *testing.T) {
	Convey("Given the fundamental normalizer", t, func() {
		Convey("When normalizing legacy aliases", func() {
			So(facet.NormalizeFundamental("reception"), ShouldEqual, "receive")
			So(facet.NormalizeFundamental("Reception"), ShouldEqual, "receive")
			So(facet.NormalizeFundamental("ballcontrol"), ShouldEqual, "ball control")
		})

		Convey("When normalizing an already-normalized value", func() {
			Convey("Then it should be idempotent", func() {
				for _, f := range facet.Fundamentals {
					So(facet.NormalizeFundamental(f), ShouldEqual, f)
				}
				So(facet.NormalizeFundamental(facet.NormalizeFundamental("Reception")), ShouldEqual, "receive")
			})
		})

		Convey("When normalizing casing and whitespace", func() {
			So(facet.NormalizeFundamental("  Serve "), ShouldEqual, "serve")
			So(facet.NormalizeFundamental(""), ShouldEqual, "")
		})
	})
}

func TestPrettyFundamental(t *testing.T) {
	Convey("Given the display formatter", t, func() {
		So(facet.PrettyFundamental("serve"), ShouldEqual, "Serve")
		So(facet.PrettyFundamental("ball control"), ShouldEqual, "Ball Control")
		So(facet.PrettyFundamental("ballcontrol"), ShouldEqual, "Ball Control")
		So(facet.PrettyFundamental("reception"), ShouldEqual, "Receive")
		So(facet.PrettyFundamental(""), ShouldEqual, "")
	})
}

func TestLevelMapping(t *testing.T) {
	Convey("Given the level label maps", t, func() {
		Convey("Then every label should round-trip through its code", func() {
			for i, label := range facet.LevelLabels {
				id, ok := facet.LevelID(label)
				So(ok, ShouldBeTrue)
				So(id, ShouldEqual, i+1)
				So(facet.LevelLabel(id), ShouldEqual, label)
			}
		})

		Convey("Then unknown labels should be rejected", func() {
			_, ok := facet.LevelID("D4")
			So(ok, ShouldBeFalse)
			So(facet.LevelLabel(99), ShouldEqual, "")
		})
	})
}

func TestDrillTypeMapping(t *testing.T) {
	Convey("Given the drill type maps", t, func() {
		Convey("Then every UI label should round-trip", func() {
			for _, label := range facet.DrillTypeLabels {
				v, ok := facet.DrillTypeValue(label)
				So(ok, ShouldBeTrue)
				So(facet.ValidDrillType(v), ShouldBeTrue)
				So(facet.DrillTypeLabel(v), ShouldEqual, label)
			}
		})

		Convey("Then unknown backend values should pass through for display", func() {
			So(facet.DrillTypeLabel("mystery"), ShouldEqual, "mystery")
			So(facet.ValidDrillType("mystery"), ShouldBeFalse)
		})
	})
}
