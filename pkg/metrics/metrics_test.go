package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with an isolated registry", func() {
			manager := NewManager(WithRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(prometheus.NewRegistry()),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the package-level recorders", t, func() {
		Convey("When recording fetch cycle metrics", func() {
			So(func() {
				RecordFetch()
				RecordFetchError()
				RecordStaleDropped()
				RecordFetchLatency(42.0)
				RecordEmptyFilterHit()
				UpdateResultCount(12)
			}, ShouldNotPanic)
		})

		Convey("When recording write outcomes", func() {
			So(func() {
				RecordWrite("drill", "ok")
				RecordWrite("comment", "error")
				RecordWrite("rating", "blocked")
			}, ShouldNotPanic)
		})

		Convey("When recording session and selection state", func() {
			So(func() {
				UpdateSelectionSize(3)
				UpdateSignedIn(true)
				UpdateSignedIn(false)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("drills", "GET", "200")
				RecordHTTPRequestDuration("drills", "GET", "200", 12.5)
			}, ShouldNotPanic)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the package registry", t, func() {
		Convey("Then it should gather the registered metrics", func() {
			reg := GetRegistry()
			So(reg, ShouldNotBeNil)

			families, err := reg.Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
		})
	})
}
