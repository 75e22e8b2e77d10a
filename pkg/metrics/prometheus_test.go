package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	convey.Convey("Given a manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(reg))

		convey.Convey("Then every metric registers without collision", func() {
			convey.So(m, convey.ShouldNotBeNil)
			families, err := reg.Gather()
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(families), convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("Then custom options are honored", func() {
			reg2 := prometheus.NewRegistry()
			m2 := NewManager(
				WithPrometheusRegistry(reg2),
				WithNamespace("other"),
				WithSubsystem("sub"),
				WithHistogramBuckets([]float64{1, 10}),
				WithMetricsEnabled(false),
			)
			convey.So(m2.namespace, convey.ShouldEqual, "other")
			convey.So(m2.subsystem, convey.ShouldEqual, "sub")
			convey.So(m2.enabled, convey.ShouldBeFalse)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	convey.Convey("Given the global manager", t, func() {
		convey.Convey("Then the record helpers do not panic", func() {
			convey.So(func() {
				RecordEventStored()
				RecordEventRejected()
				RecordEventDuplicate()
				UpdateWatchLogSize(10)
				UpdateCatalogSize(5)
				UpdateDedupeSize(7)
				RecordReportBuild(12.5)
				RecordHTTPRequest("events", "POST", "201")
				RecordHTTPRequestDuration("events", "POST", "201", 3.2)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(8)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("Then the updates land in the shared registry", func() {
			UpdateWatchLogSize(42)
			families, err := GetRegistry().Gather()
			convey.So(err, convey.ShouldBeNil)

			found := false
			for _, fam := range families {
				if fam.GetName() == "marquee_catalog_watch_log_size" {
					found = true
					convey.So(fam.GetMetric()[0].GetGauge().GetValue(), convey.ShouldEqual, 42.0)
				}
			}
			convey.So(found, convey.ShouldBeTrue)
		})
	})
}
