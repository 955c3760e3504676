package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("test_prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.subsystem, ShouldEqual, "test_subsystem")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.Enabled(), ShouldBeFalse)
				So(manager.refreshInterval, ShouldEqual, 5*time.Second)
			})

			Convey("And metric names carry the prefix", func() {
				manager.renders.WithLabelValues("reviews").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_test_prefix_renders_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When options receive empty values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "shopease")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.refreshInterval, ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		SetEnabled(true)

		Convey("When recording a render", func() {
			before := testutil.ToFloat64(globalManager.renders.WithLabelValues("geographics"))
			RecordRender("geographics")
			RecordRenderLatency(12)

			Convey("Then the section counter increases", func() {
				So(testutil.ToFloat64(globalManager.renders.WithLabelValues("geographics")), ShouldEqual, before+1)
			})
		})

		Convey("When recording an extract load", func() {
			loaded := testutil.ToFloat64(globalManager.extractRowsLoaded.WithLabelValues("order_per_city"))
			rejected := testutil.ToFloat64(globalManager.extractRowsRejected.WithLabelValues("order_per_city"))
			RecordExtractLoad("order_per_city", 10, 2, 3.5)

			Convey("Then loaded and rejected rows are counted separately", func() {
				So(testutil.ToFloat64(globalManager.extractRowsLoaded.WithLabelValues("order_per_city")), ShouldEqual, loaded+10)
				So(testutil.ToFloat64(globalManager.extractRowsRejected.WithLabelValues("order_per_city")), ShouldEqual, rejected+2)
			})
		})

		Convey("When recording aggregation anomalies", func() {
			ood := testutil.ToFloat64(globalManager.scoresOutOfDomain.WithLabelValues("products"))
			RecordOutOfDomain("products", 3)
			RecordOutOfDomain("products", 0)
			RecordEmptyBand("products", "Two-star")
			RecordNegativeCounts("products", -1)

			Convey("Then only positive amounts are added", func() {
				So(testutil.ToFloat64(globalManager.scoresOutOfDomain.WithLabelValues("products")), ShouldEqual, ood+3)
				So(testutil.ToFloat64(globalManager.emptyBands.WithLabelValues("products", "Two-star")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			So(func() {
				RecordHTTPRequest("/report", "GET", "200")
				RecordHTTPRequestDuration("/report", "GET", "200", 4.2)
				RecordErrorByType("extract_missing", "error")
				RecordErrorByEndpoint("/report", "GET", "extract_missing")
				RecordErrorLatency("app", "extract_missing", 1.1)
				RecordChartLatency("top-cities", 8)
				RecordRenderFailure()
			}, ShouldNotPanic)
		})

		Convey("When recording system metrics", func() {
			UpdateSystemMemoryUsage(1024)
			UpdateSystemGoroutineCount(7)
			RecordSystemGCPauseTime(0.3)

			Convey("Then the gauges hold the last value", func() {
				So(testutil.ToFloat64(globalManager.systemMemoryUsage), ShouldEqual, 1024)
				So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldEqual, 7)
			})
		})

		Convey("When recording is disabled", func() {
			SetEnabled(false)
			defer SetEnabled(true)
			before := testutil.ToFloat64(globalManager.renders.WithLabelValues("reviews"))
			RecordRender("reviews")

			Convey("Then business counters do not move", func() {
				So(testutil.ToFloat64(globalManager.renders.WithLabelValues("reviews")), ShouldEqual, before)
			})
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordRender("reviews")

		Convey("Then it exposes the dashboard metrics without Go runtime collectors", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			var names []string
			for _, f := range families {
				names = append(names, f.GetName())
			}
			joined := strings.Join(names, ",")
			So(joined, ShouldContainSubstring, "shopease_dashboard_renders_total")
			So(joined, ShouldNotContainSubstring, "go_goroutines")
			So(RefreshInterval(), ShouldEqual, defaultRefreshInterval)
		})
	})
}
