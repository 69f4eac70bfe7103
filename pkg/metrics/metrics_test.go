package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManager(t *testing.T) {
	Convey("Given a metrics manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test"),
			WithSubsystem("batch"),
			WithHistogramBuckets([]float64{0.1, 1}),
			WithPrometheusRegistry(registry),
		)
		So(m.Registry(), ShouldEqual, registry)

		Convey("When recording processed and skipped reports", func() {
			m.RecordProcessed(20*time.Millisecond, 12)
			m.RecordProcessed(40*time.Millisecond, 8)
			m.RecordSkipped()

			Convey("Then the counters should reflect them", func() {
				So(testutil.ToFloat64(m.reportsProcessed), ShouldEqual, 2)
				So(testutil.ToFloat64(m.reportsSkipped), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.processingDuration), ShouldEqual, 1)
			})
		})

		Convey("When recording failures by code", func() {
			m.RecordFailure("missing_player_reference")
			m.RecordFailure("missing_player_reference")
			m.RecordFailure("unknown")

			Convey("Then each code should have its own series", func() {
				So(testutil.ToFloat64(m.reportsFailed.WithLabelValues("missing_player_reference")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.reportsFailed.WithLabelValues("unknown")), ShouldEqual, 1)
			})
		})

		Convey("When recording merged damages", func() {
			m.RecordDamagesMerged(3)
			m.RecordDamagesMerged(0)
			m.RecordDamagesMerged(-2)

			Convey("Then only positive counts should be added", func() {
				So(testutil.ToFloat64(m.damagesMerged), ShouldEqual, 3)
			})
		})

		Convey("When writing the textfile", func() {
			m.RecordProcessed(time.Millisecond, 2)
			path := filepath.Join(t.TempDir(), "mcreports.prom")
			err := m.WriteTextfile(path)

			Convey("Then it should contain the namespaced metrics", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "test_batch_reports_processed_total 1")
			})
		})

		Convey("When writing without a path", func() {
			err := m.WriteTextfile("")

			Convey("Then it should refuse", func() {
				So(errors.Is(err, ErrNoTextfile), ShouldBeTrue)
			})
		})
	})
}

func TestDefaultManagerUsesPrivateRegistry(t *testing.T) {
	Convey("Given two managers with default options", t, func() {
		Convey("Then creating both should not panic on duplicate registration", func() {
			So(func() {
				NewManager()
				NewManager()
			}, ShouldNotPanic)
		})
	})
}
