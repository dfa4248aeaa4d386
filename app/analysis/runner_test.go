package analysis

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Givikap120/droidguard/app/settings"
	. "github.com/smartystreets/goconvey/convey"
)

func counterValue(m *Metrics, name, label string) float64 {
	families, _ := m.Gatherer().Gather()

	for _, f := range families {
		if f.GetName() != name {
			continue
		}

		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetValue() == label {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}

	return 0
}

func TestRunner(t *testing.T) {
	Convey("Given a settings file and two jobs", t, func() {
		dir := t.TempDir()

		s := settings.Default()
		s.Workers = 2
		s.MetricsPath = filepath.Join(dir, "droidguard.prom")

		cache, err := OpenCache(filepath.Join(dir, "cache.db"))
		So(err, ShouldBeNil)

		defer cache.Close()

		jobs := []string{writeFixture(t, dir, "first", 1000), writeFixture(t, dir, "second", 1500)}

		Convey("a clean single finger play gets no penalty", func() {
			reports := NewRunner(s, cache, quietLogger()).Run(context.Background(), jobs)

			So(reports, ShouldHaveLength, 2)

			for _, r := range reports {
				So(r.Err, ShouldBeNil)
				So(r.Cached, ShouldBeFalse)
				So(r.Objects, ShouldEqual, fixtureObjects)
				So(r.Slots, ShouldEqual, 1)
				So(r.ThreeFingerPenalty, ShouldEqual, 1)
				So(r.SliderCheeseAim, ShouldEqual, 1)
				So(r.TwoHanded, ShouldBeFalse)
				So(r.PenalisedPP, ShouldAlmostEqual, r.RawPP, 1e-9)
			}

			So(reports[0].Job, ShouldEqual, "first")
			So(reports[1].Job, ShouldEqual, "second")
		})

		Convey("a second run is served from the cache", func() {
			NewRunner(s, cache, quietLogger()).Run(context.Background(), jobs)

			runner := NewRunner(s, cache, quietLogger())
			reports := runner.Run(context.Background(), jobs)

			So(reports[0].Err, ShouldBeNil)
			So(reports[0].Cached, ShouldBeTrue)
			So(reports[0].Job, ShouldEqual, "first")
			So(counterValue(runner.Metrics(), "droidguard_jobs_total", outcomeCached), ShouldEqual, 2)
		})

		Convey("changing a threshold invalidates the cache", func() {
			NewRunner(s, cache, quietLogger()).Run(context.Background(), jobs)

			s.Thresholds.MinOccurrence = 9

			reports := NewRunner(s, cache, quietLogger()).Run(context.Background(), jobs)
			So(reports[0].Cached, ShouldBeFalse)
		})

		Convey("a broken job fails alone", func() {
			runner := NewRunner(s, nil, quietLogger())
			reports := runner.Run(context.Background(), append(jobs, filepath.Join(dir, "missing.yaml")))

			So(reports[0].Err, ShouldBeNil)
			So(reports[2].Err, ShouldNotBeNil)
			So(counterValue(runner.Metrics(), "droidguard_jobs_total", outcomeFailed), ShouldEqual, 1)
			So(counterValue(runner.Metrics(), "droidguard_jobs_total", outcomeAnalysed), ShouldEqual, 2)
		})

		Convey("metrics are written as a textfile", func() {
			runner := NewRunner(s, nil, quietLogger())
			runner.Run(context.Background(), jobs)

			content, err := os.ReadFile(s.MetricsPath)

			So(err, ShouldBeNil)
			So(string(content), ShouldContainSubstring, "droidguard_jobs_total")
			So(string(content), ShouldContainSubstring, runner.RunID())
		})

		Convey("the report table lists every job", func() {
			reports := NewRunner(s, nil, quietLogger()).Run(context.Background(), append(jobs, filepath.Join(dir, "missing.yaml")))

			var buf bytes.Buffer
			RenderReports(&buf, reports)

			So(buf.String(), ShouldContainSubstring, "first")
			So(buf.String(), ShouldContainSubstring, "second")
			So(buf.String(), ShouldContainSubstring, "error:")
		})
	})
}
