package describe_test

import (
	"math"
	"testing"

	"github.com/okian/shopease/internal/domain/describe"
	"github.com/okian/shopease/internal/domain/review"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBox(t *testing.T) {
	Convey("Given a review-score sample", t, func() {
		values := []float64{4.0, 4.5, 5.0, 4.0, 4.5, 4.0, 4.5, 5.0, 1.0, math.NaN()}

		Convey("When computing box statistics", func() {
			b := describe.Box(values)

			Convey("Then NaN values are ignored", func() {
				So(b.Count, ShouldEqual, 9)
			})

			Convey("And the quartiles are ordered", func() {
				So(b.Q1, ShouldBeLessThanOrEqualTo, b.Median)
				So(b.Median, ShouldBeLessThanOrEqualTo, b.Q3)
				So(b.Median, ShouldBeBetweenOrEqual, 4.0, 4.5)
			})

			Convey("And the low score is reported as an outlier", func() {
				So(b.Outliers, ShouldResemble, []float64{1.0})
				So(b.Min, ShouldEqual, 4.0)
				So(b.Max, ShouldEqual, 5.0)
			})

			Convey("And the mean covers every finite value", func() {
				So(b.Mean, ShouldAlmostEqual, 36.5/9.0, 1e-9)
			})
		})
	})

	Convey("Given an even-length sample", t, func() {
		b := describe.Box([]float64{4, 1, 3, 2})

		Convey("Then quartiles interpolate between order statistics", func() {
			So(b.Q1, ShouldAlmostEqual, 1.75, 1e-12)
			So(b.Median, ShouldAlmostEqual, 2.5, 1e-12)
			So(b.Q3, ShouldAlmostEqual, 3.25, 1e-12)
			So(b.Min, ShouldEqual, 1)
			So(b.Max, ShouldEqual, 4)
		})
	})

	Convey("Given a single value", t, func() {
		b := describe.Box([]float64{4.2})

		Convey("Then every statistic equals it", func() {
			So(b.Count, ShouldEqual, 1)
			So(b.Min, ShouldEqual, 4.2)
			So(b.Max, ShouldEqual, 4.2)
			So(b.Median, ShouldEqual, 4.2)
			So(b.Outliers, ShouldBeEmpty)
		})
	})

	Convey("Given an empty sample", t, func() {
		b := describe.Box(nil)

		Convey("Then the count is zero", func() {
			So(b.Count, ShouldEqual, 0)
		})
	})

	Convey("Given a sample that is left untouched", t, func() {
		values := []float64{3, 1, 2}
		describe.Box(values)
		So(values, ShouldResemble, []float64{3, 1, 2})
	})
}

func TestMeanAndUplift(t *testing.T) {
	Convey("Given two sales samples", t, func() {
		detailed := describe.Mean([]float64{2, 4, 6})
		plain := describe.Mean([]float64{2, 2, 2, 2})

		Convey("Then the means are defined", func() {
			So(detailed, ShouldResemble, review.Average{Value: 4, Defined: true})
			So(plain.Value, ShouldEqual, 2)
		})

		Convey("And the uplift is relative to the second sample", func() {
			up := describe.Uplift(detailed, plain)
			So(up.Defined, ShouldBeTrue)
			So(up.Value, ShouldEqual, 100)
		})
	})

	Convey("Given an empty sample", t, func() {
		empty := describe.Mean(nil)

		Convey("Then its mean and any uplift against it are undefined", func() {
			So(empty.Defined, ShouldBeFalse)
			So(describe.Uplift(review.Average{Value: 1, Defined: true}, empty).Defined, ShouldBeFalse)
			So(describe.Uplift(empty, review.Average{Value: 1, Defined: true}).Defined, ShouldBeFalse)
		})
	})

	Convey("Given a zero baseline", t, func() {
		Convey("Then the uplift is undefined", func() {
			up := describe.Uplift(review.Average{Value: 1, Defined: true}, review.Average{Value: 0, Defined: true})
			So(up.Defined, ShouldBeFalse)
		})
	})
}
