package reliability_test

import (
	"context"
	"testing"

	"github.com/Ayoubslh/Sanned/internal/domain/reliability"
	. "github.com/smartystreets/goconvey/convey"
)

func ptr(f float64) *float64 { return &f }

func TestTracker_Get(t *testing.T) {
	Convey("Given a fresh tracker", t, func() {
		tr := reliability.New()

		Convey("When reading an unseen helper", func() {
			first := tr.Get("helper-1")

			Convey("Then it returns the default score", func() {
				So(first, ShouldEqual, 0.7)
			})

			Convey("And repeated reads are idempotent", func() {
				So(tr.Get("helper-1"), ShouldEqual, first)
				So(tr.Get("helper-1"), ShouldEqual, first)
			})

			Convey("And the default is persisted", func() {
				So(tr.Count(), ShouldEqual, 1)
				So(tr.Snapshot()["helper-1"], ShouldEqual, 0.7)
			})
		})
	})

	Convey("Given a tracker with a custom default", t, func() {
		tr := reliability.New(reliability.WithDefaultScore(0.9))

		Convey("Then unseen helpers start at that default", func() {
			So(tr.Get("helper-2"), ShouldEqual, 0.9)
		})
	})

	Convey("Given a tracker seeded from a snapshot", t, func() {
		tr := reliability.New(reliability.WithSeedScores(map[string]float64{
			"seeded": 0.85,
			"wild":   3.0,
		}))

		Convey("Then seeded scores are served and clamped", func() {
			So(tr.Get("seeded"), ShouldEqual, 0.85)
			So(tr.Get("wild"), ShouldEqual, 1.0)
		})
	})
}

func TestTracker_Update(t *testing.T) {
	ctx := context.Background()

	Convey("Given a tracker at the 0.7 baseline", t, func() {
		tr := reliability.New()

		Convey("When a success with a fast response is reported", func() {
			rec := tr.Update(ctx, "7", true, ptr(1))

			Convey("Then the score gains the base and fast-response deltas", func() {
				So(tr.Get("7"), ShouldAlmostEqual, 0.77, 1e-9)
			})

			Convey("And the learning record captures the transition", func() {
				So(rec.HelperID, ShouldEqual, "7")
				So(rec.Successful, ShouldBeTrue)
				So(rec.OldReliability, ShouldEqual, 0.7)
			})
		})

		Convey("When a failure with a slow response is reported", func() {
			tr.Update(ctx, "7", false, ptr(30))

			Convey("Then the score loses both deltas", func() {
				So(tr.Get("7"), ShouldAlmostEqual, 0.58, 1e-9)
			})
		})

		Convey("When a success has no reported response time", func() {
			tr.Update(ctx, "7", true, nil)

			Convey("Then only the base delta applies", func() {
				So(tr.Get("7"), ShouldAlmostEqual, 0.75, 1e-9)
			})
		})

		Convey("When a failure pairs with a fast response", func() {
			tr.Update(ctx, "7", false, ptr(1))

			Convey("Then the deltas net out literally", func() {
				So(tr.Get("7"), ShouldAlmostEqual, 0.62, 1e-9)
			})
		})
	})

	Convey("Given repeated updates", t, func() {
		tr := reliability.New()

		Convey("Then the score never leaves its bounds", func() {
			for i := 0; i < 20; i++ {
				tr.Update(ctx, "up", true, ptr(1))
				tr.Update(ctx, "down", false, ptr(48))
			}
			So(tr.Get("up"), ShouldEqual, 1.0)
			So(tr.Get("down"), ShouldEqual, 0.1)
		})
	})
}

func TestLevel(t *testing.T) {
	Convey("Given reliability scores", t, func() {
		Convey("Then each maps to its band", func() {
			So(reliability.Level(0.95), ShouldEqual, "Excellent")
			So(reliability.Level(0.85), ShouldEqual, "Very Good")
			So(reliability.Level(0.7), ShouldEqual, "Good")
			So(reliability.Level(0.65), ShouldEqual, "Fair")
			So(reliability.Level(0.3), ShouldEqual, "Needs Improvement")
		})
	})
}
