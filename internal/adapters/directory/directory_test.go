package directory_test

import (
	"context"
	"testing"

	"github.com/Ayoubslh/Sanned/internal/adapters/directory"
	"github.com/Ayoubslh/Sanned/internal/domain/model"
	"github.com/Ayoubslh/Sanned/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func TestStore(t *testing.T) {
	Convey("Given an in-memory helper store", t, func() {
		s := directory.NewInMemoryStore()
		ctx := context.Background()

		Convey("When upserting and reading a helper", func() {
			err := s.Upsert(ctx, model.Candidate{
				ID:            "helper-1",
				Name:          "Amal",
				Location:      "rafah",
				Skills:        "medical",
				Role:          "sponsor",
				InServiceArea: true,
			})

			Convey("Then the helper round-trips", func() {
				So(err, ShouldBeNil)
				got, err := s.Get(ctx, "helper-1")
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Amal")
				So(s.Count(ctx), ShouldEqual, 1)
			})

			Convey("And upserting again replaces the record", func() {
				So(s.Upsert(ctx, model.Candidate{ID: "helper-1", Name: "Amal B", Role: "both", InServiceArea: true}), ShouldBeNil)
				got, _ := s.Get(ctx, "helper-1")
				So(got.Name, ShouldEqual, "Amal B")
				So(s.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When upserting without an id", func() {
			So(s.Upsert(ctx, model.Candidate{Name: "nameless"}), ShouldEqual, directory.ErrEmptyID)
		})

		Convey("When reading an unknown helper", func() {
			_, err := s.Get(ctx, "missing")
			So(err, ShouldEqual, directory.ErrNotFound)
		})
	})
}

func TestStore_ListEligible(t *testing.T) {
	Convey("Given helpers with mixed roles and service areas", t, func() {
		s := directory.NewInMemoryStore(directory.WithSeedCandidates([]model.Candidate{
			{ID: "a", Role: "sponsor", InServiceArea: true},
			{ID: "b", Role: "seeker_doer", InServiceArea: true},
			{ID: "c", Role: "both", InServiceArea: true},
			{ID: "d", Role: "seeker", InServiceArea: true},
			{ID: "e", Role: "sponsor", InServiceArea: false},
		}))

		Convey("When listing eligible helpers", func() {
			got, err := s.ListEligible(context.Background(), "")

			Convey("Then only in-area sponsors, doers and both qualify, sorted by id", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 3)
				So(got[0].ID, ShouldEqual, "a")
				So(got[1].ID, ShouldEqual, "b")
				So(got[2].ID, ShouldEqual, "c")
			})
		})

		Convey("When listing with an excluded requester", func() {
			got, err := s.ListEligible(context.Background(), "b")

			Convey("Then the requester never matches themselves", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 2)
				for _, c := range got {
					So(c.ID, ShouldNotEqual, "b")
				}
			})
		})
	})
}

func TestStore_SearchBySkill(t *testing.T) {
	Convey("Given helpers with different skills", t, func() {
		s := directory.NewInMemoryStore(directory.WithSeedCandidates([]model.Candidate{
			{ID: "a", Skills: "medical first_aid", Location: "rafah", Role: "sponsor", InServiceArea: true},
			{ID: "b", Skills: "medical", Location: "gaza_city", Role: "both", InServiceArea: true},
			{ID: "c", Skills: "farming", Location: "rafah", Role: "both", InServiceArea: true},
			{ID: "d", Skills: "medical", Location: "rafah", Role: "sponsor", InServiceArea: false},
		}))
		ctx := context.Background()

		Convey("Searching by skill matches case-insensitively, eligible only", func() {
			got, err := s.SearchBySkill(ctx, "MEDICAL", "")
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 2)
			So(got[0].ID, ShouldEqual, "a")
			So(got[1].ID, ShouldEqual, "b")
		})

		Convey("A location filter narrows the result", func() {
			got, err := s.SearchBySkill(ctx, "medical", "rafah")
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].ID, ShouldEqual, "a")
		})

		Convey("An empty skill is rejected", func() {
			_, err := s.SearchBySkill(ctx, "", "")
			So(err, ShouldEqual, directory.ErrEmptySkill)
		})
	})
}

func TestSources(t *testing.T) {
	ctx := context.Background()

	Convey("Given a persisted helper record with skill references", t, func() {
		lookup := func(id string) (string, bool) {
			names := map[string]string{"sk-1": "Medical Care", "sk-2": "transport"}
			n, ok := names[id]
			return n, ok
		}
		src := directory.RecordSource{
			Record: directory.HelperRecord{
				ID:            "helper-1",
				Name:          "Amal",
				Location:      "rafah",
				SkillIDs:      []string{"sk-1", "sk-2", "sk-unknown"},
				Role:          "sponsor",
				InServiceArea: true,
			},
			Skills: lookup,
		}

		Convey("Then skills resolve through the lookup, normalized", func() {
			c := src.Adapt(ctx)
			So(c.ID, ShouldEqual, "helper-1")
			So(c.Skills, ShouldEqual, "medical_care transport sk-unknown")
			So(c.Location, ShouldEqual, "rafah")
			So(c.AvgResponseTimeHours, ShouldEqual, 12.0)
		})
	})

	Convey("Given an ad-hoc map record", t, func() {
		src := directory.MapSource{Record: map[string]any{
			"id":       "helper-2",
			"name":     "Basim",
			"location": "gaza_city",
			"skills": []any{
				map[string]any{"name": "medical"},
				"first aid",
			},
			"role":                    "both",
			"in_service_area":         true,
			"avg_response_time_hours": 3,
		}}

		Convey("Then it adapts to a canonical candidate", func() {
			c := src.Adapt(ctx)
			So(c.ID, ShouldEqual, "helper-2")
			So(c.Skills, ShouldEqual, "medical first_aid")
			So(c.Role, ShouldEqual, "both")
			So(c.InServiceArea, ShouldBeTrue)
			So(c.AvgResponseTimeHours, ShouldEqual, 3.0)
		})
	})

	Convey("Given a candidate with omitted optional fields", t, func() {
		c := directory.Canonical(model.Candidate{
			ID:            "helper-9",
			Name:          "Omar",
			Skills:        "logistics",
			Role:          "sponsor",
			InServiceArea: true,
		})

		Convey("Then canonicalization fills location, response time and reliability", func() {
			So(c.Location, ShouldEqual, "gaza_center")
			So(c.AvgResponseTimeHours, ShouldEqual, 12.0)
			So(c.Reliability, ShouldEqual, 0.5)
			So(c.Skills, ShouldEqual, "logistics")
		})
	})

	Convey("Given a record that cannot be adapted", t, func() {
		src := directory.MapSource{Record: map[string]any{
			"id":   "helper-3",
			"name": "Dana",
			// a map cannot weakly decode into a bool
			"in_service_area": map[string]any{"nested": true},
		}}

		Convey("Then the minimal safe candidate comes back", func() {
			c := src.Adapt(ctx)
			So(c.ID, ShouldEqual, "helper-3")
			So(c.Name, ShouldEqual, "Dana")
			So(c.Location, ShouldEqual, "gaza_center")
			So(c.Skills, ShouldBeEmpty)
			So(c.InServiceArea, ShouldBeTrue)
			So(c.Reliability, ShouldEqual, 0.5)
			So(c.AvgResponseTimeHours, ShouldEqual, 12.0)
		})
	})
}
