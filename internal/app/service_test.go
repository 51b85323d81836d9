package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ayoubslh/Sanned/internal/adapters/directory"
	service "github.com/Ayoubslh/Sanned/internal/app"
	"github.com/Ayoubslh/Sanned/internal/domain/model"
	"github.com/Ayoubslh/Sanned/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func ptr(f float64) *float64 { return &f }

func seededStore() directory.Store {
	return directory.NewInMemoryStore(directory.WithSeedCandidates([]model.Candidate{
		{
			ID: "helper-1", Name: "Medic", Location: "gaza_city",
			Skills: "medical first_aid", Role: "sponsor", InServiceArea: true,
			AvgResponseTimeHours: 2,
		},
		{
			ID: "helper-2", Name: "Driver", Location: "rafah",
			Skills: "transport delivery", Role: "both", InServiceArea: true,
			AvgResponseTimeHours: 6,
		},
		{
			ID: "requester", Name: "Self", Location: "gaza_city",
			Skills: "medical", Role: "both", InServiceArea: true,
		},
	}))
}

func startService(opts ...service.Option) *service.Service {
	s := service.New(opts...)
	_ = s.Start(context.Background())
	return s
}

func TestService_Match(t *testing.T) {
	Convey("Given a started service with seeded helpers", t, func() {
		s := startService(service.WithStore(seededStore()))
		defer s.Stop()
		ctx := context.Background()

		Convey("When matching a medical emergency", func() {
			resp := s.Match(ctx, model.Request{
				Title:       "Emergency: injury needs a doctor",
				Description: "urgent treatment needed",
				Location:    "gaza_city",
				RequesterID: "requester",
			})

			Convey("Then the medic wins and the requester is excluded", func() {
				So(resp.Success, ShouldBeTrue)
				So(resp.UrgencyDetected, ShouldEqual, "critical")
				So(resp.RequestID, ShouldNotBeEmpty)
				So(resp.Matches, ShouldHaveLength, 2)
				So(resp.Matches[0].UserID, ShouldEqual, "helper-1")
				for _, m := range resp.Matches {
					So(m.UserID, ShouldNotEqual, "requester")
				}
			})
		})

		Convey("When no helper is eligible", func() {
			empty := startService(service.WithStore(directory.NewInMemoryStore()))
			defer empty.Stop()

			resp := empty.Match(ctx, model.Request{Title: "help", Description: "anything"})

			Convey("Then the response is a structured no-match", func() {
				So(resp.Success, ShouldBeFalse)
				So(resp.Message, ShouldEqual, "No suitable helpers found")
				So(resp.Matches, ShouldBeEmpty)
			})
		})
	})
}

func TestService_RecordOutcome(t *testing.T) {
	Convey("Given a started service", t, func() {
		s := startService(service.WithStore(seededStore()), service.WithWorkerCount(1))
		defer s.Stop()
		ctx := context.Background()

		Convey("When reporting a fast successful outcome", func() {
			status, err := s.RecordOutcome(ctx, model.Outcome{
				OutcomeID:         "out-1",
				HelperID:          "helper-1",
				Successful:        true,
				ResponseTimeHours: ptr(1.0),
			})

			Convey("Then it is accepted", func() {
				So(err, ShouldBeNil)
				So(status, ShouldEqual, service.OutcomeAccepted)
			})

			Convey("And the helper's reliability eventually rises", func() {
				deadline := time.Now().Add(2 * time.Second)
				for time.Now().Before(deadline) {
					if s.Reliability(ctx, "helper-1").Score > 0.7 {
						break
					}
					time.Sleep(5 * time.Millisecond)
				}
				rep := s.Reliability(ctx, "helper-1")
				So(rep.Score, ShouldAlmostEqual, 0.77, 0.0001)
				So(rep.Percentage, ShouldEqual, "77%")
				So(rep.Level, ShouldEqual, "Good")
			})

			Convey("And reporting the same outcome id again is a duplicate", func() {
				status, err := s.RecordOutcome(ctx, model.Outcome{
					OutcomeID: "out-1",
					HelperID:  "helper-1",
				})
				So(err, ShouldBeNil)
				So(status, ShouldEqual, service.OutcomeDuplicate)
			})
		})

		Convey("When the helper id is missing", func() {
			status, err := s.RecordOutcome(ctx, model.Outcome{OutcomeID: "out-2"})

			Convey("Then the report is rejected", func() {
				So(errors.Is(err, service.ErrMissingHelperID), ShouldBeTrue)
				So(status, ShouldEqual, service.OutcomeRejected)
			})
		})

		Convey("When the outcome id is omitted", func() {
			st1, err1 := s.RecordOutcome(ctx, model.Outcome{HelperID: "helper-2"})
			st2, err2 := s.RecordOutcome(ctx, model.Outcome{HelperID: "helper-2"})

			Convey("Then each report gets its own identity", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(st1, ShouldEqual, service.OutcomeAccepted)
				So(st2, ShouldEqual, service.OutcomeAccepted)
			})
		})
	})
}

func TestService_Directory(t *testing.T) {
	Convey("Given a started service", t, func() {
		s := startService(service.WithStore(seededStore()))
		defer s.Stop()
		ctx := context.Background()

		Convey("When upserting a new helper", func() {
			err := s.UpsertHelper(ctx, model.Candidate{
				ID: "helper-3", Name: "Teacher", Location: "rafah",
				Skills: "education tutoring", Role: "sponsor", InServiceArea: true,
			})

			Convey("Then the helper becomes searchable", func() {
				So(err, ShouldBeNil)
				found, err := s.SearchHelpers(ctx, "education", "")
				So(err, ShouldBeNil)
				So(found, ShouldHaveLength, 1)
				So(found[0].ID, ShouldEqual, "helper-3")
			})
		})

		Convey("When upserting a helper that omits optional fields", func() {
			err := s.UpsertHelper(ctx, model.Candidate{
				ID: "helper-4", Name: "Runner",
				Skills: "transport delivery", Role: "sponsor", InServiceArea: true,
			})

			Convey("Then stats report the canonical defaults", func() {
				So(err, ShouldBeNil)
				stats, err := s.HelperStats(ctx, "helper-4")
				So(err, ShouldBeNil)
				So(stats.Location, ShouldEqual, "gaza_center")
				So(stats.AvgResponseTimeHours, ShouldEqual, 12.0)
			})

			Convey("And it scores no better than an identical helper with explicit defaults", func() {
				So(err, ShouldBeNil)
				err := s.UpsertHelper(ctx, model.Candidate{
					ID: "helper-5", Name: "Runner Two", Location: "gaza_center",
					Skills: "transport delivery", Role: "sponsor", InServiceArea: true,
					AvgResponseTimeHours: 12.0,
				})
				So(err, ShouldBeNil)

				resp := s.Match(ctx, model.Request{
					Title:       "delivery help",
					Description: "need urgent delivery of supplies",
					Location:    "gaza_city",
				})
				scores := map[string]float64{}
				for _, m := range resp.Matches {
					scores[m.UserID] = m.MatchScore
				}
				So(scores["helper-4"], ShouldEqual, scores["helper-5"])
			})
		})

		Convey("When reading helper stats", func() {
			stats, err := s.HelperStats(ctx, "helper-1")

			Convey("Then the profile and reliability come back together", func() {
				So(err, ShouldBeNil)
				So(stats.Name, ShouldEqual, "Medic")
				So(stats.Reliability.Score, ShouldEqual, 0.7)
				So(stats.Reliability.Level, ShouldEqual, "Good")
			})
		})

		Convey("When reading stats for an unknown helper", func() {
			_, err := s.HelperStats(ctx, "nobody")
			So(errors.Is(err, directory.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a started service", t, func() {
		s := startService(service.WithStore(seededStore()), service.WithTopK(3))
		defer s.Stop()

		Convey("Then stats reflect configuration and state", func() {
			stats := s.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["topK"], ShouldEqual, 3)
			So(stats["totalHelpers"], ShouldEqual, 3)
			So(stats["queueLength"], ShouldEqual, 0)
		})
	})
}
