package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Ayoubslh/Sanned/internal/domain/engine"
	"github.com/Ayoubslh/Sanned/internal/domain/model"
	"github.com/Ayoubslh/Sanned/internal/domain/relevance"
	"github.com/Ayoubslh/Sanned/internal/domain/reliability"
	"github.com/Ayoubslh/Sanned/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func ptr(f float64) *float64 { return &f }

func emergencyRequest() model.Request {
	return model.Request{
		ID:          "req-1",
		Title:       "Emergency: serious injury",
		Description: "My neighbor needs treatment at a hospital urgently",
		Location:    "gaza_center",
		RequesterID: "seeker-1",
	}
}

func TestEngine_Rank(t *testing.T) {
	Convey("Given a critical medical request and two candidates", t, func() {
		e := engine.New()
		ctx := context.Background()

		candidates := []model.Candidate{
			{
				ID:                   "helper-far",
				Name:                 "Farmer",
				Location:             "rafah",
				Skills:               "farming construction",
				AvgResponseTimeHours: 20,
			},
			{
				ID:                   "helper-near",
				Name:                 "Medic",
				Location:             "gaza_center",
				Skills:               "medical treatment first_aid",
				AvgResponseTimeHours: 2,
			},
		}

		Convey("When ranking", func() {
			matches := e.Rank(ctx, emergencyRequest(), candidates)

			Convey("Then the nearby medic ranks first", func() {
				So(matches, ShouldHaveLength, 2)
				So(matches[0].CandidateID, ShouldEqual, "helper-near")
				So(matches[0].Score, ShouldBeGreaterThan, matches[1].Score)
			})

			Convey("And explanations carry the detected signals", func() {
				So(matches[0].Explanation.Mode, ShouldEqual, engine.ModePrimary)
				So(matches[0].Explanation.UrgencyDetected, ShouldEqual, "critical")
				So(matches[0].Explanation.SkillsNeeded, ShouldEqual, "medical")
				So(matches[0].Explanation.SkillMatch, ShouldBeGreaterThan, 0)
				So(matches[0].Explanation.LocationMatch, ShouldEqual, 1.0)
			})

			Convey("And the critical multiplier can push scores past 1", func() {
				// Factors sum to at most 1 before the x2 urgency weight.
				So(matches[0].Score, ShouldBeGreaterThan, 1.0)
				So(matches[0].Score, ShouldBeLessThanOrEqualTo, 2.0)
			})

			Convey("And a history entry is recorded", func() {
				history := e.History()
				So(history, ShouldHaveLength, 1)
				So(history[0].RequestID, ShouldEqual, "req-1")
				So(history[0].MatchesFound, ShouldEqual, 2)
				So(history[0].Urgency, ShouldEqual, "critical")
				So(history[0].TopScore, ShouldEqual, matches[0].Score)
			})
		})
	})

	Convey("Given no candidates", t, func() {
		e := engine.New()

		Convey("Then ranking yields nothing and records no history", func() {
			So(e.Rank(context.Background(), emergencyRequest(), nil), ShouldBeNil)
			So(e.History(), ShouldBeEmpty)
		})
	})

	Convey("Given more candidates than the cap", t, func() {
		e := engine.New(engine.WithTopK(2))

		candidates := make([]model.Candidate, 6)
		for i := range candidates {
			candidates[i] = model.Candidate{
				ID:       "helper-" + strings.Repeat("x", i+1),
				Location: "gaza_center",
				Skills:   "medical",
			}
		}

		Convey("Then only the top K come back", func() {
			matches := e.Rank(context.Background(), emergencyRequest(), candidates)
			So(matches, ShouldHaveLength, 2)
		})
	})

	Convey("Given candidates with identical scores", t, func() {
		e := engine.New()

		candidates := []model.Candidate{
			{ID: "first", Location: "khan_yunis", Skills: "medical", AvgResponseTimeHours: 12},
			{ID: "second", Location: "khan_yunis", Skills: "medical", AvgResponseTimeHours: 12},
		}

		Convey("Then input order is preserved", func() {
			matches := e.Rank(context.Background(), emergencyRequest(), candidates)
			So(matches[0].Score, ShouldEqual, matches[1].Score)
			So(matches[0].CandidateID, ShouldEqual, "first")
			So(matches[1].CandidateID, ShouldEqual, "second")
		})
	})
}

func TestEngine_RankDegraded(t *testing.T) {
	Convey("Given a vectorizer that cannot build a vocabulary", t, func() {
		v := relevance.NewVectorizer(relevance.WithStopWords([]string{
			"general_help", "farming", "sewing",
		}))
		e := engine.New(engine.WithVectorizer(v))

		req := model.Request{
			ID:          "req-2",
			Title:       "Help please",
			Description: "Anything welcome",
			Location:    "rafah",
		}
		candidates := []model.Candidate{
			{ID: "helper-a", Location: "rafah", Skills: "farming"},
			{ID: "helper-b", Location: "jabalya", Skills: "sewing"},
		}

		Convey("When ranking", func() {
			matches := e.Rank(context.Background(), req, candidates)

			Convey("Then degraded scoring still produces an ordering", func() {
				So(matches, ShouldHaveLength, 2)
				So(matches[0].CandidateID, ShouldEqual, "helper-a")
				So(matches[0].Explanation.Mode, ShouldEqual, engine.ModeDegraded)
			})

			Convey("And the degraded formula holds for the co-located helper", func() {
				// location 1.0 x 0.7 + reliability 0.7 x 0.3, medium urgency x1.
				So(matches[0].Score, ShouldAlmostEqual, 0.91, 0.0001)
			})
		})
	})
}

func TestEngine_ProcessRequest(t *testing.T) {
	Convey("Given an engine and scorable candidates", t, func() {
		e := engine.New()

		candidates := []model.Candidate{
			{ID: "helper-1", Name: "Medic", Location: "gaza_center", Skills: "medical", AvgResponseTimeHours: 2},
		}

		Convey("When processing a request", func() {
			resp := e.ProcessRequest(context.Background(), emergencyRequest(), candidates)

			Convey("Then the response is fully populated", func() {
				So(resp.Success, ShouldBeTrue)
				So(resp.RequestID, ShouldEqual, "req-1")
				So(resp.UrgencyDetected, ShouldEqual, "critical")
				So(resp.ProcessedAt, ShouldNotBeEmpty)
				So(resp.Matches, ShouldHaveLength, 1)
			})

			Convey("And the match carries presentation fields", func() {
				m := resp.Matches[0]
				So(m.UserID, ShouldEqual, "helper-1")
				So(m.UserName, ShouldEqual, "Medic")
				So(m.Reliability, ShouldEqual, "70%")
				So(m.MatchScore, ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given no candidates", t, func() {
		e := engine.New()

		Convey("Then the response is a structured no-match", func() {
			resp := e.ProcessRequest(context.Background(), emergencyRequest(), nil)
			So(resp.Success, ShouldBeFalse)
			So(resp.Message, ShouldEqual, "No suitable helpers found")
			So(resp.Matches, ShouldBeEmpty)
		})
	})
}

func TestEngine_LearnFromOutcome(t *testing.T) {
	Convey("Given an engine with a shared tracker", t, func() {
		tr := reliability.New()
		e := engine.New(engine.WithTracker(tr))
		ctx := context.Background()

		Convey("When learning from a fast success", func() {
			e.LearnFromOutcome(ctx, model.Outcome{
				OutcomeID:         "out-1",
				HelperID:          "helper-1",
				Successful:        true,
				ResponseTimeHours: ptr(1.0),
			})

			Convey("Then the helper's reliability rises", func() {
				So(tr.Get("helper-1"), ShouldAlmostEqual, 0.77, 0.0001)
			})

			Convey("And subsequent ranking uses the new score", func() {
				candidates := []model.Candidate{
					{ID: "helper-1", Location: "gaza_center", Skills: "medical"},
					{ID: "helper-2", Location: "gaza_center", Skills: "medical"},
				}
				matches := e.Rank(ctx, emergencyRequest(), candidates)
				So(matches[0].CandidateID, ShouldEqual, "helper-1")
				So(matches[0].Explanation.UserReliability, ShouldEqual, 0.77)
			})
		})

		Convey("When the outcome has no helper id", func() {
			e.LearnFromOutcome(ctx, model.Outcome{OutcomeID: "out-2"})

			Convey("Then nothing is recorded", func() {
				So(tr.Count(), ShouldEqual, 0)
			})
		})
	})
}
