package simulate

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// randomFloatDivisor scales crypto/rand integers into [0,1).
const randomFloatDivisor = 1000000

var locations = []string{
	"gaza_city", "khan_yunis", "rafah", "deir_al_balah",
	"jabalya", "beit_lahia", "beit_hanoun", "gaza_center",
}

var roles = []string{"sponsor", "seeker_doer", "both"}

var skillProfiles = []string{
	"medical first_aid",
	"medical nursing",
	"food cooking nutrition",
	"transport delivery driving",
	"shelter construction repair",
	"education teaching tutoring",
	"tech phone_repair internet",
	"legal paperwork documentation",
	"childcare babysitting",
	"general_help",
}

var firstNames = []string{
	"Amal", "Basim", "Dana", "Fares", "Huda", "Karim",
	"Lina", "Mahmoud", "Nour", "Omar", "Rania", "Sami",
}

// requestTemplates pair a title with a description; the matcher infers
// urgency and skills from this text.
var requestTemplates = []MatchRequest{
	{Title: "Emergency: bleeding injury", Description: "My neighbor is hurt and needs urgent treatment at a hospital"},
	{Title: "Need a doctor today", Description: "My child is sick with fever, need medicine quickly"},
	{Title: "Family is hungry", Description: "We have no bread or meal for the children today"},
	{Title: "Need a ride to the clinic", Description: "Looking for a car to transport my mother for treatment soon"},
	{Title: "Roof damaged", Description: "Our house needs shelter repair when possible, no rush"},
	{Title: "Help with school work", Description: "Student needs someone to teach math, sometime this week"},
	{Title: "Phone repair needed", Description: "My phone broke and I need internet access for paperwork"},
	{Title: "Legal documents", Description: "Need help with rights paperwork and official documents"},
	{Title: "Babysitter needed fast", Description: "Need someone for my baby and kids today"},
	{Title: "General help requested", Description: "Anything would be appreciated, eventually"},
}

// randomFloat returns a random float64 in [0,1) using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func pick[T any](items []T) T {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(items))))
	return items[n.Int64()]
}

// generateHelpers builds a roster of plausible helper profiles.
func generateHelpers(n int) []Helper {
	helpers := make([]Helper, n)
	for i := range helpers {
		helpers[i] = Helper{
			ID:                   uuid.New().String(),
			Name:                 fmt.Sprintf("%s %d", pick(firstNames), i),
			Location:             pick(locations),
			Skills:               pick(skillProfiles),
			Role:                 pick(roles),
			InServiceArea:        randomFloat() > 0.1,
			AvgResponseTimeHours: 1 + randomFloat()*23,
		}
	}
	return helpers
}

// generateRequests builds help requests from the templates.
func generateRequests(n int) []MatchRequest {
	requests := make([]MatchRequest, n)
	for i := range requests {
		tpl := pick(requestTemplates)
		requests[i] = MatchRequest{
			RequestID:   uuid.New().String(),
			Title:       tpl.Title,
			Description: tpl.Description,
			Location:    pick(locations),
			RequesterID: uuid.New().String(),
		}
	}
	return requests
}

// generateOutcomes fabricates outcome reports for matched helpers.
// Roughly three quarters succeed; response times spread over a day.
func generateOutcomes(helperIDs []string, n int) []Outcome {
	if len(helperIDs) == 0 {
		return nil
	}
	outcomes := make([]Outcome, n)
	for i := range outcomes {
		rt := randomFloat() * 30
		outcomes[i] = Outcome{
			OutcomeID:         uuid.New().String(),
			HelperID:          pick(helperIDs),
			Successful:        randomFloat() < 0.75,
			ResponseTimeHours: &rt,
		}
	}
	return outcomes
}
