// Package signal derives urgency and skill signals from free-text requests.
package signal

import "strings"

// Urgency is the coarse priority classification of a request.
type Urgency string

// Urgency levels, most to least pressing.
const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Weight returns the urgency multiplier applied to composite scores.
func (u Urgency) Weight() float64 {
	switch u {
	case UrgencyCritical:
		return 2.0
	case UrgencyHigh:
		return 1.5
	case UrgencyLow:
		return 0.7
	default:
		return 1.0
	}
}

// DefaultSkillTag is returned when no skill category matches the text.
const DefaultSkillTag = "general_help"

// Keyword tables. Matching is case-insensitive substring containment;
// the first set that matches wins, checked critical > high > low.
var (
	criticalKeywords = []string{"emergency", "urgent", "critical", "dying", "life threatening", "asap", "now"}
	highKeywords     = []string{"soon", "quickly", "fast", "today", "immediate"}
	lowKeywords      = []string{"when possible", "eventually", "sometime", "no rush"}
)

// skillCategory pairs a tag with the keywords that imply it.
// Order is fixed; extracted tags preserve it.
type skillCategory struct {
	tag      string
	keywords []string
}

var skillCategories = []skillCategory{
	{"medical", []string{"doctor", "medicine", "health", "sick", "injury", "hospital", "treatment"}},
	{"food", []string{"hungry", "eat", "meal", "cooking", "nutrition", "bread"}},
	{"transport", []string{"ride", "car", "transport", "move", "delivery", "vehicle"}},
	{"shelter", []string{"house", "home", "shelter", "roof", "building"}},
	{"education", []string{"school", "teach", "learn", "student", "book"}},
	{"tech", []string{"computer", "internet", "phone", "repair", "technical"}},
	{"legal", []string{"law", "legal", "document", "paperwork", "rights"}},
	{"childcare", []string{"baby", "child", "kid", "childcare", "children"}},
}

// DetectUrgency classifies the combined title and description text.
func DetectUrgency(title, description string) Urgency {
	text := strings.ToLower(title + " " + description)

	if containsAny(text, criticalKeywords) {
		return UrgencyCritical
	}
	if containsAny(text, highKeywords) {
		return UrgencyHigh
	}
	if containsAny(text, lowKeywords) {
		return UrgencyLow
	}
	return UrgencyMedium
}

// ExtractSkillTags returns the space-joined skill tags implied by the text,
// in the fixed category order, or DefaultSkillTag when nothing matches.
func ExtractSkillTags(title, description string) string {
	text := strings.ToLower(title + " " + description)

	var tags []string
	for _, cat := range skillCategories {
		if containsAny(text, cat.keywords) {
			tags = append(tags, cat.tag)
		}
	}

	if len(tags) == 0 {
		return DefaultSkillTag
	}
	return strings.Join(tags, " ")
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
