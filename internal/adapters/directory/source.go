package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/Ayoubslh/Sanned/internal/domain/geo"
	"github.com/Ayoubslh/Sanned/internal/domain/model"
	"github.com/Ayoubslh/Sanned/internal/domain/reliability"
	"github.com/Ayoubslh/Sanned/pkg/logger"
	"github.com/Ayoubslh/Sanned/pkg/metrics"
)

// defaultAvgResponseHours is assumed when a helper has never reported
// response times.
const defaultAvgResponseHours = 12.0

// Source adapts one raw helper representation into the canonical
// candidate. Adapt never fails: unreadable records degrade to the
// minimal safe candidate so one bad row cannot sink a matching call.
type Source interface {
	Adapt(ctx context.Context) model.Candidate
}

// SkillLookup resolves a skill id to its display name.
type SkillLookup func(id string) (string, bool)

// HelperRecord is the persisted helper-profile shape, with skills held
// as references into a separate skill table.
type HelperRecord struct {
	ID                   string
	Name                 string
	Location             string
	SkillIDs             []string
	Role                 string
	InServiceArea        bool
	AvgResponseTimeHours float64
}

// RecordSource adapts a persisted helper record, resolving skill ids
// through the lookup. Unresolvable ids are kept verbatim rather than
// dropped.
type RecordSource struct {
	Record HelperRecord
	Skills SkillLookup
}

func (s RecordSource) Adapt(ctx context.Context) model.Candidate {
	rec := s.Record
	if rec.ID == "" {
		return safeCandidate(ctx, "", rec.Name)
	}

	names := make([]string, 0, len(rec.SkillIDs))
	for _, id := range rec.SkillIDs {
		if s.Skills != nil {
			if name, ok := s.Skills(id); ok {
				names = append(names, normalizeSkill(name))
				continue
			}
		}
		names = append(names, normalizeSkill(id))
	}

	c := model.Candidate{
		ID:                   rec.ID,
		Name:                 rec.Name,
		Location:             rec.Location,
		Skills:               strings.Join(names, " "),
		Role:                 rec.Role,
		InServiceArea:        rec.InServiceArea,
		AvgResponseTimeHours: rec.AvgResponseTimeHours,
	}
	return Canonical(c)
}

// mapRecord is the decode target for ad-hoc map-shaped helper rows.
type mapRecord struct {
	ID                   string  `mapstructure:"id"`
	Name                 string  `mapstructure:"name"`
	Location             string  `mapstructure:"location"`
	Skills               any     `mapstructure:"skills"`
	Role                 string  `mapstructure:"role"`
	InServiceArea        bool    `mapstructure:"in_service_area"`
	AvgResponseTimeHours float64 `mapstructure:"avg_response_time_hours"`
}

// MapSource adapts an ad-hoc map[string]any helper row, as produced by
// upstream JSON payloads or fixture files.
type MapSource struct {
	Record map[string]any
}

func (s MapSource) Adapt(ctx context.Context) model.Candidate {
	var rec mapRecord
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &rec,
		WeaklyTypedInput: true,
	})
	if err == nil {
		err = decoder.Decode(s.Record)
	}
	if err != nil {
		id, _ := s.Record["id"].(string)
		name, _ := s.Record["name"].(string)
		return safeCandidate(ctx, id, name)
	}

	c := model.Candidate{
		ID:                   rec.ID,
		Name:                 rec.Name,
		Location:             rec.Location,
		Skills:               flattenSkills(rec.Skills),
		Role:                 rec.Role,
		InServiceArea:        rec.InServiceArea,
		AvgResponseTimeHours: rec.AvgResponseTimeHours,
	}
	if c.ID == "" {
		return safeCandidate(ctx, "", c.Name)
	}
	return Canonical(c)
}

// flattenSkills accepts the skill shapes seen in the wild: a
// space-joined string, a list of strings, or a list of {name: ...}
// objects.
func flattenSkills(v any) string {
	switch skills := v.(type) {
	case string:
		return normalizeSkill(skills)
	case []string:
		out := make([]string, 0, len(skills))
		for _, s := range skills {
			out = append(out, normalizeSkill(s))
		}
		return strings.Join(out, " ")
	case []any:
		out := make([]string, 0, len(skills))
		for _, item := range skills {
			switch s := item.(type) {
			case string:
				out = append(out, normalizeSkill(s))
			case map[string]any:
				if name, ok := s["name"].(string); ok {
					out = append(out, normalizeSkill(name))
				}
			}
		}
		return strings.Join(out, " ")
	default:
		return ""
	}
}

// normalizeSkill lowercases and joins multi-word skill names so they
// tokenize as a single term.
func normalizeSkill(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// safeCandidate is the fallback for records that cannot be adapted.
func safeCandidate(ctx context.Context, id, name string) model.Candidate {
	logger.Get().Named("directory").Warn(ctx, "unadaptable helper record, using safe defaults",
		logger.String("helperID", id),
	)
	metrics.RecordErrorByComponent("directory", "adapt_failed")

	if name == "" {
		name = fmt.Sprintf("Helper %s", id)
	}
	return model.Candidate{
		ID:                   id,
		Name:                 name,
		Location:             geo.DefaultLocation,
		Role:                 "both",
		InServiceArea:        true,
		AvgResponseTimeHours: defaultAvgResponseHours,
		Reliability:          reliability.UnscoredDefault(),
	}
}

// Canonical fills the gaps a well-formed record may still leave. Every
// candidate entering the store must pass through it, so an omitted
// response time or location never skews scoring.
func Canonical(c model.Candidate) model.Candidate {
	if c.Location == "" {
		c.Location = geo.DefaultLocation
	}
	if c.AvgResponseTimeHours <= 0 {
		c.AvgResponseTimeHours = defaultAvgResponseHours
	}
	if c.Reliability <= 0 {
		c.Reliability = reliability.UnscoredDefault()
	}
	return c
}
