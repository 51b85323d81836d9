// Package geo maps named service-area locations to coordinates and
// computes a bounded similarity between two locations.
package geo

import (
	"math"
	"strings"
)

// DefaultLocation is used when a location name is missing or unknown.
const DefaultLocation = "gaza_center"

// defaultMaxDistance is the span, in degrees, beyond which two locations
// are considered completely dissimilar. Calibrated to the Gaza strip;
// override with WithMaxDistance when porting to another region.
const defaultMaxDistance = 0.5

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Model resolves location names and scores their proximity.
type Model struct {
	locations   map[string]Coordinate
	maxDistance float64
}

// New creates a location model covering the Gaza service area.
func New(opts ...Option) *Model {
	m := &Model{
		locations: map[string]Coordinate{
			"gaza_city":     {31.5017, 34.4668},
			"khan_yunis":    {31.3489, 34.3063},
			"rafah":         {31.2889, 34.2417},
			"deir_al_balah": {31.4181, 34.3511},
			"jabalya":       {31.5314, 34.4833},
			"beit_lahia":    {31.5469, 34.5069},
			"beit_hanoun":   {31.5394, 34.5361},
			"gaza_center":   {31.5017, 34.4668},
		},
		maxDistance: defaultMaxDistance,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Resolve returns the coordinates for a location name. Names are matched
// case-insensitively with spaces folded to underscores; unknown names
// resolve to the default location.
func (m *Model) Resolve(name string) Coordinate {
	key := normalize(name)
	if c, ok := m.locations[key]; ok {
		return c
	}
	return m.locations[DefaultLocation]
}

// Similarity returns a proximity score in [0,1]. Identical locations
// score 1; locations maxDistance or further apart score 0.
func (m *Model) Similarity(a, b string) float64 {
	ca := m.Resolve(a)
	cb := m.Resolve(b)

	distance := math.Hypot(ca.Lat-cb.Lat, ca.Lon-cb.Lon)
	return math.Max(0, 1-distance/m.maxDistance)
}

// Known reports whether a location name is in the coordinate table.
func (m *Model) Known(name string) bool {
	_, ok := m.locations[normalize(name)]
	return ok
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
