// Package geo maps named service-area locations to coordinates.
package geo

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithMaxDistance sets the distance, in degrees, at which similarity
// reaches zero.
func WithMaxDistance(degrees float64) Option {
	return func(m *Model) {
		if degrees > 0 {
			m.maxDistance = degrees
		}
	}
}

// WithLocation adds or replaces a named location in the coordinate table.
func WithLocation(name string, lat, lon float64) Option {
	return func(m *Model) {
		m.locations[normalize(name)] = Coordinate{Lat: lat, Lon: lon}
	}
}
