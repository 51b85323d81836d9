package geo_test

import (
	"testing"

	"github.com/Ayoubslh/Sanned/internal/domain/geo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestModel_Similarity(t *testing.T) {
	Convey("Given the default Gaza location model", t, func() {
		m := geo.New()

		Convey("Then self-similarity is maximal for known names", func() {
			So(m.Similarity("gaza_city", "gaza_city"), ShouldEqual, 1.0)
			So(m.Similarity("rafah", "rafah"), ShouldEqual, 1.0)
		})

		Convey("And self-similarity is maximal for unknown names too", func() {
			// Both sides resolve to the default location.
			So(m.Similarity("atlantis", "atlantis"), ShouldEqual, 1.0)
		})

		Convey("And similarity is symmetric", func() {
			So(m.Similarity("gaza_city", "rafah"), ShouldEqual, m.Similarity("rafah", "gaza_city"))
			So(m.Similarity("khan_yunis", "jabalya"), ShouldEqual, m.Similarity("jabalya", "khan_yunis"))
		})

		Convey("And similarity stays within [0,1]", func() {
			pairs := [][2]string{
				{"gaza_city", "rafah"},
				{"beit_hanoun", "khan_yunis"},
				{"jabalya", "deir_al_balah"},
			}
			for _, p := range pairs {
				s := m.Similarity(p[0], p[1])
				So(s, ShouldBeGreaterThanOrEqualTo, 0)
				So(s, ShouldBeLessThanOrEqualTo, 1)
			}
		})

		Convey("And nearby locations score higher than distant ones", func() {
			near := m.Similarity("gaza_city", "jabalya")
			far := m.Similarity("gaza_city", "rafah")
			So(near, ShouldBeGreaterThan, far)
		})

		Convey("And names are normalized before lookup", func() {
			So(m.Similarity("Gaza City", "gaza_city"), ShouldEqual, 1.0)
			So(m.Known("Khan Yunis"), ShouldBeTrue)
			So(m.Known("nowhere"), ShouldBeFalse)
		})

		Convey("And unknown names resolve to the default location", func() {
			So(m.Similarity("nowhere", "gaza_center"), ShouldEqual, 1.0)
		})
	})
}

func TestModel_Options(t *testing.T) {
	Convey("Given a model with a tight max distance", t, func() {
		m := geo.New(geo.WithMaxDistance(0.01))

		Convey("Then distant locations score zero", func() {
			So(m.Similarity("gaza_city", "rafah"), ShouldEqual, 0)
		})
	})

	Convey("Given a model with an extra location", t, func() {
		m := geo.New(geo.WithLocation("Nuseirat", 31.4469, 34.3925))

		Convey("Then the new name resolves", func() {
			So(m.Known("nuseirat"), ShouldBeTrue)
			So(m.Similarity("nuseirat", "nuseirat"), ShouldEqual, 1.0)
		})
	})
}
