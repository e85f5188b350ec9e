package geo

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"delivery_tracker/internal/models"
)

// FeatureCollection renders coordinates as GeoJSON for the dashboard map.
func FeatureCollection(coordinates []models.Coordinate) *geojson.FeatureCollection {
	features := make([]*geojson.Feature, 0, len(coordinates))
	for _, c := range coordinates {
		pt := geom.NewPointFlat(geom.XY, []float64{c.Longitude, c.Latitude})
		pt.SetSRID(4326)
		features = append(features, &geojson.Feature{
			Geometry: pt,
			Properties: map[string]interface{}{
				"id":          c.ID,
				"city_id":     c.CityID,
				"street":      c.Street,
				"postal_code": c.PostalCode,
			},
		})
	}
	return &geojson.FeatureCollection{Features: features}
}
