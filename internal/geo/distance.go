package geo

import (
	"math"
)

// Point is a WGS84 position in degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies inside the WGS84 envelope.
// A zero/zero pair is treated as a missing reading, not a real position.
func (p Point) Valid() bool {
	if p.Latitude == 0 && p.Longitude == 0 {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// Distance calculates the great-circle distance between two points in meters.
func Distance(a, b Point) float64 {
	const R = 6371000 // Earth's radius in meters.
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return R * c
}

// Bearing calculates the initial bearing (direction) in degrees from a to b.
func Bearing(a, b Point) float64 {
	lat1Rad := toRadians(a.Latitude)
	lon1Rad := toRadians(a.Longitude)
	lat2Rad := toRadians(b.Latitude)
	lon2Rad := toRadians(b.Longitude)

	deltaLon := lon2Rad - lon1Rad

	y := math.Sin(deltaLon) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) -
		math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(deltaLon)

	return math.Mod(toDegrees(math.Atan2(y, x))+360, 360)
}

// toRadians converts an angle from degrees to radians.
func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// toDegrees converts an angle from radians to degrees.
func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
