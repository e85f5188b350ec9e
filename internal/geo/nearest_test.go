package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Medellín city center, used as the delivery target throughout.
var medellin = Point{Latitude: 6.2442, Longitude: -75.5812}

func TestDistanceIsMonotonic(t *testing.T) {
	near := Point{Latitude: 6.25, Longitude: -75.58}
	far := Point{Latitude: 6.50, Longitude: -75.30}

	assert.Zero(t, Distance(medellin, medellin))
	assert.Less(t, Distance(medellin, near), Distance(medellin, far))
	// symmetric
	assert.InDelta(t, Distance(medellin, far), Distance(far, medellin), 1e-6)
}

func TestSelectNearestPicksMinimum(t *testing.T) {
	candidates := []Candidate{
		{CourierID: 11, Position: Point{Latitude: 6.30, Longitude: -75.60}},
		{CourierID: 12, Position: Point{Latitude: 6.245, Longitude: -75.582}}, // closest
		{CourierID: 13, Position: Point{Latitude: 6.10, Longitude: -75.40}},
	}

	got, err := SelectNearest(medellin, candidates)
	require.NoError(t, err)
	assert.Equal(t, uint(12), got.CourierID)
}

func TestSelectNearestIsOrderIndependent(t *testing.T) {
	a := Candidate{CourierID: 5, Position: Point{Latitude: 6.26, Longitude: -75.59}}
	b := Candidate{CourierID: 6, Position: Point{Latitude: 6.27, Longitude: -75.57}}
	c := Candidate{CourierID: 7, Position: Point{Latitude: 6.20, Longitude: -75.62}}

	first, err := SelectNearest(medellin, []Candidate{a, b, c})
	require.NoError(t, err)
	second, err := SelectNearest(medellin, []Candidate{c, b, a})
	require.NoError(t, err)
	assert.Equal(t, first.CourierID, second.CourierID)
}

func TestSelectNearestTieBreaksOnCourierID(t *testing.T) {
	pos := Point{Latitude: 6.25, Longitude: -75.58}
	candidates := []Candidate{
		{CourierID: 42, Position: pos},
		{CourierID: 7, Position: pos},
	}

	got, err := SelectNearest(medellin, candidates)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.CourierID)
}

func TestSelectNearestSkipsInvalidPositions(t *testing.T) {
	candidates := []Candidate{
		{CourierID: 1, Position: Point{}},                                      // missing reading
		{CourierID: 2, Position: Point{Latitude: 99, Longitude: -75}},          // out of range
		{CourierID: 3, Position: Point{Latitude: 6.40, Longitude: -75.50}},
	}

	got, err := SelectNearest(medellin, candidates)
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.CourierID)
}

func TestSelectNearestNoCandidates(t *testing.T) {
	_, err := SelectNearest(medellin, nil)
	assert.ErrorIs(t, err, ErrNoCourierAvailable)

	_, err = SelectNearest(medellin, []Candidate{{CourierID: 1}})
	assert.ErrorIs(t, err, ErrNoCourierAvailable)
}

func TestBearingRange(t *testing.T) {
	north := Point{Latitude: 7.0, Longitude: -75.5812}
	got := Bearing(medellin, north)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.Less(t, got, 360.0)
	// roughly due north
	assert.InDelta(t, 0.0, got, 1.0)
}
