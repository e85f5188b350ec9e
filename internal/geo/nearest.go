package geo

import (
	"sort"

	"delivery_tracker/internal/apperr"
)

// Candidate is a courier with a last-known position.
type Candidate struct {
	CourierID uint
	Name      string
	Email     string
	Position  Point
}

// ErrNoCourierAvailable is returned when the candidate set is empty or
// every candidate lacked a usable position.
var ErrNoCourierAvailable = apperr.NotFound("no courier available")

// SelectNearest picks the candidate closest to target. Candidates with
// invalid positions are dropped. Selection is deterministic regardless
// of input order: ties on distance break on the lower courier id.
func SelectNearest(target Point, candidates []Candidate) (Candidate, error) {
	usable := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Position.Valid() {
			usable = append(usable, c)
		}
	}
	if len(usable) == 0 {
		return Candidate{}, ErrNoCourierAvailable
	}

	dist := make(map[uint]float64, len(usable))
	for _, c := range usable {
		dist[c.CourierID] = Distance(target, c.Position)
	}
	sort.Slice(usable, func(i, j int) bool {
		di, dj := dist[usable[i].CourierID], dist[usable[j].CourierID]
		if di != dj {
			return di < dj
		}
		return usable[i].CourierID < usable[j].CourierID
	})

	return usable[0], nil
}
