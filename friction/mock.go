package friction

import (
	"context"
	"hash/fnv"
	"time"

	"elasticreplan/model"
)

// Mock is the deterministic demo-reliable scorer, grounded on
// _examples/original_source/backend/engine/friction_model.py's
// _mock_friction_score: a per-mode base rate bumped for transit during
// peak hours, perturbed by a small deterministic offset derived from the
// leg's endpoint ids so repeated calls for the same leg always agree.
type Mock struct {
	// Now lets tests pin the clock; nil uses time.Now.
	Now func() time.Time
}

func (m Mock) Score(_ context.Context, legs []*model.Leg, now time.Time) ([]Scored, error) {
	if m.Now != nil {
		now = m.Now()
	}
	hour := now.Hour()
	out := make([]Scored, len(legs))
	for i, leg := range legs {
		score := mockScore(leg, hour)
		out[i] = Scored{LegIndex: i, Score: score, Level: Level(score)}
	}
	return out, nil
}

func mockScore(leg *model.Leg, hour int) float64 {
	base := 0.15
	switch {
	case leg.Mode == model.Transit && isPeakHour(hour):
		base = 0.55
	case leg.Mode == model.EBike:
		base = 0.25
	case leg.Mode == model.Rideshare:
		base = 0.35
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(leg.FromStopID + leg.ToStopID))
	hashVal := int(h.Sum32() % 100)
	variation := float64(hashVal-50) * 0.004 // +-0.2

	score := base + variation
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

func isPeakHour(hour int) bool {
	return (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19)
}
