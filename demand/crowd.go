// Package demand supplies the crowd-density prior the friction model
// consumes per leg, adapted from the teacher's time-of-day demand
// multiplier table (_examples/jwmdev-brt08/backend/data/data.go) — there
// it scaled passenger arrival rates by period of day; here the same
// six-period curve becomes a 0-1 crowd-density prior feeding
// friction.ModelScorer's feature vector.
package demand

// periodMultiplier mirrors the teacher's TimePeriodMultiplier table:
// period 1 = very early off-peak, 2 = morning peak, 3 = late morning,
// 4 = mid-day, 5 = evening peak, 6 = late evening.
var periodMultiplier = map[int]float64{
	1: 0.3,
	2: 1.6,
	3: 0.9,
	4: 0.8,
	5: 1.4,
	6: 0.5,
}

// periodForHour buckets an hour-of-day into one of the teacher's six
// demand periods.
func periodForHour(hour int) int {
	switch {
	case hour >= 0 && hour < 6:
		return 1
	case hour >= 6 && hour < 9:
		return 2
	case hour >= 9 && hour < 12:
		return 3
	case hour >= 12 && hour < 16:
		return 4
	case hour >= 16 && hour < 19:
		return 5
	default:
		return 6
	}
}

// CrowdDensity returns a 0-1 crowd-density prior for the given hour,
// normalizing the teacher's multiplier table (peak at 1.6) into the
// friction model's expected feature range.
func CrowdDensity(hour int) float64 {
	const peak = 1.6
	m := periodMultiplier[periodForHour(hour)]
	d := m / peak
	if d > 1 {
		d = 1
	}
	if d < 0 {
		d = 0
	}
	return d
}
