package friction

import (
	"bytes"
	"context"
	"encoding/gob"
	"math"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"elasticreplan/model"
)

// weights is the serialized artifact shape: a logistic-regression weight
// vector matching the feature layout below, plus a bias term. Grounded on
// _examples/original_source/backend/engine/friction_model.py's
// _extract_features: hour of day, day of week, one-hot mode (4), a
// historical delay quantile, precipitation, temperature, a local-event
// flag, and a crowd-density prior.
type weights struct {
	W [11]float64
	B float64
}

const (
	featHour = iota
	featDayOfWeek
	featModeWalk
	featModeTransit
	featModeEBike
	featModeRideshare
	featHistoricalDelayP50
	featPrecipMM
	featTempCelsius
	featLocalEventFlag
	featCrowdDensity
)

// Prior is ambient, per-edge signal the replan pipeline supplies
// alongside the itinerary itself — weather and crowding data the oracle
// and solver have no opinion about.
type Prior struct {
	HistoricalDelayP50 float64
	PrecipMM           float64
	TempCelsius        float64
	LocalEventFlag     bool
	CrowdDensity       float64
}

// ModelScorer is the ML-backed Scorer. It lazily loads its weight
// artifact exactly once regardless of how many Score calls race for it —
// the "lazy global singleton" called out in spec.md §9 — via
// sync.OnceValue, and falls back to Mock whenever no artifact is
// configured or loading fails, so the friction stage is never the reason
// a replan misses its SLA.
type ModelScorer struct {
	Path    string
	Priors  func(leg *model.Leg) Prior
	Log     *zap.SugaredLogger
	Fallback Scorer

	loadOnce func() *weights
	initOnce sync.Once
}

func (m *ModelScorer) ensureLoader() {
	m.initOnce.Do(func() {
		path := m.Path
		log := m.Log
		m.loadOnce = sync.OnceValue(func() *weights {
			return loadWeights(path, log)
		})
	})
}

func loadWeights(path string, log *zap.SugaredLogger) *weights {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if log != nil {
			log.Infow("friction model artifact not found, using mock predictions", "path", path, "error", err)
		}
		return nil
	}
	var w weights
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		if log != nil {
			log.Warnw("friction model artifact corrupt, using mock predictions", "path", path, "error", err)
		}
		return nil
	}
	if log != nil {
		log.Infow("friction model loaded", "path", path)
	}
	return &w
}

func (m *ModelScorer) Score(ctx context.Context, legs []*model.Leg, now time.Time) ([]Scored, error) {
	m.ensureLoader()
	w := m.loadOnce()
	if w == nil {
		return m.fallback().Score(ctx, legs, now)
	}

	out := make([]Scored, len(legs))
	for i, leg := range legs {
		var prior Prior
		if m.Priors != nil {
			prior = m.Priors(leg)
		}
		score := w.predict(leg, now, prior)
		out[i] = Scored{LegIndex: i, Score: score, Level: Level(score)}
	}
	return out, nil
}

func (m *ModelScorer) fallback() Scorer {
	if m.Fallback != nil {
		return m.Fallback
	}
	return Mock{}
}

func (w *weights) predict(leg *model.Leg, now time.Time, prior Prior) float64 {
	var f [11]float64
	f[featHour] = float64(now.Hour())
	f[featDayOfWeek] = float64(int(now.Weekday()))
	switch leg.Mode {
	case model.Transit:
		f[featModeTransit] = 1
	case model.EBike:
		f[featModeEBike] = 1
	case model.Rideshare:
		f[featModeRideshare] = 1
	default:
		f[featModeWalk] = 1
	}
	f[featHistoricalDelayP50] = prior.HistoricalDelayP50
	f[featPrecipMM] = prior.PrecipMM
	f[featTempCelsius] = prior.TempCelsius
	if prior.LocalEventFlag {
		f[featLocalEventFlag] = 1
	}
	f[featCrowdDensity] = prior.CrowdDensity

	z := w.B
	for i, wi := range w.W {
		z += wi * f[i]
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
