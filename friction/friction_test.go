package friction_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"elasticreplan/friction"
	"elasticreplan/model"
)

func TestLevelBuckets(t *testing.T) {
	assert.Equal(t, model.FrictionLow, friction.Level(0.1))
	assert.Equal(t, model.FrictionMedium, friction.Level(0.3))
	assert.Equal(t, model.FrictionMedium, friction.Level(0.7))
	assert.Equal(t, model.FrictionHigh, friction.Level(0.71))
}

func TestMockScoreIsDeterministicForSameLeg(t *testing.T) {
	peakHour := time.Date(2026, 7, 30, 8, 0, 0, 0, time.UTC)
	m := friction.Mock{Now: func() time.Time { return peakHour }}
	leg := &model.Leg{FromStopID: "a", ToStopID: "b", Mode: model.Transit}

	r1, err := m.Score(context.Background(), []*model.Leg{leg}, peakHour)
	assert.NoError(t, err)
	r2, err := m.Score(context.Background(), []*model.Leg{leg}, peakHour)
	assert.NoError(t, err)
	assert.Equal(t, r1, r2)
	assert.InDelta(t, 0.55, r1[0].Score, 0.21)
}

func TestMockScoreElevatesTransitDuringPeakHour(t *testing.T) {
	peak := time.Date(2026, 7, 30, 8, 0, 0, 0, time.UTC)
	offPeak := time.Date(2026, 7, 30, 2, 0, 0, 0, time.UTC)
	leg := &model.Leg{FromStopID: "x", ToStopID: "y", Mode: model.Transit}

	mPeak := friction.Mock{Now: func() time.Time { return peak }}
	mOff := friction.Mock{Now: func() time.Time { return offPeak }}

	peakScores, _ := mPeak.Score(context.Background(), []*model.Leg{leg}, peak)
	offScores, _ := mOff.Score(context.Background(), []*model.Leg{leg}, offPeak)

	assert.Greater(t, peakScores[0].Score, offScores[0].Score)
}

func TestApplyAndAlertFlagsHighFrictionFarOutDeparture(t *testing.T) {
	legs := []*model.Leg{
		{FromStopID: "a", ToStopID: "b", Mode: model.Transit, DurationSec: 600},
		{FromStopID: "b", ToStopID: "c", Mode: model.Transit, DurationSec: 600},
	}
	scorer := stubScorer{
		scores: []friction.Scored{
			{LegIndex: 0, Score: 0.1, Level: model.FrictionLow},
			{LegIndex: 1, Score: 0.9, Level: model.FrictionHigh},
		},
	}

	alerts, err := friction.ApplyAndAlert(context.Background(), scorer, legs, time.Now())
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, 1, alerts[0].LegIndex)
	assert.NotNil(t, legs[1].FrictionScore)
	assert.Equal(t, model.FrictionHigh, legs[1].FrictionLevel)
}

type stubScorer struct {
	scores []friction.Scored
}

func (s stubScorer) Score(context.Context, []*model.Leg, time.Time) ([]friction.Scored, error) {
	return s.scores, nil
}
