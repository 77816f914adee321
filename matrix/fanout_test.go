package matrix_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"elasticreplan/matrix"
	"elasticreplan/model"
	"elasticreplan/oracle"
)

func TestFanOutBuildsSquareMatrices(t *testing.T) {
	stops := []*model.Stop{
		{ID: "a", Lat: 37.77, Lng: -122.41},
		{ID: "b", Lat: 37.78, Lng: -122.40},
		{ID: "c", Lat: 37.79, Lng: -122.39},
	}
	router := oracle.NewOffline()
	modeOf := func(i, j int) model.Mode { return model.Walking }

	mats, err := matrix.FanOut(context.Background(), stops, modeOf, router, nil)
	assert.NoError(t, err)
	assert.Len(t, mats.Cost, 3)
	for i, row := range mats.Cost {
		assert.Len(t, row, 3)
		assert.Zero(t, row[i])
	}
	assert.Positive(t, mats.Time[0][1])
	assert.Equal(t, model.Walking, mats.Modes[matrix.Pair{I: 0, J: 1}])
}

func TestFanOutPrefersOverrideOverOracle(t *testing.T) {
	stops := []*model.Stop{
		{ID: "a", Lat: 37.77, Lng: -122.41},
		{ID: "b", Lat: 37.78, Lng: -122.40},
	}
	router := oracle.NewOffline()
	override := func(i, j int) (oracle.Result, bool) {
		if i == 0 && j == 1 {
			return oracle.Result{CostCents: 999, DurationSec: 111, Available: true}, true
		}
		return oracle.Result{}, false
	}

	mats, err := matrix.FanOut(context.Background(), stops, func(i, j int) model.Mode { return model.Walking }, router, override)
	assert.NoError(t, err)
	assert.Equal(t, 999, mats.Cost[0][1])
	assert.Equal(t, 111, mats.Time[0][1])
	assert.Equal(t, 999, mats.Details[matrix.Pair{I: 0, J: 1}].CostCents)
}

func TestShrinkDropsRowColAndReindexesDetails(t *testing.T) {
	stops := []*model.Stop{
		{ID: "a", Lat: 0, Lng: 0},
		{ID: "b", Lat: 0, Lng: 0.01},
		{ID: "c", Lat: 0, Lng: 0.02},
	}
	router := oracle.NewOffline()
	mats, err := matrix.FanOut(context.Background(), stops, func(i, j int) model.Mode { return model.Walking }, router, nil)
	assert.NoError(t, err)

	mats.Shrink(1) // drop "b"
	assert.Len(t, mats.Cost, 2)
	assert.Len(t, mats.Cost[0], 2)
	if _, ok := mats.Details[matrix.Pair{I: 0, J: 1}]; !ok {
		t.Fatalf("expected reindexed pair (0,1) after dropping middle stop")
	}
}
