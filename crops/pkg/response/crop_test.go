package response

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCropProgress(t *testing.T) {
	planting := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	harvest := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	crop := Crop{Name: "Paddy", PlantingDate: planting, ExpectedHarvest: harvest}

	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{name: "before planting is 0", now: planting.AddDate(0, -1, 0), expected: 0},
		{name: "at planting is 0", now: planting, expected: 0},
		{name: "halfway through the season is 50", now: planting.Add(harvest.Sub(planting) / 2), expected: 50},
		{name: "at harvest is 100", now: harvest, expected: 100},
		{name: "past harvest stays 100", now: harvest.AddDate(0, 2, 0), expected: 100},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, crop.Progress(test.now))
		})
	}
}

func TestCropProgressLongSeasonStaysInRange(t *testing.T) {
	planting := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	coconut := Crop{
		Name:            "King Coconut",
		PlantingDate:    planting,
		ExpectedHarvest: planting.AddDate(6, 0, 0),
	}

	halfway := planting.AddDate(3, 0, 0)
	progress := coconut.Progress(halfway)
	assert.GreaterOrEqual(t, progress, 0)
	assert.LessOrEqual(t, progress, 100)
	assert.InDelta(t, 50, progress, 1)
}

func TestCropProgressDegenerateSeason(t *testing.T) {
	when := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	sameDay := Crop{PlantingDate: when, ExpectedHarvest: when}
	inverted := Crop{PlantingDate: when, ExpectedHarvest: when.AddDate(0, -1, 0)}

	assert.Equal(t, 100, sameDay.Progress(when))
	assert.Equal(t, 100, inverted.Progress(when))
}
