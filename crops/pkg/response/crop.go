package response

import (
	"time"

	"github.com/google/uuid"
)

// Crop is one tracked planting in a shopper's crop calendar.
type Crop struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	PlantingDate    time.Time `json:"planting_date"`
	ExpectedHarvest time.Time `json:"expected_harvest"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Progress is how far along the growing season is at the given moment, as a
// whole percentage clamped to [0, 100]. Before planting it is 0, at or past
// the expected harvest it is 100.
func (t Crop) Progress(now time.Time) int {
	total := t.ExpectedHarvest.Sub(t.PlantingDate)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(t.PlantingDate)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= total {
		return 100
	}
	// Seconds, not Duration arithmetic: multiplying nanoseconds by 100
	// overflows int64 for multi-year seasons.
	return int(elapsed.Seconds() * 100 / total.Seconds())
}
