package request

import (
	"time"
)

type CreateCrop struct {
	Name            string    `validate:"required"                                         json:"name"`
	Category        string    `validate:"required"                                         json:"category"`
	PlantingDate    time.Time `validate:"required"                                         json:"planting_date"`
	ExpectedHarvest time.Time `validate:"required,gtfield=PlantingDate"                    json:"expected_harvest"`
	Status          string    `validate:"omitempty,oneof=planted growing harvested failed" json:"status"`
	Notes           string    `json:"notes"`
}

type UpdateCrop struct {
	Status string `validate:"required,oneof=planted growing harvested failed" json:"status"`
	Notes  string `json:"notes"`
}
