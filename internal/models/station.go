package models

import "time"

// Station is a responder post (fire, police, health) shown next to reports.
type Station struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Name          string    `json:"name" validate:"required"`
	Type          string    `json:"type" validate:"required"`
	Address       string    `json:"address"`
	Location      *GeoPoint `gorm:"serializer:json" json:"location" validate:"omitempty"`
	ContactNumber string    `json:"contactNumber"`
	Services      []string  `gorm:"serializer:json" json:"services"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}
