package models

import "time"

// Service is a catalog entry for a bookable salon service.
type Service struct {
	ID                string    `bson:"id" json:"id"`                                  // Stable opaque identifier (UUID)
	Name              string    `bson:"name" json:"name"`                              // Display name, e.g. "Color"
	Description       string    `bson:"description,omitempty" json:"description,omitempty"`
	DurationMinutes   int       `bson:"duration_minutes" json:"durationMinutes"`       // Appointment length, > 0
	PriceCents        int       `bson:"price_cents" json:"priceCents"`                 // Full price in minor currency units
	DepositPercentage int       `bson:"deposit_percentage" json:"depositPercentage"`   // Upfront deposit share, 0-100
	CreatedAt         time.Time `bson:"created_at" json:"createdAt"`
}

// DefaultDepositPercentage applies when a catalog entry does not set its own.
const DefaultDepositPercentage = 30
