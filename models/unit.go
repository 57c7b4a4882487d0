package models

import "time"

// DeliveryUnit is one free-text unit label as recorded upstream.
type DeliveryUnit struct {
	ID        int       `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUnitRequest struct {
	Label string `json:"label"`
}

type UpdateUnitRequest struct {
	Label *string `json:"label"`
}
