package domain

import "time"

// TripType продуктовое определение поездки: фиксированная длительность и цена
type TripType struct {
	ID              int64
	CaptainID       int64
	VesselID        *int64
	Name            string
	DurationMinutes int
	Price           float64
	DepositAmount   float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Vessel судно капитана
type Vessel struct {
	ID        int64
	CaptainID int64
	Name      string
	Capacity  int
	CreatedAt time.Time
}
