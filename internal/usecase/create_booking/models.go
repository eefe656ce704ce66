package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	CaptainID  int64     `validate:"required,gt=0"`
	TripTypeID int64     `validate:"required,gt=0"`
	GuestName  string    `validate:"required,min=2,max=120"`
	GuestEmail string    `validate:"required,email"`
	GuestPhone string    `validate:"required,e164"`
	PartySize  int       `validate:"required,gt=0"`
	Start      time.Time `validate:"required"`
}

// Response модель ответа на создание бронирования
type Response struct {
	ID              int64     `json:"id"`
	CaptainID       int64     `json:"captain_id"`
	VesselID        *int64    `json:"vessel_id,omitempty"`
	TripTypeID      int64     `json:"trip_type_id"`
	GuestName       string    `json:"guest_name"`
	PartySize       int       `json:"party_size"`
	ScheduledStart  time.Time `json:"scheduled_start"`
	ScheduledEnd    time.Time `json:"scheduled_end"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	TotalPrice      float64   `json:"total_price"`
	DepositDue      float64   `json:"deposit_due"`
	BalanceDue      float64   `json:"balance_due"`
	ManagementToken string    `json:"management_token"`
	DepositOrderID  string    `json:"deposit_order_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
