package create_booking

import (
	"time"

	createBooking "github.com/helmline/Charter-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CaptainID  int64  `json:"captainId"`
	TripTypeID int64  `json:"tripTypeId"`
	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	GuestPhone string `json:"guestPhone"`
	PartySize  int    `json:"partySize"`
	Start      string `json:"start"` // RFC3339, например "2026-07-04T09:00:00Z"
}

// BookingCreatedResponse HTTP response model
type BookingCreatedResponse struct {
	ID              int64   `json:"id"`
	CaptainID       int64   `json:"captainId"`
	VesselID        *int64  `json:"vesselId,omitempty"`
	TripTypeID      int64   `json:"tripTypeId"`
	GuestName       string  `json:"guestName"`
	PartySize       int     `json:"partySize"`
	ScheduledStart  string  `json:"scheduledStart"`
	ScheduledEnd    string  `json:"scheduledEnd"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	TotalPrice      float64 `json:"totalPrice"`
	DepositDue      float64 `json:"depositDue"`
	BalanceDue      float64 `json:"balanceDue"`
	ManagementToken string  `json:"managementToken"`
	DepositOrderID  string  `json:"depositOrderId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CaptainID:  r.CaptainID,
		TripTypeID: r.TripTypeID,
		GuestName:  r.GuestName,
		GuestEmail: r.GuestEmail,
		GuestPhone: r.GuestPhone,
		PartySize:  r.PartySize,
		Start:      start,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingCreatedResponse {
	return &BookingCreatedResponse{
		ID:              resp.ID,
		CaptainID:       resp.CaptainID,
		VesselID:        resp.VesselID,
		TripTypeID:      resp.TripTypeID,
		GuestName:       resp.GuestName,
		PartySize:       resp.PartySize,
		ScheduledStart:  resp.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:    resp.ScheduledEnd.Format(time.RFC3339),
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		TotalPrice:      resp.TotalPrice,
		DepositDue:      resp.DepositDue,
		BalanceDue:      resp.BalanceDue,
		ManagementToken: resp.ManagementToken,
		DepositOrderID:  resp.DepositOrderID,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
