package payment_webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmline/Charter-BookingService/internal/service/bookings"
	"github.com/helmline/Charter-BookingService/internal/service/bookings/models"
)

type mockVerifier struct {
	err error
}

func (m *mockVerifier) VerifyWebhookSignature(body, signature string) error {
	return m.err
}

type mockBookingService struct {
	confirmFunc func(ctx context.Context, bookingID int64, amount float64, paymentRef string) (*models.BookingResponse, error)
}

func (m *mockBookingService) ConfirmDeposit(ctx context.Context, bookingID int64, amount float64, paymentRef string) (*models.BookingResponse, error) {
	if m.confirmFunc != nil {
		return m.confirmFunc(ctx, bookingID, amount, paymentRef)
	}
	return &models.BookingResponse{ID: bookingID}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func capturedEvent(bookingID string, amount int64) string {
	return fmt.Sprintf(`{
		"event": "payment.captured",
		"payload": {"payment": {"entity": {
			"id": "pay_test_1",
			"amount": %d,
			"notes": {"booking_id": %q}
		}}}
	}`, amount, bookingID)
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", strings.NewReader(body))
	req.Header.Set("X-Razorpay-Signature", "sig")
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_ConfirmsDeposit(t *testing.T) {
	var gotID int64
	var gotAmount float64
	var gotRef string
	service := &mockBookingService{
		confirmFunc: func(ctx context.Context, bookingID int64, amount float64, paymentRef string) (*models.BookingResponse, error) {
			gotID, gotAmount, gotRef = bookingID, amount, paymentRef
			return &models.BookingResponse{ID: bookingID}, nil
		},
	}

	h := NewHandler(&mockVerifier{}, service, nopLogger{})

	rec := post(h, capturedEvent("42", 15000))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotID)
	// Сумма приходит в минорных единицах
	assert.Equal(t, 150.0, gotAmount)
	assert.Equal(t, "pay_test_1", gotRef)
}

func TestHandle_InvalidSignature(t *testing.T) {
	called := false
	service := &mockBookingService{
		confirmFunc: func(ctx context.Context, bookingID int64, amount float64, paymentRef string) (*models.BookingResponse, error) {
			called = true
			return nil, nil
		},
	}

	h := NewHandler(&mockVerifier{err: errors.New("signature mismatch")}, service, nopLogger{})

	rec := post(h, capturedEvent("42", 15000))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestHandle_IgnoresOtherEvents(t *testing.T) {
	called := false
	service := &mockBookingService{
		confirmFunc: func(ctx context.Context, bookingID int64, amount float64, paymentRef string) (*models.BookingResponse, error) {
			called = true
			return nil, nil
		},
	}

	h := NewHandler(&mockVerifier{}, service, nopLogger{})

	rec := post(h, `{"event": "payment.failed", "payload": {"payment": {"entity": {"id": "pay_test_1"}}}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
}

// Постоянные ошибки данных подтверждаются 200, иначе шлюз зациклит доставку
func TestHandle_PermanentErrorsAcked(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unknown booking", bookings.ErrBookingNotFound},
		{"expired booking", bookings.ErrInvalidTransition},
		{"concurrent status change", bookings.ErrStatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockBookingService{
				confirmFunc: func(ctx context.Context, bookingID int64, amount float64, paymentRef string) (*models.BookingResponse, error) {
					return nil, tt.err
				},
			}

			h := NewHandler(&mockVerifier{}, service, nopLogger{})

			rec := post(h, capturedEvent("42", 15000))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestHandle_TransientErrorRetried(t *testing.T) {
	service := &mockBookingService{
		confirmFunc: func(ctx context.Context, bookingID int64, amount float64, paymentRef string) (*models.BookingResponse, error) {
			return nil, errors.New("db down")
		},
	}

	h := NewHandler(&mockVerifier{}, service, nopLogger{})

	rec := post(h, capturedEvent("42", 15000))
	// 500 заставляет шлюз повторить доставку
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandle_MissingBookingNoteAcked(t *testing.T) {
	h := NewHandler(&mockVerifier{}, &mockBookingService{}, nopLogger{})

	rec := post(h, `{"event": "payment.captured", "payload": {"payment": {"entity": {"id": "pay_test_1", "amount": 100, "notes": {}}}}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_MalformedBody(t *testing.T) {
	h := NewHandler(&mockVerifier{}, &mockBookingService{}, nopLogger{})

	rec := post(h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentEntity_BookingID(t *testing.T) {
	p := &PaymentEntity{ID: "pay_test_1", Notes: map[string]string{"booking_id": "42"}}
	id, err := p.BookingID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	p.Notes["booking_id"] = "forty-two"
	_, err = p.BookingID()
	assert.Error(t, err)
}
