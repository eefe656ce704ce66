package payment_webhook

import (
	"fmt"
	"strconv"
)

// Интересует только событие захвата платежа, остальные подтверждаются без обработки
const eventPaymentCaptured = "payment.captured"

// WebhookEvent входящее событие платежного шлюза
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity PaymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// PaymentEntity платеж внутри события
// Amount приходит в минорных единицах (копейки/центы)
type PaymentEntity struct {
	ID     string            `json:"id"`
	Amount int64             `json:"amount"`
	Notes  map[string]string `json:"notes"`
}

// BookingID извлекает ID бронирования из notes платежа
// Он проставляется при создании депозитного ордера
func (p *PaymentEntity) BookingID() (int64, error) {
	raw, ok := p.Notes["booking_id"]
	if !ok {
		return 0, fmt.Errorf("payment %s has no booking_id note", p.ID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("payment %s has invalid booking_id note: %w", p.ID, err)
	}
	return id, nil
}

// AmountMajor переводит сумму из минорных единиц в основные
func (p *PaymentEntity) AmountMajor() float64 {
	return float64(p.Amount) / 100
}
