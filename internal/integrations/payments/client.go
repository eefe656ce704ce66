package payments

import (
	"fmt"

	"github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// Client обертка над Razorpay SDK для депозитов и возвратов
// Суммы в API шлюза передаются в минорных единицах (пайсы/центы)
type Client struct {
	sdk           *razorpay.Client
	currency      string
	webhookSecret string
	log           Logger
}

// NewClient создает новый экземпляр платежного клиента
func NewClient(keyID, keySecret, webhookSecret, currency string, log Logger) *Client {
	return &Client{
		sdk:           razorpay.NewClient(keyID, keySecret),
		currency:      currency,
		webhookSecret: webhookSecret,
		log:           log,
	}
}

// CreateDepositOrder создает ордер на оплату депозита по бронированию
func (c *Client) CreateDepositOrder(bookingID int64, amount float64) (*DepositOrder, error) {
	data := map[string]interface{}{
		"amount":   toMinorUnits(amount),
		"currency": c.currency,
		"receipt":  fmt.Sprintf("booking-%d-deposit", bookingID),
		"notes": map[string]interface{}{
			"booking_id": fmt.Sprintf("%d", bookingID),
		},
	}

	body, err := c.sdk.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: booking_id=%d: %v", ErrCreateOrder, bookingID, err)
	}

	orderID, ok := body["id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: order response has no id field", ErrInvalidResponse)
	}

	c.log.Info("Created deposit order %s for booking_id=%d, amount=%.2f", orderID, bookingID, amount)

	return &DepositOrder{
		OrderID:  orderID,
		Amount:   amount,
		Currency: c.currency,
	}, nil
}

// Refund возвращает средства по платежу
// Вызывается ДО фиксации отмены: если шлюз отклонил возврат, отмена не проходит
func (c *Client) Refund(paymentID string, amount float64) (*RefundResult, error) {
	data := map[string]interface{}{
		"amount": toMinorUnits(amount),
	}

	body, err := c.sdk.Payment.Refund(paymentID, toMinorUnits(amount), data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: payment_id=%s: %v", ErrRefund, paymentID, err)
	}

	refundID, ok := body["id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: refund response has no id field", ErrInvalidResponse)
	}

	status, _ := body["status"].(string)

	c.log.Info("Issued refund %s for payment_id=%s, amount=%.2f", refundID, paymentID, amount)

	return &RefundResult{
		RefundID: refundID,
		Amount:   amount,
		Status:   status,
	}, nil
}

// VerifyWebhookSignature проверяет подпись вебхука платежного шлюза
func (c *Client) VerifyWebhookSignature(body, signature string) error {
	if !utils.VerifyWebhookSignature(body, signature, c.webhookSecret) {
		return ErrInvalidSignature
	}
	return nil
}

func toMinorUnits(amount float64) int {
	return int(amount*100 + 0.5)
}
