package payments

// DepositOrder ордер на оплату депозита, созданный в платежном шлюзе
type DepositOrder struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// RefundResult результат возврата средств
type RefundResult struct {
	RefundID string  `json:"refund_id"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}
