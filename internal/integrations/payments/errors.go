package payments

import "errors"

var (
	// ErrCreateOrder возвращается при ошибке создания ордера на депозит
	ErrCreateOrder = errors.New("payments client: failed to create deposit order")

	// ErrRefund возвращается при ошибке возврата средств
	ErrRefund = errors.New("payments client: failed to issue refund")

	// ErrInvalidSignature возвращается при невалидной подписи вебхука
	ErrInvalidSignature = errors.New("payments client: invalid webhook signature")

	// ErrInvalidResponse возвращается при некорректном ответе платежного шлюза
	ErrInvalidResponse = errors.New("payments client: invalid response from gateway")
)
