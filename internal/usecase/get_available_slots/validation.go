package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CaptainID <= 0 {
		return fmt.Errorf("%w: captainID must be positive", ErrInvalidInput)
	}

	if req.TripTypeID <= 0 {
		return fmt.Errorf("%w: tripTypeID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
