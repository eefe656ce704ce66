package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/helmline/Charter-BookingService/internal/domain"
	triptypeRepo "github.com/helmline/Charter-BookingService/internal/infra/storage/triptype"
)

// UseCase use case для получения слотов на день
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: captain=%d, trip_type=%d, date=%s",
		req.CaptainID, req.TripTypeID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем тип поездки — он определяет длительность выхода
	tripType, err := uc.catalogRepo.GetTripTypeByID(ctx, req.TripTypeID)
	if err != nil {
		if errors.Is(err, triptypeRepo.ErrTripTypeNotFound) {
			uc.logger.Warn("GetAvailableSlots: trip type id=%d not found", req.TripTypeID)
			return nil, ErrTripTypeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get trip type id=%d: %v", req.TripTypeID, err)
		return nil, fmt.Errorf("%w: failed to get trip type: %v", ErrInternal, err)
	}

	// Чужой тип поездки неотличим от несуществующего
	if tripType.CaptainID != req.CaptainID {
		uc.logger.Warn("GetAvailableSlots: trip type id=%d does not belong to captain=%d", req.TripTypeID, req.CaptainID)
		return nil, ErrTripTypeNotFound
	}
	if !tripType.Active {
		uc.logger.Warn("GetAvailableSlots: trip type id=%d is inactive", req.TripTypeID)
		return nil, ErrTripTypeInactive
	}

	// 4. Получаем настройки капитана (буфер и горизонт бронирования)
	settings, err := uc.catalogRepo.GetCaptainSettings(ctx, req.CaptainID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get captain settings id=%d: %v", req.CaptainID, err)
		return nil, fmt.Errorf("%w: failed to get captain settings: %v", ErrInternal, err)
	}

	// 5. Прошлое и дни за горизонтом — не ошибка, а пустой день
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, domain.DayPast), nil
	}
	if isDateBeyondHorizon(req.Date, now, settings.AdvanceBookingDays) {
		uc.logger.Info("GetAvailableSlots: date %s is beyond booking horizon", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, domain.DayBeyondHorizon), nil
	}

	// 6. Проверяем blackout-дату
	blackedOut, err := uc.availabilityRepo.HasBlackout(ctx, req.CaptainID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check blackout: %v", err)
		return nil, fmt.Errorf("%w: failed to check blackout: %v", ErrInternal, err)
	}
	if blackedOut {
		uc.logger.Info("GetAvailableSlots: date %s is blacked out for captain=%d",
			req.Date.Format(domain.DateFormat), req.CaptainID)
		return uc.emptyResponse(req, domain.DayBlackedOut), nil
	}

	// 7. Получаем окна доступности на день недели
	windows, err := uc.availabilityRepo.GetActiveWindowsForDay(ctx, req.CaptainID, int(req.Date.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: captain=%d has no windows on %s",
			req.CaptainID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, domain.DayClosed), nil
	}

	// 8. Получаем активные бронирования капитана на эту дату
	filter := domain.CaptainBookingsFilter{
		CaptainID:       req.CaptainID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetByCaptainWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 9. Генерируем слоты и размечаем доступность
	slots, err := generateSlots(windows, tripType.DurationMinutes, req.Date, now, settings.BufferMinutes, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for captain=%d, trip_type=%d, date=%s",
		len(slots), req.CaptainID, req.TripTypeID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		CaptainID:  req.CaptainID,
		TripTypeID: req.TripTypeID,
		DayStatus:  domain.DayOpen,
		Slots:      slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, status domain.DayStatus) *Response {
	return &Response{
		Date:       req.Date,
		CaptainID:  req.CaptainID,
		TripTypeID: req.TripTypeID,
		DayStatus:  status,
		Slots:      []domain.Slot{},
	}
}
