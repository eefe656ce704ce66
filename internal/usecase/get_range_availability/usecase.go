package get_range_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

// UseCase use case календарного обзора доступности капитана
type UseCase struct {
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case обзора доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetRangeAvailability: captain=%d, from=%s, to=%s",
		req.CaptainID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetRangeAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки капитана (горизонт бронирования)
	settings, err := uc.catalogRepo.GetCaptainSettings(ctx, req.CaptainID)
	if err != nil {
		uc.logger.Error("GetRangeAvailability: failed to get captain settings id=%d: %v", req.CaptainID, err)
		return nil, fmt.Errorf("%w: failed to get captain settings: %v", ErrInternal, err)
	}

	// 4. Собираем окна по дням недели: одного запроса хватает на весь интервал
	windows, err := uc.availabilityRepo.GetAllWindows(ctx, req.CaptainID)
	if err != nil {
		uc.logger.Error("GetRangeAvailability: failed to get availability windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	openDays := make(map[int]bool, 7)
	for _, w := range windows {
		if w.Active {
			openDays[w.DayOfWeek] = true
		}
	}

	// 5. Blackout-даты одним запросом, верхняя граница исключающая
	blackouts, err := uc.availabilityRepo.GetBlackoutsInRange(ctx, req.CaptainID, req.From, req.To.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetRangeAvailability: failed to get blackouts: %v", err)
		return nil, fmt.Errorf("%w: failed to get blackouts: %v", ErrInternal, err)
	}

	blackedOut := make(map[string]bool, len(blackouts))
	for _, b := range blackouts {
		blackedOut[b.Date.Format(domain.DateFormat)] = true
	}

	// 6. Классифицируем каждый день интервала
	today := startOfDay(now)
	horizon := today.AddDate(0, 0, settings.AdvanceBookingDays)

	days := make([]domain.DayAvailability, 0)
	for d := startOfDay(req.From); !d.After(startOfDay(req.To)); d = d.AddDate(0, 0, 1) {
		days = append(days, domain.DayAvailability{
			Date:   d,
			Status: classifyDay(d, today, horizon, settings.AdvanceBookingDays, openDays, blackedOut),
		})
	}

	uc.logger.Info("GetRangeAvailability: classified %d days for captain=%d", len(days), req.CaptainID)

	return &Response{
		CaptainID: req.CaptainID,
		Days:      days,
	}, nil
}

// classifyDay определяет статус дня
// Порядок проверок важен: прошлое и горизонт имеют приоритет над blackout,
// blackout — над расписанием
func classifyDay(
	day, today, horizon time.Time,
	advanceBookingDays int,
	openDays map[int]bool,
	blackedOut map[string]bool,
) domain.DayStatus {
	if day.Before(today) {
		return domain.DayPast
	}
	if advanceBookingDays > 0 && day.After(horizon) {
		return domain.DayBeyondHorizon
	}
	if blackedOut[day.Format(domain.DateFormat)] {
		return domain.DayBlackedOut
	}
	if !openDays[int(day.Weekday())] {
		return domain.DayClosed
	}
	return domain.DayOpen
}

func validateRequest(req *Request) error {
	if req.CaptainID <= 0 {
		return fmt.Errorf("%w: captainID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if req.To.Sub(req.From) > MaxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: at most %d days per request", ErrRangeTooWide, MaxRangeDays)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
