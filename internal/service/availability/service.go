package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
	availabilityRepo "github.com/helmline/Charter-BookingService/internal/infra/storage/availability"
	"github.com/helmline/Charter-BookingService/internal/service/availability/models"
	"github.com/helmline/Charter-BookingService/pkg/types"
)

// Окна по умолчанию для нового капитана: будни и суббота 08:00-18:00,
// воскресенье создается неактивным
const (
	defaultWindowStart = "08:00"
	defaultWindowEnd   = "18:00"
)

// Service сервис расписания капитана: недельные окна, blackout-даты, настройки
type Service struct {
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetSchedule возвращает недельное расписание и предстоящие blackout-даты
func (s *Service) GetSchedule(ctx context.Context, captainID int64, from, to time.Time) (*models.ScheduleResponse, error) {
	windows, err := s.availabilityRepo.GetAllWindows(ctx, captainID)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get windows for captain=%d: %v", captainID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	blackouts, err := s.availabilityRepo.GetBlackoutsInRange(ctx, captainID, from, to)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get blackouts for captain=%d: %v", captainID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return &models.ScheduleResponse{
		CaptainID: captainID,
		Windows:   models.FromDomainWindows(windows),
		Blackouts: models.FromDomainBlackouts(blackouts),
	}, nil
}

// ReplaceWindows заменяет недельное расписание целиком
// Частичных правок нет: капитан всегда присылает полный набор окон
func (s *Service) ReplaceWindows(ctx context.Context, req *models.ReplaceWindowsRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ReplaceWindows: captain=%d, %d window(s)", req.CaptainID, len(req.Windows))

	windows := make([]*domain.AvailabilityWindow, 0, len(req.Windows))
	for _, input := range req.Windows {
		window, err := input.ToDomainWindow(req.CaptainID)
		if err != nil {
			s.logger.Warn("ReplaceWindows: invalid time in window: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
		}
		if !window.IsValid() {
			s.logger.Warn("ReplaceWindows: invalid window day=%d %s-%s", input.DayOfWeek, input.StartTime, input.EndTime)
			return nil, fmt.Errorf("%w: day=%d %s-%s", ErrInvalidWindow, input.DayOfWeek, input.StartTime, input.EndTime)
		}
		windows = append(windows, window)
	}

	if err := validateNoOverlap(windows); err != nil {
		s.logger.Warn("ReplaceWindows: %v", err)
		return nil, err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.availabilityRepo.ReplaceWindows(txCtx, req.CaptainID, windows); err != nil {
			return fmt.Errorf("%w: ReplaceWindows - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ReplaceWindows: failed for captain=%d: %v", req.CaptainID, err)
		return nil, err
	}

	s.logger.Info("ReplaceWindows: captain=%d schedule replaced", req.CaptainID)

	stored, err := s.availabilityRepo.GetAllWindows(ctx, req.CaptainID)
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWindows - reload windows: %v", ErrInternal, err)
	}
	return &models.ScheduleResponse{
		CaptainID: req.CaptainID,
		Windows:   models.FromDomainWindows(stored),
		Blackouts: []models.BlackoutResponse{},
	}, nil
}

// SeedDefaults создает расписание по умолчанию для нового капитана
// Повторный вызов ничего не меняет, если окна уже есть
func (s *Service) SeedDefaults(ctx context.Context, captainID int64) error {
	count, err := s.availabilityRepo.CountWindows(ctx, captainID)
	if err != nil {
		s.logger.Error("SeedDefaults: failed to count windows for captain=%d: %v", captainID, err)
		return fmt.Errorf("%w: SeedDefaults - repository error: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Info("SeedDefaults: captain=%d already has %d window(s), skipping", captainID, count)
		return nil
	}

	start, _ := types.NewTimeStringFromString(defaultWindowStart)
	end, _ := types.NewTimeStringFromString(defaultWindowEnd)

	windows := make([]*domain.AvailabilityWindow, 0, 7)
	for day := 0; day <= 6; day++ {
		windows = append(windows, &domain.AvailabilityWindow{
			CaptainID: captainID,
			DayOfWeek: day,
			StartTime: start,
			EndTime:   end,
			Active:    day != int(time.Sunday),
		})
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.availabilityRepo.ReplaceWindows(txCtx, captainID, windows); err != nil {
			return fmt.Errorf("%w: SeedDefaults - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("SeedDefaults: captain=%d seeded with default schedule", captainID)
	return nil
}

// AddBlackout закрывает дату для бронирования
// Уже принятые бронирования на эту дату не отменяются — капитан
// разбирается с ними через weather hold или отмену
func (s *Service) AddBlackout(ctx context.Context, req *models.AddBlackoutRequest) (*models.BlackoutResponse, error) {
	s.logger.Info("AddBlackout: captain=%d, date=%s", req.CaptainID, req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	blackout := &domain.BlackoutDate{
		CaptainID: req.CaptainID,
		Date:      req.Date,
		Reason:    req.Reason,
	}

	created, err := s.availabilityRepo.AddBlackout(ctx, blackout)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrDuplicateBlackout) {
			s.logger.Warn("AddBlackout: date %s already blacked out for captain=%d",
				req.Date.Format(domain.DateFormat), req.CaptainID)
			return nil, ErrDuplicateBlackout
		}
		s.logger.Error("AddBlackout: repository error for captain=%d: %v", req.CaptainID, err)
		return nil, fmt.Errorf("%w: AddBlackout - repository error: %v", ErrInternal, err)
	}

	return &models.BlackoutResponse{
		ID:     created.ID,
		Date:   created.Date.Format(domain.DateFormat),
		Reason: created.Reason,
	}, nil
}

// RemoveBlackout открывает дату обратно
func (s *Service) RemoveBlackout(ctx context.Context, captainID int64, date time.Time) error {
	s.logger.Info("RemoveBlackout: captain=%d, date=%s", captainID, date.Format(domain.DateFormat))

	err := s.availabilityRepo.RemoveBlackout(ctx, captainID, date)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrBlackoutNotFound) {
			return ErrBlackoutNotFound
		}
		s.logger.Error("RemoveBlackout: repository error for captain=%d: %v", captainID, err)
		return fmt.Errorf("%w: RemoveBlackout - repository error: %v", ErrInternal, err)
	}
	return nil
}

// GetSettings возвращает настройки капитана
func (s *Service) GetSettings(ctx context.Context, captainID int64) (*models.SettingsResponse, error) {
	settings, err := s.catalogRepo.GetCaptainSettings(ctx, captainID)
	if err != nil {
		s.logger.Error("GetSettings: repository error for captain=%d: %v", captainID, err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSettings(settings), nil
}

// UpdateSettings сохраняет настройки капитана
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: captain=%d, buffer=%d, horizon=%d",
		req.CaptainID, req.BufferMinutes, req.AdvanceBookingDays)

	if req.BufferMinutes < 0 || req.AdvanceBookingDays < 0 {
		return nil, fmt.Errorf("%w: buffer and horizon must be non-negative", ErrInvalidInput)
	}

	settings := &domain.CaptainSettings{
		CaptainID:          req.CaptainID,
		BufferMinutes:      req.BufferMinutes,
		AdvanceBookingDays: req.AdvanceBookingDays,
		Location:           req.Location,
	}

	if err := s.catalogRepo.UpsertCaptainSettings(ctx, settings); err != nil {
		s.logger.Error("UpdateSettings: repository error for captain=%d: %v", req.CaptainID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// validateNoOverlap проверяет, что окна одного дня не пересекаются
func validateNoOverlap(windows []*domain.AvailabilityWindow) error {
	byDay := make(map[int][]*domain.AvailabilityWindow, 7)
	for _, w := range windows {
		byDay[w.DayOfWeek] = append(byDay[w.DayOfWeek], w)
	}

	for day, dayWindows := range byDay {
		sort.Slice(dayWindows, func(i, j int) bool {
			return dayWindows[i].StartTime.IsBefore(dayWindows[j].StartTime)
		})
		for i := 1; i < len(dayWindows); i++ {
			// Граничащие окна допустимы, пересекающиеся — нет
			if dayWindows[i].StartTime.IsBefore(dayWindows[i-1].EndTime) {
				return fmt.Errorf("%w: day=%d", ErrOverlappingWindows, day)
			}
		}
	}
	return nil
}
