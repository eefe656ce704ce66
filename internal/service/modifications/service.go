package modifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
	bookingRepo "github.com/helmline/Charter-BookingService/internal/infra/storage/booking"
	modificationRepo "github.com/helmline/Charter-BookingService/internal/infra/storage/modification"
	"github.com/helmline/Charter-BookingService/internal/service/modifications/models"
	"github.com/helmline/Charter-BookingService/pkg/ptr"
)

// Service сервис согласования изменений бронирования
// Гостевой запрос ждет решения капитана; запрос самого капитана
// применяется сразу
type Service struct {
	bookingRepo      BookingRepository
	modificationRepo ModificationRepository
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	logRepo          LogRepository
	mailer           Mailer
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса изменений
func NewService(
	bookingRepo BookingRepository,
	modificationRepo ModificationRepository,
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	logRepo LogRepository,
	mailer Mailer,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		modificationRepo: modificationRepo,
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		logRepo:          logRepo,
		mailer:           mailer,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Request создает запрос на изменение бронирования
// Запрос капитана применяется немедленно; гостевой остается pending
func (s *Service) Request(ctx context.Context, bookingID int64, req *models.RequestModificationRequest) (*models.ModificationResponse, error) {
	s.logger.Info("RequestModification: booking id=%d by %s", bookingID, req.Actor)

	if req.NewStart == nil && req.NewPartySize == nil {
		return nil, ErrNoChange
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	booking, err := s.getBooking(ctx, bookingID, "RequestModification")
	if err != nil {
		return nil, err
	}
	if !booking.IsActive() {
		s.logger.Warn("RequestModification: booking id=%d is not active (status=%s)", bookingID, booking.Status)
		return nil, ErrBookingNotActive
	}

	// Изменение, совпадающее с текущими значениями, отклоняем сразу
	if req.NewStart != nil && req.NewStart.Equal(booking.ScheduledStart) {
		req.NewStart = nil
	}
	if req.NewPartySize != nil && *req.NewPartySize == booking.PartySize {
		req.NewPartySize = nil
	}
	if req.NewStart == nil && req.NewPartySize == nil {
		return nil, ErrNoChange
	}

	if req.NewStart != nil {
		if err := s.validateNewStart(ctx, booking, *req.NewStart); err != nil {
			return nil, err
		}
	}
	if req.NewPartySize != nil {
		if err := s.validatePartySize(ctx, booking, *req.NewPartySize); err != nil {
			return nil, err
		}
	}

	request := &domain.ModificationRequest{
		BookingID:         bookingID,
		RequestedBy:       req.Actor,
		NewStart:          req.NewStart,
		NewPartySize:      req.NewPartySize,
		OriginalStart:     booking.ScheduledStart,
		OriginalPartySize: booking.PartySize,
		Reason:            req.Reason,
	}

	created, err := s.modificationRepo.Create(ctx, request)
	if err != nil {
		s.logger.Error("RequestModification: failed to create request for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to create modification request: %v", ErrInternal, err)
	}

	s.appendLog(ctx, bookingID, domain.LogModificationRequested,
		fmt.Sprintf("Modification #%d requested: %s", created.ID, describeChange(created)), req.Actor)

	// Капитан не согласует сам с собой
	if req.Actor == domain.ActorCaptain {
		return s.decide(ctx, created, booking, domain.ModificationApproved, domain.ActorCaptain)
	}

	s.logger.Info("RequestModification: request id=%d pending captain decision", created.ID)
	return models.FromDomainModification(created), nil
}

// ListPending возвращает нерешенные запросы по бронированиям капитана
func (s *Service) ListPending(ctx context.Context, captainID int64) (*models.ModificationListResponse, error) {
	requests, err := s.modificationRepo.GetPendingForCaptain(ctx, captainID)
	if err != nil {
		s.logger.Error("ListPending: repository error for captain=%d: %v", captainID, err)
		return nil, fmt.Errorf("%w: ListPending - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainModificationList(requests), nil
}

// Approve одобряет гостевой запрос и применяет изменение
func (s *Service) Approve(ctx context.Context, modificationID, captainID int64) (*models.ModificationResponse, error) {
	request, booking, err := s.getOwnedRequest(ctx, modificationID, captainID, "Approve")
	if err != nil {
		return nil, err
	}
	return s.decide(ctx, request, booking, domain.ModificationApproved, domain.ActorCaptain)
}

// Reject отклоняет гостевой запрос; бронирование не меняется
func (s *Service) Reject(ctx context.Context, modificationID, captainID int64) (*models.ModificationResponse, error) {
	request, booking, err := s.getOwnedRequest(ctx, modificationID, captainID, "Reject")
	if err != nil {
		return nil, err
	}
	return s.decide(ctx, request, booking, domain.ModificationRejected, domain.ActorCaptain)
}

// decide фиксирует решение и, при одобрении, применяет изменение к бронированию
// Применение и решение коммитятся одной сериализуемой транзакцией:
// новое время проходит ту же проверку пересечений, что и создание
func (s *Service) decide(ctx context.Context, request *domain.ModificationRequest, booking *domain.Booking, decision domain.ModificationStatus, actor domain.ActorType) (*models.ModificationResponse, error) {
	if request.IsTerminal() {
		return nil, ErrAlreadyDecided
	}

	now := s.timeProvider.Now()

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if decision == domain.ModificationApproved {
			if err := s.apply(txCtx, request, booking); err != nil {
				return err
			}
		}

		if err := s.modificationRepo.Decide(txCtx, request.ID, decision, now); err != nil {
			switch {
			case errors.Is(err, modificationRepo.ErrAlreadyDecided):
				return ErrAlreadyDecided
			case errors.Is(err, modificationRepo.ErrModificationNotFound):
				return ErrModificationNotFound
			}
			return fmt.Errorf("%w: failed to decide modification id=%d: %v", ErrInternal, request.ID, err)
		}

		s.appendLog(txCtx, request.BookingID, domain.LogModificationResolved,
			fmt.Sprintf("Modification #%d %s", request.ID, decision), actor)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("decide: modification id=%d %s", request.ID, decision)

	if decision == domain.ModificationApproved && request.NewStart != nil {
		if err := s.mailer.SendRescheduled(booking.GuestEmail, booking.GuestName, *request.NewStart); err != nil {
			s.logger.Error("decide: failed to send email for booking id=%d: %v", booking.ID, err)
		}
	}

	decided, err := s.modificationRepo.GetByID(ctx, request.ID)
	if err != nil {
		s.logger.Error("decide: failed to reload modification id=%d: %v", request.ID, err)
		return nil, fmt.Errorf("%w: failed to reload modification: %v", ErrInternal, err)
	}
	return models.FromDomainModification(decided), nil
}

// apply применяет одобренное изменение к бронированию
// Календарь и вместимость могли измениться между запросом и решением,
// поэтому все проверки повторяются на момент одобрения
func (s *Service) apply(ctx context.Context, request *domain.ModificationRequest, booking *domain.Booking) error {
	if request.NewStart != nil {
		if err := s.validateNewStart(ctx, booking, *request.NewStart); err != nil {
			return err
		}

		duration := booking.ScheduledEnd.Sub(booking.ScheduledStart)
		newEnd := request.NewStart.Add(duration)

		overlapping, err := s.bookingRepo.GetActiveOverlapping(ctx, booking.CaptainID, *request.NewStart, newEnd, ptr.Ptr(booking.ID))
		if err != nil {
			s.logger.Error("apply: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			s.logger.Warn("apply: new time %s overlaps %d active booking(s)",
				request.NewStart.Format(time.RFC3339), len(overlapping))
			return ErrSlotNotAvailable
		}

		if err := s.bookingRepo.UpdateSchedule(ctx, booking.ID, *request.NewStart, newEnd); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotNotAvailable
			}
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrBookingNotActive
			}
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		s.appendLog(ctx, booking.ID, domain.LogScheduleChanged,
			fmt.Sprintf("Schedule changed: %s -> %s",
				booking.ScheduledStart.Format(time.RFC3339), request.NewStart.Format(time.RFC3339)),
			request.RequestedBy)
	}

	if request.NewPartySize != nil {
		if err := s.validatePartySize(ctx, booking, *request.NewPartySize); err != nil {
			return err
		}

		if err := s.bookingRepo.UpdatePartySize(ctx, booking.ID, *request.NewPartySize); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrBookingNotActive
			}
			return fmt.Errorf("%w: failed to update party size: %v", ErrInternal, err)
		}

		s.appendLog(ctx, booking.ID, domain.LogPartySizeChanged,
			fmt.Sprintf("Party size changed: %d -> %d", booking.PartySize, *request.NewPartySize),
			request.RequestedBy)
	}

	return nil
}

// validatePartySize проверяет вместимость судна для нового размера группы
func (s *Service) validatePartySize(ctx context.Context, booking *domain.Booking, partySize int) error {
	if partySize < domain.MinPartySize || partySize > domain.MaxPartySize {
		return fmt.Errorf("%w: partySize must be between %d and %d",
			ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	tripType, err := s.catalogRepo.GetTripTypeByID(ctx, booking.TripTypeID)
	if err != nil {
		s.logger.Error("validatePartySize: failed to get trip type id=%d: %v", booking.TripTypeID, err)
		return fmt.Errorf("%w: failed to get trip type: %v", ErrInternal, err)
	}
	// Тип поездки без судна не ограничивает размер группы
	if tripType.VesselID == nil {
		return nil
	}
	vessel, err := s.catalogRepo.GetVesselByID(ctx, *tripType.VesselID)
	if err != nil {
		s.logger.Error("validatePartySize: failed to get vessel id=%d: %v", *tripType.VesselID, err)
		return fmt.Errorf("%w: failed to get vessel: %v", ErrInternal, err)
	}
	if partySize > vessel.Capacity {
		return fmt.Errorf("%w: vessel holds at most %d guests", ErrPartySizeExceedsCapacity, vessel.Capacity)
	}
	return nil
}

// validateNewStart пропускает новое время через те же календарные ворота,
// что и создание бронирования: прошлое, горизонт, blackout-даты и окна
func (s *Service) validateNewStart(ctx context.Context, booking *domain.Booking, newStart time.Time) error {
	now := s.timeProvider.Now()

	settings, err := s.catalogRepo.GetCaptainSettings(ctx, booking.CaptainID)
	if err != nil {
		s.logger.Error("validateNewStart: failed to get captain settings id=%d: %v", booking.CaptainID, err)
		return fmt.Errorf("%w: failed to get captain settings: %v", ErrInternal, err)
	}

	startDay := time.Date(newStart.Year(), newStart.Month(), newStart.Day(), 0, 0, 0, 0, newStart.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if startDay.Before(today) {
		s.logger.Warn("validateNewStart: new start %s is in the past", newStart.Format(time.RFC3339))
		return ErrInvalidDate
	}
	// advanceBookingDays = 0 снимает ограничение горизонта
	if settings.AdvanceBookingDays > 0 && startDay.After(today.AddDate(0, 0, settings.AdvanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, settings.AdvanceBookingDays)
	}

	blackedOut, err := s.availabilityRepo.HasBlackout(ctx, booking.CaptainID, newStart)
	if err != nil {
		s.logger.Error("validateNewStart: failed to check blackout: %v", err)
		return fmt.Errorf("%w: failed to check blackout: %v", ErrInternal, err)
	}
	if blackedOut {
		s.logger.Warn("validateNewStart: date %s is blacked out for captain=%d",
			newStart.Format(domain.DateFormat), booking.CaptainID)
		return ErrDayNotBookable
	}

	windows, err := s.availabilityRepo.GetActiveWindowsForDay(ctx, booking.CaptainID, int(newStart.Weekday()))
	if err != nil {
		s.logger.Error("validateNewStart: failed to get availability windows: %v", err)
		return fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		s.logger.Warn("validateNewStart: captain=%d has no windows on %s",
			booking.CaptainID, newStart.Format(domain.DateFormat))
		return ErrDayNotBookable
	}

	duration := booking.ScheduledEnd.Sub(booking.ScheduledStart)
	newEnd := newStart.Add(duration)
	for _, window := range windows {
		windowStart, err := window.StartTime.At(newStart)
		if err != nil {
			return fmt.Errorf("%w: invalid window start: %v", ErrInternal, err)
		}
		windowEnd, err := window.EndTime.At(newStart)
		if err != nil {
			return fmt.Errorf("%w: invalid window end: %v", ErrInternal, err)
		}
		if !newStart.Before(windowStart) && !newEnd.After(windowEnd) {
			return nil
		}
	}
	s.logger.Warn("validateNewStart: trip %s-%s does not fit a window",
		newStart.Format(time.RFC3339), newEnd.Format(time.RFC3339))
	return ErrOutsideWindow
}

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) getOwnedRequest(ctx context.Context, modificationID, captainID int64, op string) (*domain.ModificationRequest, *domain.Booking, error) {
	request, err := s.modificationRepo.GetByID(ctx, modificationID)
	if err != nil {
		if errors.Is(err, modificationRepo.ErrModificationNotFound) {
			s.logger.Warn("%s: modification id=%d not found", op, modificationID)
			return nil, nil, ErrModificationNotFound
		}
		s.logger.Error("%s: repository error for modification id=%d: %v", op, modificationID, err)
		return nil, nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	booking, err := s.getBooking(ctx, request.BookingID, op)
	if err != nil {
		return nil, nil, err
	}
	if booking.CaptainID != captainID {
		s.logger.Warn("%s: captain=%d has no access to booking id=%d", op, captainID, booking.ID)
		return nil, nil, ErrAccessDenied
	}

	return request, booking, nil
}

// appendLog пишет запись журнала; ошибка журнала внутри транзакции всплывает,
// вне транзакции только логируется
func (s *Service) appendLog(ctx context.Context, bookingID int64, entryType domain.LogEntryType, description string, actor domain.ActorType) {
	entry := &domain.BookingLog{
		BookingID:   bookingID,
		EntryType:   entryType,
		Description: description,
		ActorType:   actor,
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		s.logger.Error("appendLog: failed to append %s for booking id=%d: %v", entryType, bookingID, err)
	}
}

func describeChange(m *domain.ModificationRequest) string {
	switch {
	case m.NewStart != nil && m.NewPartySize != nil:
		return fmt.Sprintf("new start %s, party %d", m.NewStart.Format(time.RFC3339), *m.NewPartySize)
	case m.NewStart != nil:
		return fmt.Sprintf("new start %s", m.NewStart.Format(time.RFC3339))
	default:
		return fmt.Sprintf("party %d", *m.NewPartySize)
	}
}
