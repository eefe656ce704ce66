package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
	bookingRepo "github.com/helmline/Charter-BookingService/internal/infra/storage/booking"
	"github.com/helmline/Charter-BookingService/internal/service/bookings/models"
	"github.com/helmline/Charter-BookingService/pkg/ptr"
)

// FreeCancellationNotice за сколько гость отменяет без потери депозита
const FreeCancellationNotice = 48 * time.Hour

// Service сервис жизненного цикла бронирования
// Все переходы статусов идут через guarded update в репозитории;
// сервис добавляет бизнес-проверки, журнал и уведомления
type Service struct {
	bookingRepo   BookingRepository
	catalogRepo   CatalogRepository
	logRepo       LogRepository
	payments      PaymentsClient
	weatherClient WeatherClient
	mailer        Mailer
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	logRepo LogRepository,
	payments PaymentsClient,
	weatherClient WeatherClient,
	mailer Mailer,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		catalogRepo:   catalogRepo,
		logRepo:       logRepo,
		payments:      payments,
		weatherClient: weatherClient,
		mailer:        mailer,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Гостевой доступ авторизуется раньше, через management token
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// GetForCaptain получает бронирование по ID с проверкой владельца
func (s *Service) GetForCaptain(ctx context.Context, id, captainID int64) (*models.BookingResponse, error) {
	booking, err := s.getOwnedBooking(ctx, id, captainID, "GetForCaptain")
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// GetLog возвращает журнал бронирования в хронологическом порядке
func (s *Service) GetLog(ctx context.Context, id, captainID int64) (*models.BookingLogResponse, error) {
	if _, err := s.getOwnedBooking(ctx, id, captainID, "GetLog"); err != nil {
		return nil, err
	}

	entries, err := s.logRepo.GetForBooking(ctx, id)
	if err != nil {
		s.logger.Error("GetLog: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetLog - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLog(id, entries), nil
}

// ListForCaptain получает бронирования капитана с гибкой фильтрацией
// по судну, периоду, статусу и включению терминальных бронирований
func (s *Service) ListForCaptain(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListForCaptain: fetching bookings for captain=%d", req.CaptainID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListForCaptain: invalid filter for captain=%d: %v", req.CaptainID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCaptainWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListForCaptain: repository error for captain=%d: %v", req.CaptainID, err)
		return nil, fmt.Errorf("%w: ListForCaptain - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForCaptain: successfully fetched %d bookings for captain=%d", len(bookings), req.CaptainID)
	return models.FromDomainBookingList(bookings), nil
}

// ConfirmDeposit фиксирует оплату депозита: pending_deposit -> confirmed
// Вызывается из обработчика платежного вебхука после проверки подписи
func (s *Service) ConfirmDeposit(ctx context.Context, bookingID int64, amount float64, paymentRef string) (*models.BookingResponse, error) {
	s.logger.Info("ConfirmDeposit: booking id=%d, amount=%.2f, payment_ref=%s", bookingID, amount, paymentRef)

	booking, err := s.getBooking(ctx, bookingID, "ConfirmDeposit")
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(booking.Status, domain.StatusConfirmed) {
		s.logger.Warn("ConfirmDeposit: booking id=%d in status=%s cannot be confirmed", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: %s -> confirmed", ErrInvalidTransition, booking.Status)
	}

	payStatus := domain.PaymentDepositPaid
	if amount >= booking.TotalPrice {
		payStatus = domain.PaymentFullyPaid
	}
	balanceDue := booking.TotalPrice - amount

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.ConfirmPayment(txCtx, bookingID, payStatus, amount, balanceDue, paymentRef); err != nil {
			return s.mapTransitionError(err, "ConfirmDeposit", bookingID)
		}

		if err := s.appendLog(txCtx, bookingID, domain.LogPaymentReceived,
			fmt.Sprintf("Deposit of %.2f received, payment_ref=%s", amount, paymentRef),
			nil, nil, domain.ActorGuest); err != nil {
			return err
		}

		return s.appendStatusLog(txCtx, bookingID, booking.Status, domain.StatusConfirmed, domain.ActorSystem)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ConfirmDeposit: booking id=%d confirmed", bookingID)

	if err := s.mailer.SendBookingConfirmed(booking.GuestEmail, booking.GuestName, booking.ScheduledStart, balanceDue); err != nil {
		s.logger.Error("ConfirmDeposit: failed to send confirmation email for booking id=%d: %v", bookingID, err)
	}

	return s.GetByID(ctx, bookingID)
}

// HoldForWeather приостанавливает бронирование из-за погоды
// Решение принимает капитан; оценка погодного сервиса сохраняется в журнал
// как справочная и не блокирует операцию
func (s *Service) HoldForWeather(ctx context.Context, bookingID int64, req *models.WeatherHoldRequest) (*models.BookingResponse, error) {
	s.logger.Info("HoldForWeather: booking id=%d by captain=%d", bookingID, req.CaptainID)

	if req.Reason == "" || len(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is required, at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	booking, err := s.getOwnedBooking(ctx, bookingID, req.CaptainID, "HoldForWeather")
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(booking.Status, domain.StatusWeatherHold) {
		s.logger.Warn("HoldForWeather: booking id=%d in status=%s cannot be held", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: %s -> weather_hold", ErrInvalidTransition, booking.Status)
	}

	description := fmt.Sprintf("Weather hold: %s", req.Reason)
	settings, err := s.catalogRepo.GetCaptainSettings(ctx, req.CaptainID)
	if err == nil && settings.Location != "" {
		if assessment, aerr := s.weatherClient.AssessWithGracefulDegradation(ctx, settings.Location, booking.ScheduledStart); aerr == nil {
			description = fmt.Sprintf("%s (forecast: %s, wind %.0f kts)", description, assessment.Condition, assessment.WindSpeedKts)
		}
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.HoldForWeather(txCtx, bookingID, req.Reason); err != nil {
			return s.mapTransitionError(err, "HoldForWeather", bookingID)
		}

		if err := s.appendLog(txCtx, bookingID, domain.LogStatusChanged, description,
			ptr.Ptr(string(booking.Status)), ptr.Ptr(string(domain.StatusWeatherHold)), domain.ActorCaptain); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("HoldForWeather: booking id=%d held", bookingID)

	if err := s.mailer.SendWeatherHold(booking.GuestEmail, booking.GuestName, booking.ScheduledStart, req.Reason); err != nil {
		s.logger.Error("HoldForWeather: failed to send email for booking id=%d: %v", bookingID, err)
	}

	return s.GetByID(ctx, bookingID)
}

// Reschedule переносит бронирование из weather_hold на новое время
// Новое время проходит ту же проверку пересечений, что и создание,
// в сериализуемой транзакции
func (s *Service) Reschedule(ctx context.Context, bookingID int64, req *models.RescheduleRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reschedule: booking id=%d by captain=%d to %s",
		bookingID, req.CaptainID, req.NewStart.Format(time.RFC3339))

	booking, err := s.getOwnedBooking(ctx, bookingID, req.CaptainID, "Reschedule")
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(booking.Status, domain.StatusRescheduled) {
		s.logger.Warn("Reschedule: booking id=%d in status=%s cannot be rescheduled", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: %s -> rescheduled", ErrInvalidTransition, booking.Status)
	}

	now := s.timeProvider.Now()
	if !req.NewStart.After(now) {
		return nil, fmt.Errorf("%w: new start must be in the future", ErrInvalidInput)
	}

	// Длительность берем от типа поездки, а не от прежнего интервала:
	// капитан мог изменить тип за время приостановки
	tripType, err := s.catalogRepo.GetTripTypeByID(ctx, booking.TripTypeID)
	if err != nil {
		s.logger.Error("Reschedule: failed to get trip type id=%d: %v", booking.TripTypeID, err)
		return nil, fmt.Errorf("%w: failed to get trip type: %v", ErrInternal, err)
	}
	newEnd := req.NewStart.Add(time.Duration(tripType.DurationMinutes) * time.Minute)

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := s.bookingRepo.GetActiveOverlapping(txCtx, booking.CaptainID, req.NewStart, newEnd, ptr.Ptr(bookingID))
		if err != nil {
			s.logger.Error("Reschedule: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			s.logger.Warn("Reschedule: new time %s overlaps %d active booking(s)",
				req.NewStart.Format(time.RFC3339), len(overlapping))
			return ErrSlotNotAvailable
		}

		if err := s.bookingRepo.Reschedule(txCtx, bookingID, req.NewStart, newEnd); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotNotAvailable
			}
			return s.mapTransitionError(err, "Reschedule", bookingID)
		}

		if err := s.appendLog(txCtx, bookingID, domain.LogScheduleChanged,
			fmt.Sprintf("Rescheduled to %s", req.NewStart.Format(time.RFC3339)),
			ptr.Ptr(booking.ScheduledStart.Format(time.RFC3339)),
			ptr.Ptr(req.NewStart.Format(time.RFC3339)), domain.ActorCaptain); err != nil {
			return err
		}

		return s.appendStatusLog(txCtx, bookingID, booking.Status, domain.StatusRescheduled, domain.ActorCaptain)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reschedule: booking id=%d rescheduled to %s", bookingID, req.NewStart.Format(time.RFC3339))

	if err := s.mailer.SendRescheduled(booking.GuestEmail, booking.GuestName, req.NewStart); err != nil {
		s.logger.Error("Reschedule: failed to send email for booking id=%d: %v", bookingID, err)
	}

	return s.GetByID(ctx, bookingID)
}

// Complete отмечает поездку состоявшейся
// Допускается только после времени начала
func (s *Service) Complete(ctx context.Context, bookingID, captainID int64) (*models.BookingResponse, error) {
	return s.closeTrip(ctx, bookingID, captainID, domain.StatusCompleted, "Complete")
}

// NoShow отмечает неявку гостя; депозит не возвращается
// Допускается только после времени начала
func (s *Service) NoShow(ctx context.Context, bookingID, captainID int64) (*models.BookingResponse, error) {
	return s.closeTrip(ctx, bookingID, captainID, domain.StatusNoShow, "NoShow")
}

// Cancel отменяет бронирование
// Возврат средств выполняется ДО фиксации отмены: если шлюз отклонил возврат,
// бронирование остается в прежнем статусе
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%d by %s", bookingID, req.Actor)

	if len(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d in status=%s cannot be cancelled", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: %s -> cancelled", ErrInvalidTransition, booking.Status)
	}

	now := s.timeProvider.Now()
	refund := s.computeRefund(booking, req.Actor, now)

	// Возврат до коммита отмены
	if refund > 0 {
		if booking.PaymentRef == nil {
			s.logger.Error("Cancel: booking id=%d has paid deposit but no payment_ref", bookingID)
			return nil, fmt.Errorf("%w: no payment reference on booking", ErrRefundFailed)
		}
		if _, err := s.payments.Refund(*booking.PaymentRef, refund); err != nil {
			s.logger.Error("Cancel: refund failed for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrRefundFailed, err)
		}
	}

	refundedTotal := booking.RefundedAmount + refund
	payStatus := booking.PaymentStatus
	if refund > 0 {
		if refundedTotal >= booking.DepositPaid {
			payStatus = domain.PaymentFullyRefunded
		} else {
			payStatus = domain.PaymentPartiallyRefunded
		}
	}
	balanceDue := booking.TotalPrice - (booking.DepositPaid - refundedTotal)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.Reason, payStatus, refundedTotal, balanceDue); err != nil {
			return s.mapTransitionError(err, "Cancel", bookingID)
		}

		if refund > 0 {
			if err := s.appendLog(txCtx, bookingID, domain.LogRefundIssued,
				fmt.Sprintf("Refunded %.2f", refund), nil, nil, req.Actor); err != nil {
				return err
			}
		}

		return s.appendStatusLog(txCtx, bookingID, booking.Status, domain.StatusCancelled, req.Actor)
	})
	if err != nil {
		// Возврат уже ушел в шлюз; несоответствие чинится вручную по журналу
		s.logger.Error("Cancel: booking id=%d failed to commit after refund of %.2f: %v", bookingID, refund, err)
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%d cancelled, refunded=%.2f", bookingID, refund)

	if err := s.mailer.SendCancelled(booking.GuestEmail, booking.GuestName, refund); err != nil {
		s.logger.Error("Cancel: failed to send email for booking id=%d: %v", bookingID, err)
	}

	return s.GetByID(ctx, bookingID)
}

// computeRefund вычисляет сумму возврата по политике отмены:
// капитан и система возвращают депозит целиком, гость — целиком при отмене
// за FreeCancellationNotice до выхода или из weather_hold, иначе депозит удерживается
func (s *Service) computeRefund(booking *domain.Booking, actor domain.ActorType, now time.Time) float64 {
	refundable := booking.DepositPaid - booking.RefundedAmount
	if refundable <= 0 {
		return 0
	}

	if actor == domain.ActorCaptain || actor == domain.ActorSystem {
		return refundable
	}
	if booking.Status == domain.StatusWeatherHold {
		return refundable
	}
	if booking.ScheduledStart.Sub(now) >= FreeCancellationNotice {
		return refundable
	}
	return 0
}

// closeTrip общий путь для Complete и NoShow
func (s *Service) closeTrip(ctx context.Context, bookingID, captainID int64, to domain.BookingStatus, op string) (*models.BookingResponse, error) {
	s.logger.Info("%s: booking id=%d by captain=%d", op, bookingID, captainID)

	booking, err := s.getOwnedBooking(ctx, bookingID, captainID, op)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(booking.Status, to) {
		s.logger.Warn("%s: booking id=%d in status=%s cannot transition to %s", op, bookingID, booking.Status, to)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
	}

	now := s.timeProvider.Now()
	if booking.ScheduledStart.After(now) {
		s.logger.Warn("%s: booking id=%d starts at %s, now %s", op, bookingID,
			booking.ScheduledStart.Format(time.RFC3339), now.Format(time.RFC3339))
		return nil, ErrTripNotStarted
	}

	allowedFrom := []domain.BookingStatus{domain.StatusConfirmed, domain.StatusRescheduled}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, allowedFrom, to); err != nil {
			return s.mapTransitionError(err, op, bookingID)
		}
		return s.appendStatusLog(txCtx, bookingID, booking.Status, to, domain.ActorCaptain)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%d closed as %s", op, bookingID, to)
	return s.GetByID(ctx, bookingID)
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

func (s *Service) getOwnedBooking(ctx context.Context, id, captainID int64, op string) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, id, op)
	if err != nil {
		return nil, err
	}
	if booking.CaptainID != captainID {
		s.logger.Warn("%s: captain=%d has no access to booking id=%d", op, captainID, id)
		return nil, ErrAccessDenied
	}
	return booking, nil
}

// mapTransitionError конвертирует ошибки guarded update в сервисные
func (s *Service) mapTransitionError(err error, op string, bookingID int64) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		s.logger.Warn("%s: booking id=%d status changed concurrently", op, bookingID)
		return ErrStatusConflict
	default:
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func (s *Service) appendStatusLog(ctx context.Context, bookingID int64, from, to domain.BookingStatus, actor domain.ActorType) error {
	return s.appendLog(ctx, bookingID, domain.LogStatusChanged,
		fmt.Sprintf("Status changed: %s -> %s", from, to),
		ptr.Ptr(string(from)), ptr.Ptr(string(to)), actor)
}

func (s *Service) appendLog(ctx context.Context, bookingID int64, entryType domain.LogEntryType, description string, oldValue, newValue *string, actor domain.ActorType) error {
	entry := &domain.BookingLog{
		BookingID:   bookingID,
		EntryType:   entryType,
		Description: description,
		OldValue:    oldValue,
		NewValue:    newValue,
		ActorType:   actor,
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		s.logger.Error("appendLog: failed to append %s for booking id=%d: %v", entryType, bookingID, err)
		return fmt.Errorf("%w: failed to append booking log: %v", ErrInternal, err)
	}
	return nil
}
