package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/pkg/ptr"
)

// Service фоновые проходы по бронированиям: истечение неоплаченных заявок
// и напоминания о предстоящих выходах
// Оба прохода идемпотентны: повторный запуск на тех же данных ничего не меняет
type Service struct {
	bookingRepo    BookingRepository
	logRepo        LogRepository
	mailer         Mailer
	txManager      TransactionManager
	timeProvider   TimeProvider
	reminderWindow time.Duration
	logger         Logger
}

// NewService создает новый экземпляр sweeper-сервиса
func NewService(
	bookingRepo BookingRepository,
	logRepo LogRepository,
	mailer Mailer,
	txManager TransactionManager,
	reminderWindow time.Duration,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		logRepo:        logRepo,
		mailer:         mailer,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		reminderWindow: reminderWindow,
		logger:         logger,
	}
}

// SweepExpired переводит в expired все pending_deposit бронирования,
// чье время начала прошло, и возвращает их идентификаторы
// Депозит не оплачен, поэтому возвратов нет; слот освобождается
func (s *Service) SweepExpired(ctx context.Context) ([]int64, error) {
	now := s.timeProvider.Now()
	s.logger.Info("SweepExpired: sweeping pending bookings older than %s", now.Format(time.RFC3339))

	var expired []int64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		ids, err := s.bookingRepo.ExpirePending(txCtx, now)
		if err != nil {
			return fmt.Errorf("%w: SweepExpired - expire pending: %v", ErrInternal, err)
		}

		for _, id := range ids {
			entry := &domain.BookingLog{
				BookingID:   id,
				EntryType:   domain.LogStatusChanged,
				Description: "Deposit hold window elapsed, booking expired",
				OldValue:    ptr.Ptr(string(domain.StatusPendingDeposit)),
				NewValue:    ptr.Ptr(string(domain.StatusExpired)),
				ActorType:   domain.ActorSystem,
			}
			if err := s.logRepo.Append(txCtx, entry); err != nil {
				return fmt.Errorf("%w: SweepExpired - append log for booking id=%d: %v", ErrInternal, id, err)
			}
		}

		expired = ids
		return nil
	})
	if err != nil {
		s.logger.Error("SweepExpired: %v", err)
		return nil, err
	}

	s.logger.Info("SweepExpired: expired %d booking(s)", len(expired))
	return expired, nil
}

// SendReminders отправляет напоминания по бронированиям, начинающимся
// в ближайшем окне. Счетчик reminders_sent инкрементируется только после
// успешной отправки: неудачные попытки повторяются следующим проходом
func (s *Service) SendReminders(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	due, err := s.bookingRepo.GetRemindersDue(ctx, now, s.reminderWindow)
	if err != nil {
		s.logger.Error("SendReminders: failed to get due bookings: %v", err)
		return 0, fmt.Errorf("%w: SendReminders - get due bookings: %v", ErrInternal, err)
	}

	sent := 0
	for _, booking := range due {
		if err := s.mailer.SendReminder(booking.GuestEmail, booking.GuestName, booking.ScheduledStart, booking.BalanceDue); err != nil {
			s.logger.Error("SendReminders: failed to send reminder for booking id=%d: %v", booking.ID, err)
			s.appendNotificationLog(ctx, booking.ID, domain.LogNotificationFailed,
				fmt.Sprintf("Reminder email failed: %v", err))
			continue
		}

		if err := s.bookingRepo.IncrementReminders(ctx, booking.ID); err != nil {
			s.logger.Error("SendReminders: failed to increment counter for booking id=%d: %v", booking.ID, err)
			continue
		}

		s.appendNotificationLog(ctx, booking.ID, domain.LogNotificationSent, "Reminder email sent")
		sent++
	}

	s.logger.Info("SendReminders: sent %d of %d due reminder(s)", sent, len(due))
	return sent, nil
}

// appendNotificationLog пишет запись журнала; ошибка журнала не прерывает проход
func (s *Service) appendNotificationLog(ctx context.Context, bookingID int64, entryType domain.LogEntryType, description string) {
	entry := &domain.BookingLog{
		BookingID:   bookingID,
		EntryType:   entryType,
		Description: description,
		ActorType:   domain.ActorSystem,
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		s.logger.Error("appendNotificationLog: failed for booking id=%d: %v", bookingID, err)
	}
}
