package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/helmline/Charter-BookingService/internal/domain"
	bookingRepo "github.com/helmline/Charter-BookingService/internal/infra/storage/booking"
	triptypeRepo "github.com/helmline/Charter-BookingService/internal/infra/storage/triptype"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	logRepo          LogRepository
	tokenStore       TokenStore
	paymentsClient   PaymentsClient
	mailer           Mailer
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	logRepo LogRepository,
	tokenStore TokenStore,
	paymentsClient PaymentsClient,
	mailer Mailer,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		logRepo:          logRepo,
		tokenStore:       tokenStore,
		paymentsClient:   paymentsClient,
		mailer:           mailer,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка выполняются в сериализуемой транзакции,
// гонку двух одновременных заявок дополнительно закрывает exclusion constraint в БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: captain=%d, trip_type=%d, start=%s, party=%d",
		req.CaptainID, req.TripTypeID, req.Start.Format(time.RFC3339), req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем тип поездки
	tripType, err := uc.catalogRepo.GetTripTypeByID(ctx, req.TripTypeID)
	if err != nil {
		if errors.Is(err, triptypeRepo.ErrTripTypeNotFound) {
			uc.logger.Warn("CreateBooking: trip type id=%d not found", req.TripTypeID)
			return nil, ErrTripTypeNotFound
		}
		uc.logger.Error("CreateBooking: failed to get trip type id=%d: %v", req.TripTypeID, err)
		return nil, fmt.Errorf("%w: failed to get trip type: %v", ErrInternal, err)
	}

	// Чужой тип поездки неотличим от несуществующего
	if tripType.CaptainID != req.CaptainID {
		uc.logger.Warn("CreateBooking: trip type id=%d does not belong to captain=%d", req.TripTypeID, req.CaptainID)
		return nil, ErrTripTypeNotFound
	}
	if !tripType.Active {
		uc.logger.Warn("CreateBooking: trip type id=%d is inactive", req.TripTypeID)
		return nil, ErrTripTypeInactive
	}

	// 4. Проверяем вместимость судна; тип поездки без судна пропускает проверку
	if tripType.VesselID != nil {
		vessel, err := uc.catalogRepo.GetVesselByID(ctx, *tripType.VesselID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get vessel id=%d: %v", *tripType.VesselID, err)
			return nil, fmt.Errorf("%w: failed to get vessel: %v", ErrInternal, err)
		}
		if req.PartySize > vessel.Capacity {
			uc.logger.Warn("CreateBooking: party=%d exceeds vessel capacity=%d", req.PartySize, vessel.Capacity)
			return nil, fmt.Errorf("%w: vessel holds at most %d guests", ErrPartySizeExceedsCapacity, vessel.Capacity)
		}
	}

	// 5. Получаем настройки капитана
	settings, err := uc.catalogRepo.GetCaptainSettings(ctx, req.CaptainID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get captain settings id=%d: %v", req.CaptainID, err)
		return nil, fmt.Errorf("%w: failed to get captain settings: %v", ErrInternal, err)
	}

	start := req.Start
	end := start.Add(time.Duration(tripType.DurationMinutes) * time.Minute)

	// 6. Валидация даты и времени
	if err := validateDate(start, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if start.Before(now.Add(time.Duration(settings.BufferMinutes) * time.Minute)) {
		uc.logger.Warn("CreateBooking: start=%s is too soon", start.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: need at least %d minutes notice", ErrTooSoon, settings.BufferMinutes)
	}

	// 7. Проверяем blackout-дату
	blackedOut, err := uc.availabilityRepo.HasBlackout(ctx, req.CaptainID, start)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check blackout: %v", err)
		return nil, fmt.Errorf("%w: failed to check blackout: %v", ErrInternal, err)
	}
	if blackedOut {
		uc.logger.Warn("CreateBooking: date %s is blacked out for captain=%d",
			start.Format(domain.DateFormat), req.CaptainID)
		return nil, ErrDayNotBookable
	}

	// 8. Поездка должна помещаться в окно доступности
	windows, err := uc.availabilityRepo.GetActiveWindowsForDay(ctx, req.CaptainID, int(start.Weekday()))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get availability windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		uc.logger.Warn("CreateBooking: captain=%d has no windows on %s", req.CaptainID, start.Format(domain.DateFormat))
		return nil, ErrDayNotBookable
	}
	if err := validateFitsWindow(windows, start, start, end); err != nil {
		uc.logger.Warn("CreateBooking: trip %s-%s does not fit a window",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 9. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Активные бронирования на этот интервал с блокировкой (FOR UPDATE)
		overlapping, err := uc.bookingRepo.GetActiveOverlapping(txCtx, req.CaptainID, start, end, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot %s-%s overlaps %d active booking(s)",
				start.Format(time.RFC3339), end.Format(time.RFC3339), len(overlapping))
			return ErrSlotNotAvailable
		}

		// 9.2. Создаем бронирование в статусе pending_deposit
		booking := &domain.Booking{
			CaptainID:       req.CaptainID,
			VesselID:        tripType.VesselID,
			TripTypeID:      req.TripTypeID,
			GuestName:       req.GuestName,
			GuestEmail:      req.GuestEmail,
			GuestPhone:      req.GuestPhone,
			PartySize:       req.PartySize,
			ScheduledStart:  start,
			ScheduledEnd:    end,
			Status:          domain.StatusPendingDeposit,
			PaymentStatus:   domain.PaymentUnpaid,
			TotalPrice:      tripType.Price,
			DepositDue:      tripType.DepositAmount,
			ManagementToken: uuid.NewString(),
		}
		booking.RecomputeBalance()

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s-%s taken by concurrent booking", start.Format(time.RFC3339), end.Format(time.RFC3339))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 9.3. Первая запись журнала
		logEntry := &domain.BookingLog{
			BookingID:   created.ID,
			EntryType:   domain.LogBookingCreated,
			Description: fmt.Sprintf("Booking created for %s, party of %d", start.Format(time.RFC3339), req.PartySize),
			ActorType:   domain.ActorGuest,
		}
		if err := uc.logRepo.Append(txCtx, logEntry); err != nil {
			uc.logger.Error("CreateBooking: failed to append booking log: %v", err)
			return fmt.Errorf("%w: failed to append booking log: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 10. Регистрируем management-токен в Redis с TTL
	// Ошибка не откатывает бронирование: капитан управляет им и без гостевого токена
	if err := uc.tokenStore.Register(ctx, result.ManagementToken, result.ID); err != nil {
		uc.logger.Error("CreateBooking: failed to register management token for booking id=%d: %v", result.ID, err)
	}

	// 11. Создаем ордер на депозит
	var depositOrderID string
	order, err := uc.paymentsClient.CreateDepositOrder(result.ID, result.DepositDue)
	if err != nil {
		// Ордер можно пересоздать при оплате, бронирование не откатываем
		uc.logger.Error("CreateBooking: failed to create deposit order for booking id=%d: %v", result.ID, err)
	} else {
		depositOrderID = order.OrderID
	}

	// 12. Письмо гостю — fire and log
	if err := uc.mailer.SendBookingCreated(result.GuestEmail, result.GuestName, result.ScheduledStart, result.ManagementToken, result.DepositDue); err != nil {
		uc.logger.Error("CreateBooking: failed to send booking created email for booking id=%d: %v", result.ID, err)
	}

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		CaptainID:       result.CaptainID,
		VesselID:        result.VesselID,
		TripTypeID:      result.TripTypeID,
		GuestName:       result.GuestName,
		PartySize:       result.PartySize,
		ScheduledStart:  result.ScheduledStart,
		ScheduledEnd:    result.ScheduledEnd,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		TotalPrice:      result.TotalPrice,
		DepositDue:      result.DepositDue,
		BalanceDue:      result.BalanceDue,
		ManagementToken: result.ManagementToken,
		DepositOrderID:  depositOrderID,
		CreatedAt:       result.CreatedAt,
	}, nil
}
