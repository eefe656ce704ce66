package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/pkg/dbmetrics"
	"github.com/helmline/Charter-BookingService/pkg/psqlbuilder"
)

const (
	// SQLSTATE коды нарушения ограничений
	pqUniqueViolation    = "23505"
	pqExclusionViolation = "23P01"
)

var bookingColumns = []string{
	"id",
	"captain_id",
	"vessel_id",
	"trip_type_id",
	"guest_name",
	"guest_email",
	"guest_phone",
	"party_size",
	"scheduled_start",
	"scheduled_end",
	"status",
	"payment_status",
	"total_price",
	"deposit_due",
	"deposit_paid",
	"refunded_amount",
	"balance_due",
	"payment_ref",
	"weather_hold_reason",
	"reminders_sent",
	"management_token",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование в статусе pending_deposit
// Вызывается только из admission usecase внутри сериализуемой транзакции:
// проверка пересечений и вставка должны зафиксироваться атомарно.
// Exclusion constraint на (captain_id, tstzrange) — последний рубеж против гонки;
// его нарушение маппится в ErrSlotTaken
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"captain_id",
			"vessel_id",
			"trip_type_id",
			"guest_name",
			"guest_email",
			"guest_phone",
			"party_size",
			"scheduled_start",
			"scheduled_end",
			"status",
			"payment_status",
			"total_price",
			"deposit_due",
			"deposit_paid",
			"refunded_amount",
			"balance_due",
			"management_token",
		).
		Values(
			booking.CaptainID,
			booking.VesselID,
			booking.TripTypeID,
			booking.GuestName,
			booking.GuestEmail,
			booking.GuestPhone,
			booking.PartySize,
			booking.ScheduledStart,
			booking.ScheduledEnd,
			booking.Status,
			booking.PaymentStatus,
			booking.TotalPrice,
			booking.DepositDue,
			booking.DepositPaid,
			booking.RefundedAmount,
			booking.BalanceDue,
			booking.ManagementToken,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetActiveOverlapping возвращает активные бронирования капитана, пересекающие
// полуоткрытый интервал [start, end); excludeID исключает собственный слот
// бронирования при переносе/изменении
//
// Внутри транзакции строки блокируются FOR UPDATE: это авторитетная проверка
// Conflict Detector'а непосредственно перед вставкой/переносом
func (r *Repository) GetActiveOverlapping(ctx context.Context, captainID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"captain_id": captainID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		// Полуоткрытые интервалы: s1 < e2 AND s2 < e1
		Where(squirrel.Lt{"scheduled_start": end}).
		Where(squirrel.Gt{"scheduled_end": start}).
		OrderBy("scheduled_start ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByCaptainWithFilter получает бронирования капитана с гибкой фильтрацией
// по судну, периоду, статусу и включению терминальных бронирований
func (r *Repository) GetByCaptainWithFilter(ctx context.Context, filter domain.CaptainBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"captain_id": filter.CaptainID})

	if filter.VesselID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"vessel_id": *filter.VesselID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_start": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"scheduled_start": filter.EndDate.AddDate(0, 0, 1)})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings()})
	}

	selectBuilder = selectBuilder.OrderBy("scheduled_start ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCaptainWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCaptainWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus переводит бронирование в статус to, только если текущий статус
// входит в allowedFrom (guarded update). 0 затронутых строк означает, что
// статус уже изменился конкурентно или переход нелегален — ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, id int64, allowedFrom []domain.BookingStatus, to domain.BookingStatus) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()"))

	return r.execGuarded(ctx, updateBuilder, id, allowedFrom, "UpdateStatus")
}

// ConfirmPayment фиксирует успешный платеж: pending_deposit -> confirmed,
// payment_status, суммы и ссылка на платеж в шлюзе обновляются атомарно с переходом
func (r *Repository) ConfirmPayment(ctx context.Context, id int64, payStatus domain.PaymentStatus, depositPaid, balanceDue float64, paymentRef string) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("payment_status", payStatus).
		Set("deposit_paid", depositPaid).
		Set("balance_due", balanceDue).
		Set("payment_ref", paymentRef).
		Set("updated_at", squirrel.Expr("NOW()"))

	return r.execGuarded(ctx, updateBuilder, id,
		[]domain.BookingStatus{domain.StatusPendingDeposit}, "ConfirmPayment")
}

// Cancel отменяет бронирование с причиной и результатом возврата средств
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, payStatus domain.PaymentStatus, refunded, balanceDue float64) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("payment_status", payStatus).
		Set("refunded_amount", refunded).
		Set("balance_due", balanceDue).
		Set("updated_at", squirrel.Expr("NOW()"))

	return r.execGuarded(ctx, updateBuilder, id, domain.ActiveStatuses, "Cancel")
}

// HoldForWeather переводит бронирование в weather_hold с причиной
// Расписание и платежные поля не изменяются
func (r *Repository) HoldForWeather(ctx context.Context, id int64, reason string) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusWeatherHold).
		Set("weather_hold_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()"))

	allowedFrom := []domain.BookingStatus{
		domain.StatusPendingDeposit,
		domain.StatusConfirmed,
		domain.StatusRescheduled,
	}
	return r.execGuarded(ctx, updateBuilder, id, allowedFrom, "HoldForWeather")
}

// Reschedule применяет новое расписание: weather_hold -> rescheduled
// Вызывается внутри сериализуемой транзакции после повторной проверки пересечений
func (r *Repository) Reschedule(ctx context.Context, id int64, newStart, newEnd time.Time) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusRescheduled).
		Set("scheduled_start", newStart).
		Set("scheduled_end", newEnd).
		Set("weather_hold_reason", nil).
		Set("updated_at", squirrel.Expr("NOW()"))

	return r.execGuarded(ctx, updateBuilder, id,
		[]domain.BookingStatus{domain.StatusWeatherHold}, "Reschedule")
}

// UpdateSchedule изменяет расписание активного бронирования без смены статуса
// (применение одобренного modification request)
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, newStart, newEnd time.Time) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("scheduled_start", newStart).
		Set("scheduled_end", newEnd).
		Set("updated_at", squirrel.Expr("NOW()"))

	return r.execGuarded(ctx, updateBuilder, id, domain.ActiveStatuses, "UpdateSchedule")
}

// UpdatePartySize изменяет размер группы активного бронирования
func (r *Repository) UpdatePartySize(ctx context.Context, id int64, partySize int) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("party_size", partySize).
		Set("updated_at", squirrel.Expr("NOW()"))

	return r.execGuarded(ctx, updateBuilder, id, domain.ActiveStatuses, "UpdatePartySize")
}

// ExpirePending переводит в expired все pending_deposit бронирования,
// чье время начала уже прошло, и возвращает их идентификаторы
// Повторный запуск на том же now затрагивает 0 строк — идемпотентность
// обеспечивается предикатом статуса
func (r *Repository) ExpirePending(ctx context.Context, now time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": string(domain.StatusPendingDeposit)}).
		Where(squirrel.Lt{"scheduled_start": now}).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ExpirePending - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExpirePending - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ExpirePending - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ExpirePending - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// GetRemindersDue возвращает подтвержденные бронирования, начинающиеся
// в интервале [now, now+window), по которым еще не отправлялось напоминание
func (r *Repository) GetRemindersDue(ctx context.Context, now time.Time, window time.Duration) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": []string{string(domain.StatusConfirmed), string(domain.StatusRescheduled)}}).
		Where(squirrel.GtOrEq{"scheduled_start": now}).
		Where(squirrel.Lt{"scheduled_start": now.Add(window)}).
		Where(squirrel.Eq{"reminders_sent": 0}).
		OrderBy("scheduled_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRemindersDue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRemindersDue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// IncrementReminders увеличивает счетчик отправленных напоминаний
func (r *Repository) IncrementReminders(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminders_sent", squirrel.Expr("reminders_sent + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementReminders - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementReminders - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementReminders - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// execGuarded выполняет guarded update: WHERE id = $1 AND status IN (allowedFrom)
func (r *Repository) execGuarded(ctx context.Context, builder squirrel.UpdateBuilder, id int64, allowedFrom []domain.BookingStatus, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fromStrings := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		fromStrings[i] = string(s)
	}

	query, args, err := builder.
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": fromStrings}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		// Различаем "нет такой строки" и "статус не тот"
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return ErrBookingNotFound
		}
		return ErrStatusConflict
	}

	return nil
}

// scanBooking сканирует одну строку результата
func (r *Repository) scanBooking(row *sql.Row, op string) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CaptainID,
		&booking.VesselID,
		&booking.TripTypeID,
		&booking.GuestName,
		&booking.GuestEmail,
		&booking.GuestPhone,
		&booking.PartySize,
		&booking.ScheduledStart,
		&booking.ScheduledEnd,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.TotalPrice,
		&booking.DepositDue,
		&booking.DepositPaid,
		&booking.RefundedAmount,
		&booking.BalanceDue,
		&booking.PaymentRef,
		&booking.WeatherHoldReason,
		&booking.RemindersSent,
		&booking.ManagementToken,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.CaptainID,
			&booking.VesselID,
			&booking.TripTypeID,
			&booking.GuestName,
			&booking.GuestEmail,
			&booking.GuestPhone,
			&booking.PartySize,
			&booking.ScheduledStart,
			&booking.ScheduledEnd,
			&booking.Status,
			&booking.PaymentStatus,
			&booking.TotalPrice,
			&booking.DepositDue,
			&booking.DepositPaid,
			&booking.RefundedAmount,
			&booking.BalanceDue,
			&booking.PaymentRef,
			&booking.WeatherHoldReason,
			&booking.RemindersSent,
			&booking.ManagementToken,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func isConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == pqUniqueViolation || code == pqExclusionViolation
	}
	return false
}
