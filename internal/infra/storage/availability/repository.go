package availability

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

const pqUniqueViolation = "23505"

// Repository репозиторий окон доступности и blackout-дат
// Обе таблицы принадлежат капитану; движок их только читает
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveWindowsForDay возвращает активные окна капитана на день недели,
// отсортированные по времени начала
func (r *Repository) GetActiveWindowsForDay(ctx context.Context, captainID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"captain_id",
		"day_of_week",
		"start_time",
		"end_time",
		"active",
		"created_at",
		"updated_at",
	).
		From("availability_windows").
		Where(squirrel.Eq{"captain_id": captainID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		Where(squirrel.Eq{"active": true}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveWindowsForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveWindowsForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// GetAllWindows возвращает все окна капитана (включая неактивные)
func (r *Repository) GetAllWindows(ctx context.Context, captainID int64) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"captain_id",
		"day_of_week",
		"start_time",
		"end_time",
		"active",
		"created_at",
		"updated_at",
	).
		From("availability_windows").
		Where(squirrel.Eq{"captain_id": captainID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// ReplaceWindows заменяет весь набор окон капитана
// Вызывается внутри транзакции из availability service
func (r *Repository) ReplaceWindows(ctx context.Context, captainID int64, windows []*domain.AvailabilityWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"captain_id": captainID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWindows - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWindows - execute delete: %v", ErrExecQuery, err)
	}

	if len(windows) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("availability_windows").
		Columns("captain_id", "day_of_week", "start_time", "end_time", "active")
	for _, w := range windows {
		insertBuilder = insertBuilder.Values(captainID, w.DayOfWeek, w.StartTime, w.EndTime, w.Active)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWindows - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWindows - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CountWindows возвращает количество окон капитана (для проверки seed)
func (r *Repository) CountWindows(ctx context.Context, captainID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("availability_windows").
		Where(squirrel.Eq{"captain_id": captainID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountWindows - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountWindows - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// HasBlackout проверяет, закрыта ли дата для бронирования
func (r *Repository) HasBlackout(ctx context.Context, captainID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("blackout_dates").
		Where(squirrel.Eq{"captain_id": captainID}).
		Where(squirrel.Eq{"date": dateOnly(date)}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasBlackout - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasBlackout - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// GetBlackoutsInRange возвращает blackout-даты капитана в интервале [from, to)
func (r *Repository) GetBlackoutsInRange(ctx context.Context, captainID int64, from, to time.Time) ([]*domain.BlackoutDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"captain_id",
		"date",
		"reason",
		"created_at",
	).
		From("blackout_dates").
		Where(squirrel.Eq{"captain_id": captainID}).
		Where(squirrel.GtOrEq{"date": dateOnly(from)}).
		Where(squirrel.Lt{"date": dateOnly(to)}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlackoutsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlackoutsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blackouts := make([]*domain.BlackoutDate, 0)
	for rows.Next() {
		var b domain.BlackoutDate
		var createdAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.CaptainID, &b.Date, &b.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetBlackoutsInRange - scan row: %v", ErrScanRow, err)
		}
		b.CreatedAt = createdAt.Time
		blackouts = append(blackouts, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlackoutsInRange - rows error: %v", ErrScanRow, err)
	}

	return blackouts, nil
}

// AddBlackout закрывает дату для бронирования
// Повторное закрытие той же даты нарушает уникальный индекс -> ErrDuplicateBlackout
func (r *Repository) AddBlackout(ctx context.Context, blackout *domain.BlackoutDate) (*domain.BlackoutDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blackout_dates").
		Columns("captain_id", "date", "reason").
		Values(blackout.CaptainID, dateOnly(blackout.Date), blackout.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddBlackout - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&blackout.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateBlackout
		}
		return nil, fmt.Errorf("%w: AddBlackout - execute insert: %v", ErrExecQuery, err)
	}

	blackout.CreatedAt = createdAt.Time
	return blackout, nil
}

// RemoveBlackout открывает дату обратно
func (r *Repository) RemoveBlackout(ctx context.Context, captainID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blackout_dates").
		Where(squirrel.Eq{"captain_id": captainID}).
		Where(squirrel.Eq{"date": dateOnly(date)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveBlackout - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveBlackout - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveBlackout - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlackoutNotFound
	}

	return nil
}

func (r *Repository) scanWindows(rows *sql.Rows) ([]*domain.AvailabilityWindow, error) {
	windows := make([]*domain.AvailabilityWindow, 0)

	for rows.Next() {
		var w domain.AvailabilityWindow
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&w.ID,
			&w.CaptainID,
			&w.DayOfWeek,
			&w.StartTime,
			&w.EndTime,
			&w.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %v", ErrScanRow, err)
		}

		w.CreatedAt = createdAt.Time
		w.UpdatedAt = updatedAt.Time
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// dateOnly обнуляет время, чтобы в колонку DATE попадала только дата
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
