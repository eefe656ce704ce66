package bookinglog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/pkg/dbmetrics"
	"github.com/helmline/Charter-BookingService/pkg/psqlbuilder"
)

// Repository append-only журнал событий бронирования
// Записи не изменяются и не удаляются
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в журнал бронирования
func (r *Repository) Append(ctx context.Context, entry *domain.BookingLog) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_logs").
		Columns(
			"booking_id",
			"entry_type",
			"description",
			"old_value",
			"new_value",
			"actor_type",
			"actor_id",
		).
		Values(
			entry.BookingID,
			entry.EntryType,
			entry.Description,
			entry.OldValue,
			entry.NewValue,
			entry.ActorType,
			entry.ActorID,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetForBooking возвращает журнал бронирования в хронологическом порядке
func (r *Repository) GetForBooking(ctx context.Context, bookingID int64) ([]*domain.BookingLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"entry_type",
		"description",
		"old_value",
		"new_value",
		"actor_type",
		"actor_id",
		"created_at",
	).
		From("booking_logs").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.BookingLog, 0)
	for rows.Next() {
		var e domain.BookingLog
		var createdAt sql.NullTime

		err := rows.Scan(
			&e.ID,
			&e.BookingID,
			&e.EntryType,
			&e.Description,
			&e.OldValue,
			&e.NewValue,
			&e.ActorType,
			&e.ActorID,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetForBooking - scan row: %v", ErrScanRow, err)
		}

		e.CreatedAt = createdAt.Time
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetForBooking - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
