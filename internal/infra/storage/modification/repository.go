package modification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/pkg/dbmetrics"
	"github.com/helmline/Charter-BookingService/pkg/psqlbuilder"
)

var modificationColumns = []string{
	"id",
	"booking_id",
	"requested_by",
	"new_start",
	"new_party_size",
	"original_start",
	"original_party_size",
	"status",
	"reason",
	"decided_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий запросов на изменение бронирования
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый запрос на изменение в статусе pending
func (r *Repository) Create(ctx context.Context, request *domain.ModificationRequest) (*domain.ModificationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("modification_requests").
		Columns(
			"booking_id",
			"requested_by",
			"new_start",
			"new_party_size",
			"original_start",
			"original_party_size",
			"status",
			"reason",
		).
		Values(
			request.BookingID,
			request.RequestedBy,
			request.NewStart,
			request.NewPartySize,
			request.OriginalStart,
			request.OriginalPartySize,
			domain.ModificationPending,
			request.Reason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&request.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	request.Status = domain.ModificationPending
	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return request, nil
}

// GetByID возвращает запрос на изменение по идентификатору
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ModificationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(modificationColumns...).
		From("modification_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	request, err := r.scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrModificationNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return request, nil
}

// GetPendingForBooking возвращает нерешенные запросы по бронированию
func (r *Repository) GetPendingForBooking(ctx context.Context, bookingID int64) ([]*domain.ModificationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(modificationColumns...).
		From("modification_requests").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"status": domain.ModificationPending}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingForBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingForBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.ModificationRequest, 0)
	for rows.Next() {
		request, err := r.scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetPendingForBooking - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPendingForBooking - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// GetPendingForCaptain возвращает нерешенные запросы по всем бронированиям капитана
func (r *Repository) GetPendingForCaptain(ctx context.Context, captainID int64) ([]*domain.ModificationRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cols := make([]string, 0, len(modificationColumns))
	for _, c := range modificationColumns {
		cols = append(cols, "m."+c)
	}

	query, args, err := psqlbuilder.Select(cols...).
		From("modification_requests m").
		Join("bookings b ON b.id = m.booking_id").
		Where(squirrel.Eq{"b.captain_id": captainID}).
		Where(squirrel.Eq{"m.status": domain.ModificationPending}).
		OrderBy("m.created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingForCaptain - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingForCaptain - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.ModificationRequest, 0)
	for rows.Next() {
		request, err := r.scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetPendingForCaptain - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPendingForCaptain - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// Decide переводит pending запрос в approved или rejected
// Guarded update: решение по уже решенному запросу не перезаписывается
func (r *Repository) Decide(ctx context.Context, id int64, status domain.ModificationStatus, decidedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("modification_requests").
		Set("status", status).
		Set("decided_at", decidedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.ModificationPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Decide - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Decide - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Decide - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		// Различаем отсутствующий запрос и уже решенный
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyDecided
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanRequest(row rowScanner) (*domain.ModificationRequest, error) {
	var m domain.ModificationRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&m.ID,
		&m.BookingID,
		&m.RequestedBy,
		&m.NewStart,
		&m.NewPartySize,
		&m.OriginalStart,
		&m.OriginalPartySize,
		&m.Status,
		&m.Reason,
		&m.DecidedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}
