package triptype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/helmline/Charter-BookingService/internal/domain"
	"github.com/helmline/Charter-BookingService/pkg/dbmetrics"
	"github.com/helmline/Charter-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий справочных данных: типы поездок, суда, настройки капитана
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTripTypeByID возвращает тип поездки по идентификатору
func (r *Repository) GetTripTypeByID(ctx context.Context, id int64) (*domain.TripType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"captain_id",
		"vessel_id",
		"name",
		"duration_minutes",
		"price",
		"deposit_amount",
		"active",
	).
		From("trip_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTripTypeByID - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.TripType
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.CaptainID,
		&t.VesselID,
		&t.Name,
		&t.DurationMinutes,
		&t.Price,
		&t.DepositAmount,
		&t.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTripTypeNotFound
		}
		return nil, fmt.Errorf("%w: GetTripTypeByID - scan row: %v", ErrScanRow, err)
	}

	return &t, nil
}

// GetActiveTripTypes возвращает активные типы поездок капитана
func (r *Repository) GetActiveTripTypes(ctx context.Context, captainID int64) ([]*domain.TripType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"captain_id",
		"vessel_id",
		"name",
		"duration_minutes",
		"price",
		"deposit_amount",
		"active",
	).
		From("trip_types").
		Where(squirrel.Eq{"captain_id": captainID}).
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTripTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTripTypes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tripTypes := make([]*domain.TripType, 0)
	for rows.Next() {
		var t domain.TripType
		err := rows.Scan(
			&t.ID,
			&t.CaptainID,
			&t.VesselID,
			&t.Name,
			&t.DurationMinutes,
			&t.Price,
			&t.DepositAmount,
			&t.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveTripTypes - scan row: %v", ErrScanRow, err)
		}
		tripTypes = append(tripTypes, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveTripTypes - rows error: %v", ErrScanRow, err)
	}

	return tripTypes, nil
}

// GetVesselByID возвращает судно по идентификатору
func (r *Repository) GetVesselByID(ctx context.Context, id int64) (*domain.Vessel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"captain_id",
		"name",
		"capacity",
	).
		From("vessels").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetVesselByID - build select query: %v", ErrBuildQuery, err)
	}

	var v domain.Vessel
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID,
		&v.CaptainID,
		&v.Name,
		&v.Capacity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVesselNotFound
		}
		return nil, fmt.Errorf("%w: GetVesselByID - scan row: %v", ErrScanRow, err)
	}

	return &v, nil
}

// GetCaptainSettings возвращает настройки капитана
// Если строки нет, отдаем настройки по умолчанию — капитан их еще не менял
func (r *Repository) GetCaptainSettings(ctx context.Context, captainID int64) (*domain.CaptainSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"captain_id",
		"buffer_minutes",
		"advance_booking_days",
		"location",
	).
		From("captain_settings").
		Where(squirrel.Eq{"captain_id": captainID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCaptainSettings - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.CaptainSettings
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.CaptainID,
		&s.BufferMinutes,
		&s.AdvanceBookingDays,
		&s.Location,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.CaptainSettings{
				CaptainID:          captainID,
				BufferMinutes:      domain.DefaultBufferMinutes,
				AdvanceBookingDays: domain.DefaultAdvanceBookingDays,
			}, nil
		}
		return nil, fmt.Errorf("%w: GetCaptainSettings - scan row: %v", ErrScanRow, err)
	}

	return &s, nil
}

// UpsertCaptainSettings сохраняет настройки капитана
func (r *Repository) UpsertCaptainSettings(ctx context.Context, settings *domain.CaptainSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("captain_settings").
		Columns("captain_id", "buffer_minutes", "advance_booking_days", "location").
		Values(settings.CaptainID, settings.BufferMinutes, settings.AdvanceBookingDays, settings.Location).
		Suffix(`ON CONFLICT (captain_id) DO UPDATE SET
			buffer_minutes = EXCLUDED.buffer_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			location = EXCLUDED.location,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertCaptainSettings - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertCaptainSettings - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
