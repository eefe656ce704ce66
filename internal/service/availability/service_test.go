package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmline/Charter-BookingService/internal/domain"
	availabilityRepository "github.com/helmline/Charter-BookingService/internal/infra/storage/availability"
	"github.com/helmline/Charter-BookingService/internal/service/availability/models"
	"github.com/helmline/Charter-BookingService/pkg/ptr"
)

// mockAvailabilityRepo хранит окна в памяти
type mockAvailabilityRepo struct {
	windows      []*domain.AvailabilityWindow
	blackouts    []*domain.BlackoutDate
	addBlackout  func(ctx context.Context, blackout *domain.BlackoutDate) (*domain.BlackoutDate, error)
	removeResult error
}

func (m *mockAvailabilityRepo) GetAllWindows(ctx context.Context, captainID int64) ([]*domain.AvailabilityWindow, error) {
	return m.windows, nil
}

func (m *mockAvailabilityRepo) ReplaceWindows(ctx context.Context, captainID int64, windows []*domain.AvailabilityWindow) error {
	m.windows = windows
	return nil
}

func (m *mockAvailabilityRepo) CountWindows(ctx context.Context, captainID int64) (int, error) {
	return len(m.windows), nil
}

func (m *mockAvailabilityRepo) GetBlackoutsInRange(ctx context.Context, captainID int64, from, to time.Time) ([]*domain.BlackoutDate, error) {
	return m.blackouts, nil
}

func (m *mockAvailabilityRepo) AddBlackout(ctx context.Context, blackout *domain.BlackoutDate) (*domain.BlackoutDate, error) {
	if m.addBlackout != nil {
		return m.addBlackout(ctx, blackout)
	}
	created := *blackout
	created.ID = int64(len(m.blackouts) + 1)
	m.blackouts = append(m.blackouts, &created)
	return &created, nil
}

func (m *mockAvailabilityRepo) RemoveBlackout(ctx context.Context, captainID int64, date time.Time) error {
	return m.removeResult
}

type mockCatalogRepo struct {
	settings *domain.CaptainSettings
	upserted *domain.CaptainSettings
}

func (m *mockCatalogRepo) GetCaptainSettings(ctx context.Context, captainID int64) (*domain.CaptainSettings, error) {
	if m.settings != nil {
		return m.settings, nil
	}
	return &domain.CaptainSettings{CaptainID: captainID, BufferMinutes: 120, AdvanceBookingDays: 90}, nil
}

func (m *mockCatalogRepo) UpsertCaptainSettings(ctx context.Context, settings *domain.CaptainSettings) error {
	m.upserted = settings
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *mockAvailabilityRepo, catalogRepo *mockCatalogRepo) *Service {
	if catalogRepo == nil {
		catalogRepo = &mockCatalogRepo{}
	}
	return &Service{
		availabilityRepo: repo,
		catalogRepo:      catalogRepo,
		txManager:        fakeTxManager{},
		logger:           nopLogger{},
	}
}

func TestReplaceWindows(t *testing.T) {
	repo := &mockAvailabilityRepo{}
	svc := newTestService(repo, nil)

	resp, err := svc.ReplaceWindows(context.Background(), &models.ReplaceWindowsRequest{
		CaptainID: 1,
		Windows: []models.WindowInput{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00", Active: true},
			{DayOfWeek: 1, StartTime: "12:00", EndTime: "18:00", Active: true}, // граничат, допустимо
			{DayOfWeek: 6, StartTime: "06:00", EndTime: "20:00", Active: true},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Windows, 3)
	require.Len(t, repo.windows, 3)
	assert.Equal(t, "08:00", resp.Windows[0].StartTime)
}

func TestReplaceWindows_OverlapRejected(t *testing.T) {
	repo := &mockAvailabilityRepo{}
	svc := newTestService(repo, nil)

	_, err := svc.ReplaceWindows(context.Background(), &models.ReplaceWindowsRequest{
		CaptainID: 1,
		Windows: []models.WindowInput{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "13:00", Active: true},
			{DayOfWeek: 1, StartTime: "12:00", EndTime: "18:00", Active: true},
		},
	})
	assert.ErrorIs(t, err, ErrOverlappingWindows)
	assert.Empty(t, repo.windows)
}

func TestReplaceWindows_InvalidWindow(t *testing.T) {
	svc := newTestService(&mockAvailabilityRepo{}, nil)

	_, err := svc.ReplaceWindows(context.Background(), &models.ReplaceWindowsRequest{
		CaptainID: 1,
		Windows:   []models.WindowInput{{DayOfWeek: 1, StartTime: "18:00", EndTime: "08:00", Active: true}},
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = svc.ReplaceWindows(context.Background(), &models.ReplaceWindowsRequest{
		CaptainID: 1,
		Windows:   []models.WindowInput{{DayOfWeek: 1, StartTime: "8am", EndTime: "18:00", Active: true}},
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = svc.ReplaceWindows(context.Background(), &models.ReplaceWindowsRequest{
		CaptainID: 1,
		Windows:   []models.WindowInput{{DayOfWeek: 7, StartTime: "08:00", EndTime: "18:00", Active: true}},
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestSeedDefaults(t *testing.T) {
	repo := &mockAvailabilityRepo{}
	svc := newTestService(repo, nil)

	require.NoError(t, svc.SeedDefaults(context.Background(), 1))

	require.Len(t, repo.windows, 7)
	for _, w := range repo.windows {
		assert.Equal(t, "08:00", w.StartTime.String())
		assert.Equal(t, "18:00", w.EndTime.String())
		if w.DayOfWeek == int(time.Sunday) {
			assert.False(t, w.Active)
		} else {
			assert.True(t, w.Active)
		}
	}
}

func TestSeedDefaults_SkipsExistingSchedule(t *testing.T) {
	custom := &domain.AvailabilityWindow{CaptainID: 1, DayOfWeek: 5, StartTime: "06:00", EndTime: "14:00", Active: true}
	repo := &mockAvailabilityRepo{windows: []*domain.AvailabilityWindow{custom}}
	svc := newTestService(repo, nil)

	require.NoError(t, svc.SeedDefaults(context.Background(), 1))

	// Существующее расписание не перезаписано
	require.Len(t, repo.windows, 1)
	assert.Equal(t, custom, repo.windows[0])
}

func TestAddBlackout(t *testing.T) {
	repo := &mockAvailabilityRepo{}
	svc := newTestService(repo, nil)

	resp, err := svc.AddBlackout(context.Background(), &models.AddBlackoutRequest{
		CaptainID: 1,
		Date:      time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
		Reason:    ptr.Ptr("haul-out"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-07-04", resp.Date)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "haul-out", *resp.Reason)
}

func TestAddBlackout_Duplicate(t *testing.T) {
	repo := &mockAvailabilityRepo{
		addBlackout: func(ctx context.Context, blackout *domain.BlackoutDate) (*domain.BlackoutDate, error) {
			return nil, availabilityRepository.ErrDuplicateBlackout
		},
	}
	svc := newTestService(repo, nil)

	_, err := svc.AddBlackout(context.Background(), &models.AddBlackoutRequest{
		CaptainID: 1,
		Date:      time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDuplicateBlackout)
}

func TestRemoveBlackout_NotFound(t *testing.T) {
	repo := &mockAvailabilityRepo{removeResult: availabilityRepository.ErrBlackoutNotFound}
	svc := newTestService(repo, nil)

	err := svc.RemoveBlackout(context.Background(), 1, time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrBlackoutNotFound)
}

func TestUpdateSettings(t *testing.T) {
	catalogRepo := &mockCatalogRepo{}
	svc := newTestService(&mockAvailabilityRepo{}, catalogRepo)

	resp, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		CaptainID:          1,
		BufferMinutes:      90,
		AdvanceBookingDays: 60,
		Location:           "Key West, FL",
	})
	require.NoError(t, err)

	assert.Equal(t, 90, resp.BufferMinutes)
	assert.Equal(t, 60, resp.AdvanceBookingDays)
	require.NotNil(t, catalogRepo.upserted)
	assert.Equal(t, "Key West, FL", catalogRepo.upserted.Location)
}

func TestUpdateSettings_NegativeValues(t *testing.T) {
	svc := newTestService(&mockAvailabilityRepo{}, nil)

	_, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		CaptainID:     1,
		BufferMinutes: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSchedule(t *testing.T) {
	repo := &mockAvailabilityRepo{
		windows: []*domain.AvailabilityWindow{
			{ID: 1, CaptainID: 1, DayOfWeek: 1, StartTime: "08:00", EndTime: "18:00", Active: true},
		},
		blackouts: []*domain.BlackoutDate{
			{ID: 1, CaptainID: 1, Date: time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)},
		},
	}
	svc := newTestService(repo, nil)

	resp, err := svc.GetSchedule(context.Background(), 1,
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, resp.Windows, 1)
	require.Len(t, resp.Blackouts, 1)
	assert.Equal(t, "2026-07-04", resp.Blackouts[0].Date)
}
