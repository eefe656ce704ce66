package get_range_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

type mockAvailabilityRepo struct {
	allWindowsFunc func(ctx context.Context, captainID int64) ([]*domain.AvailabilityWindow, error)
	blackoutsFunc  func(ctx context.Context, captainID int64, from, to time.Time) ([]*domain.BlackoutDate, error)
}

func (m *mockAvailabilityRepo) GetAllWindows(ctx context.Context, captainID int64) ([]*domain.AvailabilityWindow, error) {
	if m.allWindowsFunc != nil {
		return m.allWindowsFunc(ctx, captainID)
	}
	return []*domain.AvailabilityWindow{}, nil
}

func (m *mockAvailabilityRepo) GetBlackoutsInRange(ctx context.Context, captainID int64, from, to time.Time) ([]*domain.BlackoutDate, error) {
	if m.blackoutsFunc != nil {
		return m.blackoutsFunc(ctx, captainID, from, to)
	}
	return []*domain.BlackoutDate{}, nil
}

type mockCatalogRepo struct {
	settingsFunc func(ctx context.Context, captainID int64) (*domain.CaptainSettings, error)
}

func (m *mockCatalogRepo) GetCaptainSettings(ctx context.Context, captainID int64) (*domain.CaptainSettings, error) {
	if m.settingsFunc != nil {
		return m.settingsFunc(ctx, captainID)
	}
	return &domain.CaptainSettings{CaptainID: captainID, BufferMinutes: 120, AdvanceBookingDays: 90}, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// testNow — понедельник
var testNow = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func newTestUseCase(availabilityRepo *mockAvailabilityRepo, catalogRepo *mockCatalogRepo) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		timeProvider:     &fixedTimeProvider{now: testNow},
		logger:           nopLogger{},
	}
}

func TestExecute_ClassifiesDays(t *testing.T) {
	availabilityRepo := &mockAvailabilityRepo{
		allWindowsFunc: func(ctx context.Context, captainID int64) ([]*domain.AvailabilityWindow, error) {
			// Открыты вторник и среда; окно на четверг неактивно
			return []*domain.AvailabilityWindow{
				{CaptainID: captainID, DayOfWeek: 2, StartTime: "08:00", EndTime: "18:00", Active: true},
				{CaptainID: captainID, DayOfWeek: 3, StartTime: "08:00", EndTime: "18:00", Active: true},
				{CaptainID: captainID, DayOfWeek: 4, StartTime: "08:00", EndTime: "18:00", Active: false},
			}, nil
		},
		blackoutsFunc: func(ctx context.Context, captainID int64, from, to time.Time) ([]*domain.BlackoutDate, error) {
			// Среда 3 июня закрыта вручную
			return []*domain.BlackoutDate{
				{CaptainID: captainID, Date: time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
	}

	uc := newTestUseCase(availabilityRepo, &mockCatalogRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		CaptainID: 1,
		From:      time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC), // воскресенье, в прошлом
		To:        time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),  // четверг
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 5)

	assert.Equal(t, domain.DayPast, resp.Days[0].Status)       // вс 31 мая — прошлое
	assert.Equal(t, domain.DayClosed, resp.Days[1].Status)     // пн 1 июня — нет окон
	assert.Equal(t, domain.DayOpen, resp.Days[2].Status)       // вт 2 июня
	assert.Equal(t, domain.DayBlackedOut, resp.Days[3].Status) // ср 3 июня — blackout важнее окон
	assert.Equal(t, domain.DayClosed, resp.Days[4].Status)     // чт 4 июня — окно неактивно
}

func TestExecute_HorizonBeatsBlackout(t *testing.T) {
	beyondHorizon := testNow.AddDate(0, 0, 91)

	availabilityRepo := &mockAvailabilityRepo{
		blackoutsFunc: func(ctx context.Context, captainID int64, from, to time.Time) ([]*domain.BlackoutDate, error) {
			return []*domain.BlackoutDate{{CaptainID: captainID, Date: beyondHorizon}}, nil
		},
	}

	uc := newTestUseCase(availabilityRepo, &mockCatalogRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		CaptainID: 1,
		From:      beyondHorizon,
		To:        beyondHorizon,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	// День за горизонтом остается beyond_horizon даже с blackout
	assert.Equal(t, domain.DayBeyondHorizon, resp.Days[0].Status)
}

func TestExecute_ZeroHorizonMeansUnlimited(t *testing.T) {
	farFuture := testNow.AddDate(2, 0, 0)
	dayOfWeek := int(farFuture.Weekday())

	availabilityRepo := &mockAvailabilityRepo{
		allWindowsFunc: func(ctx context.Context, captainID int64) ([]*domain.AvailabilityWindow, error) {
			return []*domain.AvailabilityWindow{
				{CaptainID: captainID, DayOfWeek: dayOfWeek, StartTime: "08:00", EndTime: "18:00", Active: true},
			}, nil
		},
	}
	catalogRepo := &mockCatalogRepo{
		settingsFunc: func(ctx context.Context, captainID int64) (*domain.CaptainSettings, error) {
			return &domain.CaptainSettings{CaptainID: captainID, AdvanceBookingDays: 0}, nil
		},
	}

	uc := newTestUseCase(availabilityRepo, catalogRepo)

	resp, err := uc.Execute(context.Background(), &Request{CaptainID: 1, From: farFuture, To: farFuture})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, domain.DayOpen, resp.Days[0].Status)
}

func TestExecute_BlackoutUpperBoundIsExclusive(t *testing.T) {
	var gotFrom, gotTo time.Time
	availabilityRepo := &mockAvailabilityRepo{
		blackoutsFunc: func(ctx context.Context, captainID int64, from, to time.Time) ([]*domain.BlackoutDate, error) {
			gotFrom, gotTo = from, to
			return []*domain.BlackoutDate{}, nil
		},
	}

	uc := newTestUseCase(availabilityRepo, &mockCatalogRepo{})

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{CaptainID: 1, From: from, To: to})
	require.NoError(t, err)

	assert.Equal(t, from, gotFrom)
	assert.Equal(t, to.AddDate(0, 0, 1), gotTo)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&mockAvailabilityRepo{}, &mockCatalogRepo{})

	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{CaptainID: 0, From: from, To: from})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CaptainID: 1, To: from})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CaptainID: 1, From: from, To: from.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CaptainID: 1, From: from, To: from.AddDate(0, 0, MaxRangeDays+1)})
	assert.ErrorIs(t, err, ErrRangeTooWide)
}
