package modifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmline/Charter-BookingService/internal/domain"
	bookingRepository "github.com/helmline/Charter-BookingService/internal/infra/storage/booking"
	modificationRepository "github.com/helmline/Charter-BookingService/internal/infra/storage/modification"
	"github.com/helmline/Charter-BookingService/internal/service/modifications/models"
	"github.com/helmline/Charter-BookingService/pkg/ptr"
)

type mockBookingRepo struct {
	booking          *domain.Booking
	overlappingFunc  func(ctx context.Context, captainID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error)
	scheduleUpdates  []time.Time
	partySizeUpdates []int
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.booking == nil || m.booking.ID != id {
		return nil, bookingRepository.ErrBookingNotFound
	}
	return m.booking, nil
}

func (m *mockBookingRepo) GetActiveOverlapping(ctx context.Context, captainID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
	if m.overlappingFunc != nil {
		return m.overlappingFunc(ctx, captainID, start, end, excludeID)
	}
	return []*domain.Booking{}, nil
}

func (m *mockBookingRepo) UpdateSchedule(ctx context.Context, id int64, newStart, newEnd time.Time) error {
	m.scheduleUpdates = append(m.scheduleUpdates, newStart, newEnd)
	return nil
}

func (m *mockBookingRepo) UpdatePartySize(ctx context.Context, id int64, partySize int) error {
	m.partySizeUpdates = append(m.partySizeUpdates, partySize)
	return nil
}

// mockModificationRepo хранит запросы в памяти, как настоящий репозиторий
type mockModificationRepo struct {
	requests map[int64]*domain.ModificationRequest
	nextID   int64
}

func newMockModificationRepo() *mockModificationRepo {
	return &mockModificationRepo{requests: make(map[int64]*domain.ModificationRequest), nextID: 1}
}

func (m *mockModificationRepo) Create(ctx context.Context, request *domain.ModificationRequest) (*domain.ModificationRequest, error) {
	created := *request
	created.ID = m.nextID
	created.Status = domain.ModificationPending
	m.requests[created.ID] = &created
	m.nextID++
	return &created, nil
}

func (m *mockModificationRepo) GetByID(ctx context.Context, id int64) (*domain.ModificationRequest, error) {
	request, ok := m.requests[id]
	if !ok {
		return nil, modificationRepository.ErrModificationNotFound
	}
	return request, nil
}

func (m *mockModificationRepo) GetPendingForCaptain(ctx context.Context, captainID int64) ([]*domain.ModificationRequest, error) {
	pending := make([]*domain.ModificationRequest, 0)
	for _, request := range m.requests {
		if request.Status == domain.ModificationPending {
			pending = append(pending, request)
		}
	}
	return pending, nil
}

func (m *mockModificationRepo) Decide(ctx context.Context, id int64, status domain.ModificationStatus, decidedAt time.Time) error {
	request, ok := m.requests[id]
	if !ok {
		return ErrModificationNotFound
	}
	request.Status = status
	request.DecidedAt = &decidedAt
	return nil
}

type mockCatalogRepo struct {
	capacity int
	noVessel bool
}

func (m *mockCatalogRepo) GetTripTypeByID(ctx context.Context, id int64) (*domain.TripType, error) {
	tripType := &domain.TripType{ID: id, CaptainID: 1, DurationMinutes: 240, Active: true}
	if !m.noVessel {
		tripType.VesselID = ptr.Ptr(int64(10))
	}
	return tripType, nil
}

func (m *mockCatalogRepo) GetVesselByID(ctx context.Context, id int64) (*domain.Vessel, error) {
	capacity := m.capacity
	if capacity == 0 {
		capacity = 6
	}
	return &domain.Vessel{ID: id, CaptainID: 1, Capacity: capacity}, nil
}

func (m *mockCatalogRepo) GetCaptainSettings(ctx context.Context, captainID int64) (*domain.CaptainSettings, error) {
	return &domain.CaptainSettings{CaptainID: captainID, BufferMinutes: 120, AdvanceBookingDays: 90}, nil
}

type mockAvailabilityRepo struct {
	windowsFunc  func(ctx context.Context, captainID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
	blackoutFunc func(ctx context.Context, captainID int64, date time.Time) (bool, error)
}

func (m *mockAvailabilityRepo) GetActiveWindowsForDay(ctx context.Context, captainID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	if m.windowsFunc != nil {
		return m.windowsFunc(ctx, captainID, dayOfWeek)
	}
	return []*domain.AvailabilityWindow{
		{CaptainID: captainID, DayOfWeek: dayOfWeek, StartTime: "08:00", EndTime: "18:00", Active: true},
	}, nil
}

func (m *mockAvailabilityRepo) HasBlackout(ctx context.Context, captainID int64, date time.Time) (bool, error) {
	if m.blackoutFunc != nil {
		return m.blackoutFunc(ctx, captainID, date)
	}
	return false, nil
}

type mockLogRepo struct {
	entries []*domain.BookingLog
}

func (m *mockLogRepo) Append(ctx context.Context, entry *domain.BookingLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

type mockMailer struct {
	rescheduled int
}

func (m *mockMailer) SendRescheduled(to, guestName string, newStart time.Time) error {
	m.rescheduled++
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:             42,
		CaptainID:      1,
		TripTypeID:     5,
		GuestName:      "Alex Morgan",
		GuestEmail:     "alex@example.com",
		PartySize:      4,
		ScheduledStart: testNow.AddDate(0, 0, 7),
		ScheduledEnd:   testNow.AddDate(0, 0, 7).Add(4 * time.Hour),
		Status:         domain.StatusConfirmed,
	}
}

type testEnv struct {
	svc              *Service
	bookingRepo      *mockBookingRepo
	modificationRepo *mockModificationRepo
	availabilityRepo *mockAvailabilityRepo
	catalogRepo      *mockCatalogRepo
	logRepo          *mockLogRepo
	mailer           *mockMailer
}

func newTestEnv(booking *domain.Booking) *testEnv {
	env := &testEnv{
		bookingRepo:      &mockBookingRepo{booking: booking},
		modificationRepo: newMockModificationRepo(),
		availabilityRepo: &mockAvailabilityRepo{},
		catalogRepo:      &mockCatalogRepo{},
		logRepo:          &mockLogRepo{},
		mailer:           &mockMailer{},
	}
	env.svc = &Service{
		bookingRepo:      env.bookingRepo,
		modificationRepo: env.modificationRepo,
		availabilityRepo: env.availabilityRepo,
		catalogRepo:      env.catalogRepo,
		logRepo:          env.logRepo,
		mailer:           env.mailer,
		txManager:        fakeTxManager{},
		timeProvider:     &fixedTimeProvider{now: testNow},
		logger:           nopLogger{},
	}
	return env
}

func TestRequest_GuestStaysPending(t *testing.T) {
	env := newTestEnv(activeBooking())
	newStart := testNow.AddDate(0, 0, 10)

	resp, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorGuest,
		NewStart: &newStart,
		Reason:   "family arrives later",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.ModificationPending), resp.Status)
	assert.Nil(t, resp.DecidedAt)

	// Бронирование не тронуто до решения капитана
	assert.Empty(t, env.bookingRepo.scheduleUpdates)
	assert.Empty(t, env.bookingRepo.partySizeUpdates)

	require.Len(t, env.logRepo.entries, 1)
	assert.Equal(t, domain.LogModificationRequested, env.logRepo.entries[0].EntryType)
}

func TestRequest_CaptainAppliedImmediately(t *testing.T) {
	env := newTestEnv(activeBooking())
	newStart := testNow.AddDate(0, 0, 10)

	resp, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorCaptain,
		NewStart: &newStart,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.ModificationApproved), resp.Status)
	require.NotNil(t, resp.DecidedAt)

	// Конец сдвинут на ту же длительность (4 часа)
	require.Len(t, env.bookingRepo.scheduleUpdates, 2)
	assert.Equal(t, newStart, env.bookingRepo.scheduleUpdates[0])
	assert.Equal(t, newStart.Add(4*time.Hour), env.bookingRepo.scheduleUpdates[1])

	assert.Equal(t, 1, env.mailer.rescheduled)
}

func TestRequest_NoChange(t *testing.T) {
	booking := activeBooking()
	env := newTestEnv(booking)

	_, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{Actor: domain.ActorGuest})
	assert.ErrorIs(t, err, ErrNoChange)

	// Значения, совпадающие с текущими, тоже не изменение
	_, err = env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:        domain.ActorGuest,
		NewStart:     &booking.ScheduledStart,
		NewPartySize: ptr.Ptr(booking.PartySize),
	})
	assert.ErrorIs(t, err, ErrNoChange)
}

func TestRequest_TerminalBooking(t *testing.T) {
	booking := activeBooking()
	booking.Status = domain.StatusCancelled
	env := newTestEnv(booking)

	_, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:        domain.ActorGuest,
		NewPartySize: ptr.Ptr(6),
	})
	assert.ErrorIs(t, err, ErrBookingNotActive)
}

func TestRequest_PartySizeExceedsCapacity(t *testing.T) {
	env := newTestEnv(activeBooking())

	_, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:        domain.ActorGuest,
		NewPartySize: ptr.Ptr(7), // судно на 6 мест
	})
	assert.ErrorIs(t, err, ErrPartySizeExceedsCapacity)
}

// Тип поездки без судна не ограничивает размер группы
func TestRequest_PartySizeWithoutVessel(t *testing.T) {
	env := newTestEnv(activeBooking())
	env.catalogRepo.noVessel = true

	resp, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:        domain.ActorGuest,
		NewPartySize: ptr.Ptr(domain.MaxPartySize),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.ModificationPending), resp.Status)
}

// Новое время проходит те же календарные ворота, что и создание бронирования
func TestRequest_NewStartOnBlackedOutDate(t *testing.T) {
	env := newTestEnv(activeBooking())
	env.availabilityRepo.blackoutFunc = func(ctx context.Context, captainID int64, date time.Time) (bool, error) {
		return true, nil
	}
	newStart := testNow.AddDate(0, 0, 10)

	_, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorGuest,
		NewStart: &newStart,
	})
	assert.ErrorIs(t, err, ErrDayNotBookable)
}

func TestRequest_NewStartOutsideWindow(t *testing.T) {
	env := newTestEnv(activeBooking())
	// Поездка 4 часа: 16:00-20:00 не помещается в окно до 18:00
	newStart := time.Date(2026, 6, 11, 16, 0, 0, 0, time.UTC)

	_, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorGuest,
		NewStart: &newStart,
	})
	assert.ErrorIs(t, err, ErrOutsideWindow)
}

func TestRequest_NewStartOnClosedDay(t *testing.T) {
	env := newTestEnv(activeBooking())
	env.availabilityRepo.windowsFunc = func(ctx context.Context, captainID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
		return []*domain.AvailabilityWindow{}, nil
	}
	newStart := testNow.AddDate(0, 0, 10)

	_, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorGuest,
		NewStart: &newStart,
	})
	assert.ErrorIs(t, err, ErrDayNotBookable)
}

func TestRequest_NewStartInPast(t *testing.T) {
	env := newTestEnv(activeBooking())
	newStart := testNow.AddDate(0, 0, -2)

	_, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorGuest,
		NewStart: &newStart,
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestRequest_NewStartBeyondHorizon(t *testing.T) {
	env := newTestEnv(activeBooking())
	newStart := testNow.AddDate(0, 0, 91) // горизонт 90 дней

	_, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorGuest,
		NewStart: &newStart,
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestApprove_AppliesChange(t *testing.T) {
	env := newTestEnv(activeBooking())
	newStart := testNow.AddDate(0, 0, 10)

	pending, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:        domain.ActorGuest,
		NewStart:     &newStart,
		NewPartySize: ptr.Ptr(6),
	})
	require.NoError(t, err)

	resp, err := env.svc.Approve(context.Background(), pending.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.ModificationApproved), resp.Status)
	require.Len(t, env.bookingRepo.scheduleUpdates, 2)
	assert.Equal(t, []int{6}, env.bookingRepo.partySizeUpdates)
	assert.Equal(t, 1, env.mailer.rescheduled)
}

func TestApprove_NewTimeTakenMeanwhile(t *testing.T) {
	env := newTestEnv(activeBooking())
	newStart := testNow.AddDate(0, 0, 10)

	pending, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorGuest,
		NewStart: &newStart,
	})
	require.NoError(t, err)

	env.bookingRepo.overlappingFunc = func(ctx context.Context, captainID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
		return []*domain.Booking{{ID: 7, Status: domain.StatusConfirmed}}, nil
	}

	_, err = env.svc.Approve(context.Background(), pending.ID, 1)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Запрос остается pending: капитан может отклонить его явно
	stored, _ := env.modificationRepo.GetByID(context.Background(), pending.ID)
	assert.Equal(t, domain.ModificationPending, stored.Status)
}

// Календарные проверки повторяются на момент одобрения
func TestApprove_DateBlackedOutMeanwhile(t *testing.T) {
	env := newTestEnv(activeBooking())
	newStart := testNow.AddDate(0, 0, 10)

	pending, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorGuest,
		NewStart: &newStart,
	})
	require.NoError(t, err)

	// Капитан закрыл дату после подачи запроса
	env.availabilityRepo.blackoutFunc = func(ctx context.Context, captainID int64, date time.Time) (bool, error) {
		return true, nil
	}

	_, err = env.svc.Approve(context.Background(), pending.ID, 1)
	assert.ErrorIs(t, err, ErrDayNotBookable)

	assert.Empty(t, env.bookingRepo.scheduleUpdates)
	stored, _ := env.modificationRepo.GetByID(context.Background(), pending.ID)
	assert.Equal(t, domain.ModificationPending, stored.Status)
}

func TestApprove_CapacityReducedMeanwhile(t *testing.T) {
	env := newTestEnv(activeBooking())

	pending, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:        domain.ActorGuest,
		NewPartySize: ptr.Ptr(6),
	})
	require.NoError(t, err)

	// Судно заменили на меньшее после подачи запроса
	env.catalogRepo.capacity = 4

	_, err = env.svc.Approve(context.Background(), pending.ID, 1)
	assert.ErrorIs(t, err, ErrPartySizeExceedsCapacity)
	assert.Empty(t, env.bookingRepo.partySizeUpdates)
}

func TestReject_LeavesBookingUntouched(t *testing.T) {
	env := newTestEnv(activeBooking())
	newStart := testNow.AddDate(0, 0, 10)

	pending, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorGuest,
		NewStart: &newStart,
	})
	require.NoError(t, err)

	resp, err := env.svc.Reject(context.Background(), pending.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, string(domain.ModificationRejected), resp.Status)
	assert.Empty(t, env.bookingRepo.scheduleUpdates)
	assert.Zero(t, env.mailer.rescheduled)
}

func TestDecide_AlreadyDecided(t *testing.T) {
	env := newTestEnv(activeBooking())
	newStart := testNow.AddDate(0, 0, 10)

	pending, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorGuest,
		NewStart: &newStart,
	})
	require.NoError(t, err)

	_, err = env.svc.Reject(context.Background(), pending.ID, 1)
	require.NoError(t, err)

	_, err = env.svc.Approve(context.Background(), pending.ID, 1)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestApprove_OwnershipEnforced(t *testing.T) {
	env := newTestEnv(activeBooking())
	newStart := testNow.AddDate(0, 0, 10)

	pending, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorGuest,
		NewStart: &newStart,
	})
	require.NoError(t, err)

	_, err = env.svc.Approve(context.Background(), pending.ID, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.svc.Approve(context.Background(), 555, 1)
	assert.ErrorIs(t, err, ErrModificationNotFound)
}

func TestListPending(t *testing.T) {
	env := newTestEnv(activeBooking())
	newStart := testNow.AddDate(0, 0, 10)

	_, err := env.svc.Request(context.Background(), 42, &models.RequestModificationRequest{
		Actor:    domain.ActorGuest,
		NewStart: &newStart,
	})
	require.NoError(t, err)

	resp, err := env.svc.ListPending(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Modifications, 1)
	assert.Equal(t, int64(42), resp.Modifications[0].BookingID)
}
