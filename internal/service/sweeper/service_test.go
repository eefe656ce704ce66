package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmline/Charter-BookingService/internal/domain"
)

type mockBookingRepo struct {
	expireFunc    func(ctx context.Context, now time.Time) ([]int64, error)
	dueFunc       func(ctx context.Context, now time.Time, window time.Duration) ([]*domain.Booking, error)
	incremented   []int64
	incrementFunc func(ctx context.Context, id int64) error
}

func (m *mockBookingRepo) ExpirePending(ctx context.Context, now time.Time) ([]int64, error) {
	if m.expireFunc != nil {
		return m.expireFunc(ctx, now)
	}
	return []int64{}, nil
}

func (m *mockBookingRepo) GetRemindersDue(ctx context.Context, now time.Time, window time.Duration) ([]*domain.Booking, error) {
	if m.dueFunc != nil {
		return m.dueFunc(ctx, now, window)
	}
	return []*domain.Booking{}, nil
}

func (m *mockBookingRepo) IncrementReminders(ctx context.Context, id int64) error {
	if m.incrementFunc != nil {
		return m.incrementFunc(ctx, id)
	}
	m.incremented = append(m.incremented, id)
	return nil
}

type mockLogRepo struct {
	entries []*domain.BookingLog
}

func (m *mockLogRepo) Append(ctx context.Context, entry *domain.BookingLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

type mockMailer struct {
	sendFunc func(to, guestName string, start time.Time, balanceDue float64) error
	sent     []string
}

func (m *mockMailer) SendReminder(to, guestName string, start time.Time, balanceDue float64) error {
	if m.sendFunc != nil {
		return m.sendFunc(to, guestName, start, balanceDue)
	}
	m.sent = append(m.sent, to)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
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

func newTestService(repo *mockBookingRepo, logRepo *mockLogRepo, mailer *mockMailer) *Service {
	if logRepo == nil {
		logRepo = &mockLogRepo{}
	}
	if mailer == nil {
		mailer = &mockMailer{}
	}
	return &Service{
		bookingRepo:    repo,
		logRepo:        logRepo,
		mailer:         mailer,
		txManager:      fakeTxManager{},
		timeProvider:   &fixedTimeProvider{now: testNow},
		reminderWindow: 24 * time.Hour,
		logger:         nopLogger{},
	}
}

func TestSweepExpired(t *testing.T) {
	repo := &mockBookingRepo{
		expireFunc: func(ctx context.Context, now time.Time) ([]int64, error) {
			assert.Equal(t, testNow, now)
			return []int64{11, 12, 13}, nil
		},
	}
	logRepo := &mockLogRepo{}

	svc := newTestService(repo, logRepo, nil)

	ids, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12, 13}, ids)

	// По записи журнала на каждое истекшее бронирование
	require.Len(t, logRepo.entries, 3)
	for i, entry := range logRepo.entries {
		assert.Equal(t, []int64{11, 12, 13}[i], entry.BookingID)
		assert.Equal(t, domain.LogStatusChanged, entry.EntryType)
		assert.Equal(t, domain.ActorSystem, entry.ActorType)
		require.NotNil(t, entry.NewValue)
		assert.Equal(t, string(domain.StatusExpired), *entry.NewValue)
	}
}

func TestSweepExpired_NothingToExpire(t *testing.T) {
	logRepo := &mockLogRepo{}
	svc := newTestService(&mockBookingRepo{}, logRepo, nil)

	ids, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, logRepo.entries)
}

func TestSweepExpired_RepositoryError(t *testing.T) {
	repo := &mockBookingRepo{
		expireFunc: func(ctx context.Context, now time.Time) ([]int64, error) {
			return nil, errors.New("db down")
		},
	}

	svc := newTestService(repo, nil, nil)

	_, err := svc.SweepExpired(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestSendReminders(t *testing.T) {
	repo := &mockBookingRepo{
		dueFunc: func(ctx context.Context, now time.Time, window time.Duration) ([]*domain.Booking, error) {
			assert.Equal(t, 24*time.Hour, window)
			return []*domain.Booking{
				{ID: 1, GuestEmail: "a@example.com", GuestName: "A", ScheduledStart: testNow.Add(6 * time.Hour), BalanceDue: 350},
				{ID: 2, GuestEmail: "b@example.com", GuestName: "B", ScheduledStart: testNow.Add(20 * time.Hour), BalanceDue: 0},
			}, nil
		},
	}
	logRepo := &mockLogRepo{}
	mailer := &mockMailer{}

	svc := newTestService(repo, logRepo, mailer)

	sent, err := svc.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, mailer.sent)
	assert.Equal(t, []int64{1, 2}, repo.incremented)

	require.Len(t, logRepo.entries, 2)
	assert.Equal(t, domain.LogNotificationSent, logRepo.entries[0].EntryType)
}

func TestSendReminders_FailedSendIsRetriedNextPass(t *testing.T) {
	repo := &mockBookingRepo{
		dueFunc: func(ctx context.Context, now time.Time, window time.Duration) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{ID: 1, GuestEmail: "a@example.com", GuestName: "A", ScheduledStart: testNow.Add(6 * time.Hour)},
				{ID: 2, GuestEmail: "b@example.com", GuestName: "B", ScheduledStart: testNow.Add(8 * time.Hour)},
			}, nil
		},
	}
	logRepo := &mockLogRepo{}
	mailer := &mockMailer{
		sendFunc: func(to, guestName string, start time.Time, balanceDue float64) error {
			if to == "a@example.com" {
				return errors.New("smtp down")
			}
			return nil
		},
	}

	svc := newTestService(repo, logRepo, mailer)

	sent, err := svc.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	// Счетчик не инкрементирован для неудачной отправки:
	// следующий проход заберет ее снова
	assert.Equal(t, []int64{2}, repo.incremented)

	require.Len(t, logRepo.entries, 2)
	assert.Equal(t, domain.LogNotificationFailed, logRepo.entries[0].EntryType)
	assert.Equal(t, domain.LogNotificationSent, logRepo.entries[1].EntryType)
}
