package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmline/Charter-BookingService/internal/domain"
	bookingRepository "github.com/helmline/Charter-BookingService/internal/infra/storage/booking"
	"github.com/helmline/Charter-BookingService/internal/integrations/payments"
	"github.com/helmline/Charter-BookingService/internal/integrations/weather"
	"github.com/helmline/Charter-BookingService/internal/service/bookings/models"
	"github.com/helmline/Charter-BookingService/pkg/ptr"
)

type mockBookingRepo struct {
	getByIDFunc        func(ctx context.Context, id int64) (*domain.Booking, error)
	listFunc           func(ctx context.Context, filter domain.CaptainBookingsFilter) ([]*domain.Booking, error)
	overlappingFunc    func(ctx context.Context, captainID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error)
	updateStatusFunc   func(ctx context.Context, id int64, allowedFrom []domain.BookingStatus, to domain.BookingStatus) error
	confirmPaymentFunc func(ctx context.Context, id int64, payStatus domain.PaymentStatus, depositPaid, balanceDue float64, paymentRef string) error
	cancelFunc         func(ctx context.Context, id int64, reason string, payStatus domain.PaymentStatus, refunded, balanceDue float64) error
	holdFunc           func(ctx context.Context, id int64, reason string) error
	rescheduleFunc     func(ctx context.Context, id int64, newStart, newEnd time.Time) error
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, bookingRepository.ErrBookingNotFound
}

func (m *mockBookingRepo) GetByCaptainWithFilter(ctx context.Context, filter domain.CaptainBookingsFilter) ([]*domain.Booking, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return []*domain.Booking{}, nil
}

func (m *mockBookingRepo) GetActiveOverlapping(ctx context.Context, captainID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
	if m.overlappingFunc != nil {
		return m.overlappingFunc(ctx, captainID, start, end, excludeID)
	}
	return []*domain.Booking{}, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, allowedFrom []domain.BookingStatus, to domain.BookingStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, allowedFrom, to)
	}
	return nil
}

func (m *mockBookingRepo) ConfirmPayment(ctx context.Context, id int64, payStatus domain.PaymentStatus, depositPaid, balanceDue float64, paymentRef string) error {
	if m.confirmPaymentFunc != nil {
		return m.confirmPaymentFunc(ctx, id, payStatus, depositPaid, balanceDue, paymentRef)
	}
	return nil
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id int64, reason string, payStatus domain.PaymentStatus, refunded, balanceDue float64) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id, reason, payStatus, refunded, balanceDue)
	}
	return nil
}

func (m *mockBookingRepo) HoldForWeather(ctx context.Context, id int64, reason string) error {
	if m.holdFunc != nil {
		return m.holdFunc(ctx, id, reason)
	}
	return nil
}

func (m *mockBookingRepo) Reschedule(ctx context.Context, id int64, newStart, newEnd time.Time) error {
	if m.rescheduleFunc != nil {
		return m.rescheduleFunc(ctx, id, newStart, newEnd)
	}
	return nil
}

type mockCatalogRepo struct {
	tripTypeFunc func(ctx context.Context, id int64) (*domain.TripType, error)
	settingsFunc func(ctx context.Context, captainID int64) (*domain.CaptainSettings, error)
}

func (m *mockCatalogRepo) GetTripTypeByID(ctx context.Context, id int64) (*domain.TripType, error) {
	if m.tripTypeFunc != nil {
		return m.tripTypeFunc(ctx, id)
	}
	return &domain.TripType{ID: id, CaptainID: 1, DurationMinutes: 240, Active: true}, nil
}

func (m *mockCatalogRepo) GetCaptainSettings(ctx context.Context, captainID int64) (*domain.CaptainSettings, error) {
	if m.settingsFunc != nil {
		return m.settingsFunc(ctx, captainID)
	}
	return &domain.CaptainSettings{CaptainID: captainID}, nil
}

type mockLogRepo struct {
	entries []*domain.BookingLog
	err     error
}

func (m *mockLogRepo) Append(ctx context.Context, entry *domain.BookingLog) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockLogRepo) GetForBooking(ctx context.Context, bookingID int64) ([]*domain.BookingLog, error) {
	return m.entries, nil
}

type mockPaymentsClient struct {
	refundFunc func(paymentID string, amount float64) (*payments.RefundResult, error)
	refunds    []float64
}

func (m *mockPaymentsClient) Refund(paymentID string, amount float64) (*payments.RefundResult, error) {
	if m.refundFunc != nil {
		return m.refundFunc(paymentID, amount)
	}
	m.refunds = append(m.refunds, amount)
	return &payments.RefundResult{RefundID: "rfnd_test_1", Amount: amount}, nil
}

type mockWeatherClient struct {
	assessFunc func(ctx context.Context, location string, at time.Time) (*weather.Assessment, error)
}

func (m *mockWeatherClient) AssessWithGracefulDegradation(ctx context.Context, location string, at time.Time) (*weather.Assessment, error) {
	if m.assessFunc != nil {
		return m.assessFunc(ctx, location, at)
	}
	return nil, errors.New("weather service unavailable")
}

type mockMailer struct {
	confirmed  int
	held       int
	reschedled int
	cancelled  int
}

func (m *mockMailer) SendBookingConfirmed(to, guestName string, start time.Time, balanceDue float64) error {
	m.confirmed++
	return nil
}

func (m *mockMailer) SendWeatherHold(to, guestName string, start time.Time, reason string) error {
	m.held++
	return nil
}

func (m *mockMailer) SendRescheduled(to, guestName string, newStart time.Time) error {
	m.reschedled++
	return nil
}

func (m *mockMailer) SendCancelled(to, guestName string, refunded float64) error {
	m.cancelled++
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

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:             42,
		CaptainID:      1,
		TripTypeID:     5,
		GuestName:      "Alex Morgan",
		GuestEmail:     "alex@example.com",
		PartySize:      4,
		ScheduledStart: testNow.AddDate(0, 0, 7),
		ScheduledEnd:   testNow.AddDate(0, 0, 7).Add(4 * time.Hour),
		Status:         domain.StatusPendingDeposit,
		PaymentStatus:  domain.PaymentUnpaid,
		TotalPrice:     500,
		DepositDue:     150,
		BalanceDue:     500,
	}
}

func confirmedBooking() *domain.Booking {
	b := pendingBooking()
	b.Status = domain.StatusConfirmed
	b.PaymentStatus = domain.PaymentDepositPaid
	b.DepositPaid = 150
	b.BalanceDue = 350
	b.PaymentRef = ptr.Ptr("pay_test_1")
	return b
}

func repoWith(b *domain.Booking) *mockBookingRepo {
	return &mockBookingRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Booking, error) {
			if id != b.ID {
				return nil, bookingRepository.ErrBookingNotFound
			}
			return b, nil
		},
	}
}

func newTestService(repo *mockBookingRepo, logRepo *mockLogRepo, paymentsClient *mockPaymentsClient, mailer *mockMailer, now time.Time) *Service {
	if logRepo == nil {
		logRepo = &mockLogRepo{}
	}
	if paymentsClient == nil {
		paymentsClient = &mockPaymentsClient{}
	}
	if mailer == nil {
		mailer = &mockMailer{}
	}
	return &Service{
		bookingRepo:   repo,
		catalogRepo:   &mockCatalogRepo{},
		logRepo:       logRepo,
		payments:      paymentsClient,
		weatherClient: &mockWeatherClient{},
		mailer:        mailer,
		txManager:     fakeTxManager{},
		timeProvider:  &fixedTimeProvider{now: now},
		logger:        nopLogger{},
	}
}

func TestConfirmDeposit_PartialPayment(t *testing.T) {
	booking := pendingBooking()
	repo := repoWith(booking)

	var gotStatus domain.PaymentStatus
	var gotPaid, gotBalance float64
	repo.confirmPaymentFunc = func(ctx context.Context, id int64, payStatus domain.PaymentStatus, depositPaid, balanceDue float64, paymentRef string) error {
		gotStatus, gotPaid, gotBalance = payStatus, depositPaid, balanceDue
		return nil
	}

	logRepo := &mockLogRepo{}
	mailer := &mockMailer{}
	svc := newTestService(repo, logRepo, nil, mailer, testNow)

	_, err := svc.ConfirmDeposit(context.Background(), 42, 150, "pay_test_1")
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentDepositPaid, gotStatus)
	assert.Equal(t, 150.0, gotPaid)
	assert.Equal(t, 350.0, gotBalance)
	assert.Equal(t, 1, mailer.confirmed)

	// Две записи журнала: оплата и смена статуса
	require.Len(t, logRepo.entries, 2)
	assert.Equal(t, domain.LogPaymentReceived, logRepo.entries[0].EntryType)
	assert.Equal(t, domain.LogStatusChanged, logRepo.entries[1].EntryType)
}

func TestConfirmDeposit_FullPayment(t *testing.T) {
	booking := pendingBooking()
	repo := repoWith(booking)

	var gotStatus domain.PaymentStatus
	repo.confirmPaymentFunc = func(ctx context.Context, id int64, payStatus domain.PaymentStatus, depositPaid, balanceDue float64, paymentRef string) error {
		gotStatus = payStatus
		return nil
	}

	svc := newTestService(repo, nil, nil, nil, testNow)

	_, err := svc.ConfirmDeposit(context.Background(), 42, 500, "pay_test_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFullyPaid, gotStatus)
}

func TestConfirmDeposit_AlreadyConfirmed(t *testing.T) {
	svc := newTestService(repoWith(confirmedBooking()), nil, nil, nil, testNow)

	_, err := svc.ConfirmDeposit(context.Background(), 42, 150, "pay_test_2")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_GuestWithNoticeGetsFullRefund(t *testing.T) {
	booking := confirmedBooking() // выход через 7 дней
	repo := repoWith(booking)

	var gotPayStatus domain.PaymentStatus
	var gotRefunded float64
	repo.cancelFunc = func(ctx context.Context, id int64, reason string, payStatus domain.PaymentStatus, refunded, balanceDue float64) error {
		gotPayStatus, gotRefunded = payStatus, refunded
		return nil
	}

	paymentsClient := &mockPaymentsClient{}
	svc := newTestService(repo, nil, paymentsClient, nil, testNow)

	_, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{Actor: domain.ActorGuest, Reason: "change of plans"})
	require.NoError(t, err)

	require.Len(t, paymentsClient.refunds, 1)
	assert.Equal(t, 150.0, paymentsClient.refunds[0])
	assert.Equal(t, domain.PaymentFullyRefunded, gotPayStatus)
	assert.Equal(t, 150.0, gotRefunded)
}

func TestCancel_GuestLateForfeitsDeposit(t *testing.T) {
	booking := confirmedBooking()
	booking.ScheduledStart = testNow.Add(24 * time.Hour) // меньше 48 часов
	booking.ScheduledEnd = booking.ScheduledStart.Add(4 * time.Hour)
	repo := repoWith(booking)

	var gotPayStatus domain.PaymentStatus
	var gotRefunded float64
	repo.cancelFunc = func(ctx context.Context, id int64, reason string, payStatus domain.PaymentStatus, refunded, balanceDue float64) error {
		gotPayStatus, gotRefunded = payStatus, refunded
		return nil
	}

	paymentsClient := &mockPaymentsClient{}
	svc := newTestService(repo, nil, paymentsClient, nil, testNow)

	_, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{Actor: domain.ActorGuest})
	require.NoError(t, err)

	assert.Empty(t, paymentsClient.refunds)
	assert.Equal(t, domain.PaymentDepositPaid, gotPayStatus) // статус оплаты не меняется
	assert.Equal(t, 0.0, gotRefunded)
}

func TestCancel_CaptainAlwaysRefunds(t *testing.T) {
	booking := confirmedBooking()
	booking.ScheduledStart = testNow.Add(2 * time.Hour) // поздняя отмена, но капитаном
	booking.ScheduledEnd = booking.ScheduledStart.Add(4 * time.Hour)
	repo := repoWith(booking)

	paymentsClient := &mockPaymentsClient{}
	svc := newTestService(repo, nil, paymentsClient, nil, testNow)

	_, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{Actor: domain.ActorCaptain, Reason: "engine trouble"})
	require.NoError(t, err)

	require.Len(t, paymentsClient.refunds, 1)
	assert.Equal(t, 150.0, paymentsClient.refunds[0])
}

func TestCancel_WeatherHoldRefundsRegardlessOfNotice(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusWeatherHold
	booking.ScheduledStart = testNow.Add(2 * time.Hour)
	booking.ScheduledEnd = booking.ScheduledStart.Add(4 * time.Hour)
	repo := repoWith(booking)

	paymentsClient := &mockPaymentsClient{}
	svc := newTestService(repo, nil, paymentsClient, nil, testNow)

	_, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{Actor: domain.ActorGuest})
	require.NoError(t, err)

	require.Len(t, paymentsClient.refunds, 1)
	assert.Equal(t, 150.0, paymentsClient.refunds[0])
}

func TestCancel_RefundFailureAbortsCancellation(t *testing.T) {
	booking := confirmedBooking()
	repo := repoWith(booking)

	cancelCalled := false
	repo.cancelFunc = func(ctx context.Context, id int64, reason string, payStatus domain.PaymentStatus, refunded, balanceDue float64) error {
		cancelCalled = true
		return nil
	}

	paymentsClient := &mockPaymentsClient{
		refundFunc: func(paymentID string, amount float64) (*payments.RefundResult, error) {
			return nil, errors.New("gateway rejected")
		},
	}
	svc := newTestService(repo, nil, paymentsClient, nil, testNow)

	_, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{Actor: domain.ActorCaptain})
	assert.ErrorIs(t, err, ErrRefundFailed)
	assert.False(t, cancelCalled)
}

func TestCancel_PaidDepositWithoutPaymentRef(t *testing.T) {
	booking := confirmedBooking()
	booking.PaymentRef = nil
	svc := newTestService(repoWith(booking), nil, nil, nil, testNow)

	_, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{Actor: domain.ActorCaptain})
	assert.ErrorIs(t, err, ErrRefundFailed)
}

func TestCancel_TerminalBooking(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCompleted
	svc := newTestService(repoWith(booking), nil, nil, nil, testNow)

	_, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{Actor: domain.ActorGuest})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestComplete_BeforeStart(t *testing.T) {
	booking := confirmedBooking() // старт через 7 дней
	svc := newTestService(repoWith(booking), nil, nil, nil, testNow)

	_, err := svc.Complete(context.Background(), 42, 1)
	assert.ErrorIs(t, err, ErrTripNotStarted)
}

func TestComplete_AfterStart(t *testing.T) {
	booking := confirmedBooking()
	booking.ScheduledStart = testNow.Add(-5 * time.Hour)
	booking.ScheduledEnd = testNow.Add(-time.Hour)
	repo := repoWith(booking)

	var gotTo domain.BookingStatus
	repo.updateStatusFunc = func(ctx context.Context, id int64, allowedFrom []domain.BookingStatus, to domain.BookingStatus) error {
		gotTo = to
		return nil
	}

	logRepo := &mockLogRepo{}
	svc := newTestService(repo, logRepo, nil, nil, testNow)

	_, err := svc.Complete(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, gotTo)
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, domain.ActorCaptain, logRepo.entries[0].ActorType)
}

func TestNoShow_AfterStart(t *testing.T) {
	booking := confirmedBooking()
	booking.ScheduledStart = testNow.Add(-time.Hour)
	booking.ScheduledEnd = testNow.Add(3 * time.Hour)
	repo := repoWith(booking)

	var gotTo domain.BookingStatus
	repo.updateStatusFunc = func(ctx context.Context, id int64, allowedFrom []domain.BookingStatus, to domain.BookingStatus) error {
		gotTo = to
		return nil
	}

	svc := newTestService(repo, nil, nil, nil, testNow)

	_, err := svc.NoShow(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, gotTo)
}

func TestGetForCaptain_OwnershipEnforced(t *testing.T) {
	svc := newTestService(repoWith(confirmedBooking()), nil, nil, nil, testNow)

	resp, err := svc.GetForCaptain(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)

	_, err = svc.GetForCaptain(context.Background(), 42, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetForCaptain(context.Background(), 77, 1)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestHoldForWeather_RequiresReason(t *testing.T) {
	svc := newTestService(repoWith(confirmedBooking()), nil, nil, nil, testNow)

	_, err := svc.HoldForWeather(context.Background(), 42, &models.WeatherHoldRequest{CaptainID: 1, Reason: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHoldForWeather_ConfirmedBooking(t *testing.T) {
	booking := confirmedBooking()
	repo := repoWith(booking)

	var gotReason string
	repo.holdFunc = func(ctx context.Context, id int64, reason string) error {
		gotReason = reason
		return nil
	}

	mailer := &mockMailer{}
	svc := newTestService(repo, nil, nil, mailer, testNow)

	// Погодный сервис недоступен, операция всё равно проходит
	_, err := svc.HoldForWeather(context.Background(), 42, &models.WeatherHoldRequest{CaptainID: 1, Reason: "gale warning"})
	require.NoError(t, err)
	assert.Equal(t, "gale warning", gotReason)
	assert.Equal(t, 1, mailer.held)
}

func TestHoldForWeather_PendingBookingAllowed(t *testing.T) {
	booking := pendingBooking()
	svc := newTestService(repoWith(booking), nil, nil, nil, testNow)

	_, err := svc.HoldForWeather(context.Background(), 42, &models.WeatherHoldRequest{CaptainID: 1, Reason: "storm front"})
	require.NoError(t, err)
}

func TestReschedule_OnlyFromWeatherHold(t *testing.T) {
	svc := newTestService(repoWith(confirmedBooking()), nil, nil, nil, testNow)

	_, err := svc.Reschedule(context.Background(), 42, &models.RescheduleRequest{CaptainID: 1, NewStart: testNow.AddDate(0, 0, 3)})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReschedule_NewTimeMustBeFree(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusWeatherHold
	repo := repoWith(booking)
	repo.overlappingFunc = func(ctx context.Context, captainID int64, start, end time.Time, excludeID *int64) ([]*domain.Booking, error) {
		require.NotNil(t, excludeID)
		assert.Equal(t, int64(42), *excludeID)
		return []*domain.Booking{{ID: 7, Status: domain.StatusConfirmed}}, nil
	}

	svc := newTestService(repo, nil, nil, nil, testNow)

	_, err := svc.Reschedule(context.Background(), 42, &models.RescheduleRequest{CaptainID: 1, NewStart: testNow.AddDate(0, 0, 3)})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestReschedule_Success(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusWeatherHold
	repo := repoWith(booking)

	newStart := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	var gotStart, gotEnd time.Time
	repo.rescheduleFunc = func(ctx context.Context, id int64, s, e time.Time) error {
		gotStart, gotEnd = s, e
		return nil
	}

	mailer := &mockMailer{}
	svc := newTestService(repo, nil, nil, mailer, testNow)

	_, err := svc.Reschedule(context.Background(), 42, &models.RescheduleRequest{CaptainID: 1, NewStart: newStart})
	require.NoError(t, err)

	assert.Equal(t, newStart, gotStart)
	// Конец пересчитан по длительности типа поездки (240 минут)
	assert.Equal(t, newStart.Add(4*time.Hour), gotEnd)
	assert.Equal(t, 1, mailer.reschedled)
}

func TestReschedule_NewStartMustBeFuture(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusWeatherHold
	svc := newTestService(repoWith(booking), nil, nil, nil, testNow)

	_, err := svc.Reschedule(context.Background(), 42, &models.RescheduleRequest{CaptainID: 1, NewStart: testNow.Add(-time.Hour)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListForCaptain_PassesFilter(t *testing.T) {
	repo := &mockBookingRepo{
		listFunc: func(ctx context.Context, filter domain.CaptainBookingsFilter) ([]*domain.Booking, error) {
			assert.Equal(t, int64(1), filter.CaptainID)
			require.NotNil(t, filter.Status)
			assert.Equal(t, domain.StatusConfirmed, *filter.Status)
			return []*domain.Booking{confirmedBooking()}, nil
		},
	}

	svc := newTestService(repo, nil, nil, nil, testNow)

	resp, err := svc.ListForCaptain(context.Background(), &models.ListBookingsRequest{
		CaptainID: 1,
		Status:    ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(42), resp.Bookings[0].ID)
}

func TestListForCaptain_UnknownStatus(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil, nil, nil, testNow)

	_, err := svc.ListForCaptain(context.Background(), &models.ListBookingsRequest{
		CaptainID: 1,
		Status:    ptr.Ptr("vanished"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetLog_OwnershipEnforced(t *testing.T) {
	logRepo := &mockLogRepo{entries: []*domain.BookingLog{
		{BookingID: 42, EntryType: domain.LogBookingCreated, Description: "Booking created", ActorType: domain.ActorGuest},
	}}
	svc := newTestService(repoWith(confirmedBooking()), logRepo, nil, nil, testNow)

	resp, err := svc.GetLog(context.Background(), 42, 1)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, string(domain.LogBookingCreated), resp.Entries[0].EntryType)

	_, err = svc.GetLog(context.Background(), 42, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
