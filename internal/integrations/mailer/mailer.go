package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer отправляет гостевые уведомления по SMTP
// Письма не участвуют в транзакциях бронирования: ошибка отправки логируется,
// операция не откатывается
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	log    Logger
}

// NewMailer создает новый экземпляр мейлера
func NewMailer(host string, port int, username, password, from string, log Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		log:    log,
	}
}

// SendBookingCreated отправляет гостю подтверждение заявки со ссылкой на управление
func (m *Mailer) SendBookingCreated(to, guestName string, start time.Time, managementToken string, depositDue float64) error {
	subject := "Your charter booking request"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking request for %s has been received.\n"+
			"To confirm it, please pay the deposit of %.2f within the hold window.\n\n"+
			"Manage your booking: /bookings/manage/%s\n",
		guestName, start.Format("Mon, 02 Jan 2006 15:04"), depositDue, managementToken,
	)
	return m.send(to, subject, body)
}

// SendBookingConfirmed отправляет гостю подтверждение оплаты депозита
func (m *Mailer) SendBookingConfirmed(to, guestName string, start time.Time, balanceDue float64) error {
	subject := "Your charter booking is confirmed"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour deposit has been received. Your trip on %s is confirmed.\n"+
			"Balance due on the day of the trip: %.2f\n",
		guestName, start.Format("Mon, 02 Jan 2006 15:04"), balanceDue,
	)
	return m.send(to, subject, body)
}

// SendWeatherHold уведомляет гостя о приостановке из-за погоды
func (m *Mailer) SendWeatherHold(to, guestName string, start time.Time, reason string) error {
	subject := "Your charter trip is on weather hold"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour trip scheduled for %s has been put on hold due to weather: %s\n"+
			"The captain will propose a new time shortly. Your deposit is retained.\n",
		guestName, start.Format("Mon, 02 Jan 2006 15:04"), reason,
	)
	return m.send(to, subject, body)
}

// SendRescheduled уведомляет гостя о новом времени выхода
func (m *Mailer) SendRescheduled(to, guestName string, newStart time.Time) error {
	subject := "Your charter trip has been rescheduled"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour trip has been rescheduled to %s.\n",
		guestName, newStart.Format("Mon, 02 Jan 2006 15:04"),
	)
	return m.send(to, subject, body)
}

// SendCancelled уведомляет гостя об отмене и возврате
func (m *Mailer) SendCancelled(to, guestName string, refunded float64) error {
	subject := "Your charter booking has been cancelled"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking has been cancelled.\nRefunded amount: %.2f\n",
		guestName, refunded,
	)
	return m.send(to, subject, body)
}

// SendReminder отправляет напоминание о предстоящем выходе
func (m *Mailer) SendReminder(to, guestName string, start time.Time, balanceDue float64) error {
	subject := "Reminder: your charter trip is coming up"
	body := fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder about your trip on %s.\n"+
			"Balance due on the day of the trip: %.2f\n",
		guestName, start.Format("Mon, 02 Jan 2006 15:04"), balanceDue,
	)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: to=%s, subject=%q: %v", ErrSend, to, subject, err)
	}

	m.log.Info("Sent email to=%s, subject=%q", to, subject)
	return nil
}
