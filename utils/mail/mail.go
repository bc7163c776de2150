package mail

import (
	"bytes"
	"embed"
	"html/template"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"

	"github.com/joy095/booking/logger"
	"github.com/joy095/booking/models/booking_models"
)

var templates *template.Template

// InitTemplates parses the embedded email templates. Must be called once
// at startup before any mail is sent.
func InitTemplates(fs embed.FS) {
	templates = template.Must(template.ParseFS(fs, "templates/email/*.html"))
}

// Mailer delivers booking status notifications over SMTP. Delivery is
// best effort: a failed send is logged and dropped, never propagated back
// into the transition that triggered it.
type Mailer struct {
	from    string
	notify  string
	host    string
	port    int
	user    string
	pass    string
	enabled bool
}

// NewMailer builds a Mailer from SMTP_* environment variables. When the
// host is unset the mailer is disabled and every send becomes a log line.
func NewMailer() *Mailer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	host := os.Getenv("SMTP_HOST")
	return &Mailer{
		from:    os.Getenv("FROM_EMAIL"),
		notify:  os.Getenv("BOOKINGS_NOTIFY_EMAIL"),
		host:    host,
		port:    port,
		user:    os.Getenv("SMTP_USER"),
		pass:    os.Getenv("SMTP_PASSWORD"),
		enabled: host != "",
	}
}

type bookingStatusData struct {
	BookingID      string
	PropertyID     string
	RoomType       string
	CheckIn        string
	CheckOut       string
	PreviousStatus string
	CurrentStatus  string
}

// BookingStatusChanged sends the status change notification for a
// booking. It satisfies the lifecycle engine's Notifier contract.
func (m *Mailer) BookingStatusChanged(booking *booking_models.Booking, previous, current string) {
	if !m.enabled || m.notify == "" {
		logger.InfoLogger.Infof("Notification (mail disabled): booking %s %s -> %s", booking.ID, previous, current)
		return
	}

	data := bookingStatusData{
		BookingID:      booking.ID.String(),
		PropertyID:     booking.PropertyID.String(),
		RoomType:       booking.RoomType,
		CheckIn:        booking.CheckIn.Format("2006-01-02"),
		CheckOut:       booking.CheckOut.Format("2006-01-02"),
		PreviousStatus: previous,
		CurrentStatus:  current,
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, "booking_status.html", data); err != nil {
		logger.ErrorLogger.Errorf("Failed to render booking status email for %s: %v", booking.ID, err)
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.notify)
	msg.SetHeader("Subject", "Booking "+booking.ID.String()+" is now "+current)
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		logger.ErrorLogger.Errorf("Failed to send booking status email for %s: %v", booking.ID, err)
		return
	}

	logger.InfoLogger.Infof("Booking status email sent for %s (%s -> %s)", booking.ID, previous, current)
}
