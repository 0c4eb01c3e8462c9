package mailer

import (
	"encoding/base64"
	"fmt"
	"io"

	"cantera-backend/config"
	"cantera-backend/internal/model"
	"cantera-backend/internal/service"

	"gopkg.in/gomail.v2"
)

// Mailer sends report emails and maintenance threshold notifications over
// SMTP. PDF rendering happens outside this core; callers hand in the
// finished attachment as base64.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	// notify is the recipient list for maintenance threshold alerts.
	notify string
}

func New() *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(
			config.GetEnv("SMTP_HOST", "localhost"),
			config.GetEnvAsInt("SMTP_PORT", 587),
			config.GetEnv("SMTP_USER", ""),
			config.GetEnv("SMTP_PASSWORD", ""),
		),
		from:   config.GetEnv("SMTP_FROM", "no-reply@cantera.local"),
		notify: config.GetEnv("MAINTENANCE_ALERT_TO", ""),
	}
}

// SendEmail delivers an HTML mail with an optional base64-encoded PDF
// attachment.
func (m *Mailer) SendEmail(to, subject, html, attachmentBase64, attachmentName string) error {
	if to == "" {
		to = m.notify
	}
	if to == "" {
		return fmt.Errorf("no recipient configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if attachmentBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(attachmentBase64)
		if err != nil {
			return fmt.Errorf("invalid attachment encoding: %w", err)
		}
		if attachmentName == "" {
			attachmentName = "report.pdf"
		}
		msg.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}

	return m.dialer.DialAndSend(msg)
}

// MaintenanceThreshold implements service.Notifier. Delivery failures are
// swallowed on purpose: a down SMTP relay must not fail the operation log
// write it rides on.
func (m *Mailer) MaintenanceThreshold(machine *model.Machine, status service.DueStatus) {
	if m.notify == "" {
		return
	}

	var detail string
	if status.MaintenanceType == model.MaintenanceTypeDate {
		detail = fmt.Sprintf("%d day(s) remaining", status.DaysRemaining)
	} else {
		detail = fmt.Sprintf("%.1f hour(s) remaining (due at %.1f)", status.RemainingHours, status.NextDueHours)
	}

	html := fmt.Sprintf(
		"<p>Machine <b>%s</b>: maintenance %q is <b>%s</b>.</p><p>%s. Current hours: %.1f.</p>",
		machine.Name, status.Description, status.Status, detail, machine.CurrentHours,
	)
	subject := fmt.Sprintf("[%s] %s - %s", status.Status, machine.Name, status.Description)

	// Error ignored, see above.
	_ = m.SendEmail(m.notify, subject, html, "", "")
}
