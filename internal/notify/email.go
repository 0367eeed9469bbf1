package notify

import (
	"gopkg.in/gomail.v2"

	"github.com/barberia-premium/booking-api/internal/config"
)

type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailSender(cfg *config.Config) *EmailSender {
	return &EmailSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPFrom,
	}
}

func (s *EmailSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return s.dialer.DialAndSend(m)
}
