package utils

import (
	"gopkg.in/gomail.v2"

	"github.com/smilepoint/clinic-api/config"
)

// Mailer sends clinic notification email over SMTP.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.EmailUser)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.EmailUser, m.cfg.EmailPass)
	return d.DialAndSend(msg)
}
