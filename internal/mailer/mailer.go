package mailer

import (
	"errors"

	"github.com/bunaihills/shop-service/internal/config"

	gomail "gopkg.in/gomail.v2"
)

// ErrUnconfigured is returned when no SMTP credentials are present.
// Callers treat it as "skip", not as a delivery failure.
var ErrUnconfigured = errors.New("mail transport is not configured")

type Message struct {
	To      string
	Subject string
	HTML    string
}

type SMTPMailer struct {
	cfg      config.SMTP
	shopName string
	dialer   *gomail.Dialer
}

func New(cfg config.SMTP, shopName string) *SMTPMailer {
	m := &SMTPMailer{cfg: cfg, shopName: shopName}
	if cfg.Configured() {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return m
}

func (m *SMTPMailer) Configured() bool {
	return m.dialer != nil
}

func (m *SMTPMailer) Send(msg Message) error {
	if m.dialer == nil {
		return ErrUnconfigured
	}

	mail := gomail.NewMessage()
	mail.SetAddressHeader("From", m.cfg.From, m.shopName)
	mail.SetHeader("To", msg.To)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/html", msg.HTML)

	return m.dialer.DialAndSend(mail)
}
