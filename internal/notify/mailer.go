package notify

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"delivery_tracker/internal/config"
)

// Mailer sends the order confirmation. Exactly one message per order,
// regardless of how many line items the order carries.
type Mailer interface {
	SendOrderConfirmation(to, customerName string, orderID uint, status string) error
}

// NewFromEnv returns an SMTP mailer when SMTP_HOST is configured and a
// log-only mailer otherwise, so development runs need no mail relay.
func NewFromEnv() Mailer {
	host := config.Env("SMTP_HOST", "")
	if host == "" {
		return &LogMailer{}
	}
	return &SMTPMailer{
		Addr: host + ":" + config.Env("SMTP_PORT", "587"),
		From: config.Env("SMTP_FROM", "orders@localhost"),
		Auth: smtp.PlainAuth("",
			config.Env("SMTP_USER", ""),
			config.Env("SMTP_PASSWORD", ""),
			host,
		),
	}
}

type SMTPMailer struct {
	Addr string
	From string
	Auth smtp.Auth
}

func (m *SMTPMailer) SendOrderConfirmation(to, customerName string, orderID uint, status string) error {
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Order #%d received\r\n\r\nHi %s,\r\n\r\nYour order #%d was created with status %s.\r\n",
		m.From, to, orderID, customerName, orderID, status,
	)
	return smtp.SendMail(m.Addr, m.Auth, m.From, []string{to}, []byte(body))
}

// LogMailer records the notification instead of sending it.
type LogMailer struct{}

func (m *LogMailer) SendOrderConfirmation(to, customerName string, orderID uint, status string) error {
	logrus.WithFields(logrus.Fields{
		"to":       to,
		"order_id": orderID,
		"status":   status,
	}).Info("Order confirmation email (log-only mailer).")
	return nil
}
