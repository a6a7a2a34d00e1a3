package utils

import (
	"context"
	"fmt"

	"github.com/Govind-619/quickcart-payments/models"
	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	NotifyTo string
}

// Enabled reports whether enough SMTP settings are present to send mail
func (c EmailConfig) Enabled() bool {
	return c.Host != "" && c.From != "" && c.NotifyTo != ""
}

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// PaidNotifier emails the operations inbox when a payment session is confirmed paid
type PaidNotifier struct {
	config EmailConfig
	sender mailSender
}

func NewPaidNotifier(config EmailConfig) *PaidNotifier {
	port := config.Port
	if port == 0 {
		port = 587 // Default SMTP port
	}
	return &PaidNotifier{
		config: config,
		sender: gomail.NewDialer(config.Host, port, config.Username, config.Password),
	}
}

// NotifyPaid sends the payment received email for session
func (n *PaidNotifier) NotifyPaid(_ context.Context, session *models.PaymentSession) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.config.From)
	m.SetHeader("To", n.config.NotifyTo)
	m.SetHeader("Subject", fmt.Sprintf("QuickCart payment received (%s)", session.SessionID))

	body := fmt.Sprintf(`
		<h2>Payment received</h2>
		<p>Session: <b>%s</b></p>
		<p>User: %s</p>
		<p>Gateway: %s (reference %s)</p>
		<p>Amount: %.2f %s</p>
	`, session.SessionID, session.UserID, session.Gateway, session.ProviderReferenceID, session.Amount, session.Currency)
	m.SetBody("text/html", body)

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
