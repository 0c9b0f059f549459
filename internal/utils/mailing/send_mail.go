package mailing

import (
	"fmt"
	"nutrilog-backend/internal/utils"
	"strconv"

	"gopkg.in/gomail.v2"
)

type (
	MailConfig struct {
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	// Mailer sends one HTML message.
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	smtpMailer struct {
		cfg MailConfig
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// Enabled reports whether an SMTP host is configured.
func (c MailConfig) Enabled() bool {
	return c.SMTPHost != ""
}

func NewMailer(cfg MailConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

// NewMessage builds the message SendMail delivers.
func (m *smtpMailer) NewMessage(toEmail string, subject string, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.SMTPEmail, m.cfg.SMTPSender)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return msg
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	port, err := strconv.Atoi(m.cfg.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT %q: %w", m.cfg.SMTPPort, err)
	}

	dialer := gomail.NewDialer(
		m.cfg.SMTPHost,
		port,
		m.cfg.SMTPEmail,
		m.cfg.SMTPPassword,
	)

	return dialer.DialAndSend(m.NewMessage(toEmail, subject, body))
}
