package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers transactional mail over plain SMTP with optional
// AUTH PLAIN. It implements ports.Mailer.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	if port == 0 {
		port = 587
	}
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *SMTPMailer) SendOTP(_ context.Context, to, name, code string) error {
	subject := "Your OTP Code"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour verification code is %s.\nIt expires in 2 minutes.\n",
		name, code,
	)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) SendPasswordReset(_ context.Context, to, name, resetLink string) error {
	subject := "Password Reset"
	body := fmt.Sprintf(
		"Hi %s,\n\nA password reset was requested for your account.\nReset it here: %s\n\nThe link expires shortly. If you did not request this, ignore this mail.\n",
		name, resetLink,
	)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("mail: recipient is required")
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	msg := buildMessage(m.from, to, subject, body)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("mail send to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) string {
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
