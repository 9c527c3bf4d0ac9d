package common

import (
	"fmt"
	"net/smtp"
	"strings"
)

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	Send(to, subject, html string) error
}

// Email represents a single message captured by InMemoryEmail.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// InMemoryEmail is a test-friendly sender that records messages.
type InMemoryEmail struct {
	Outbox []Email
}

// Send records the email in memory.
func (m *InMemoryEmail) Send(to, subject, html string) error {
	if m == nil {
		return nil
	}
	m.Outbox = append(m.Outbox, Email{To: to, Subject: subject, HTML: html})
	return nil
}

// NopEmailSender implements EmailSender without performing any action.
type NopEmailSender struct{}

// Send implements EmailSender.
func (NopEmailSender) Send(string, string, string) error { return nil }

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	Addr     string
	From     string
	Username string
	Password string
	Host     string
}

// Send implements EmailSender over SMTP with optional PLAIN auth.
func (s SMTPSender) Send(to, subject, html string) error {
	if strings.TrimSpace(s.Addr) == "" {
		return fmt.Errorf("smtp: relay address not configured")
	}
	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"",
		html,
	}, "\r\n")
	return smtp.SendMail(s.Addr, auth, s.From, []string{to}, []byte(msg))
}
