package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers verification links over plain SMTP with AUTH PLAIN.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

func (m *SMTPMailer) SendVerificationLink(_ context.Context, to, link string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: Verify your email address",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Hello,",
		"",
		"Open the link below to confirm your email address. It stays valid for ten minutes.",
		"",
		link,
		"",
	}, "\r\n")

	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}
