package utils

import (
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends outbound account mail. SMTP in production, stubbed in tests.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.User)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	port, err := strconv.Atoi(m.Port)
	if err != nil {
		port = 587
	}
	d := gomail.NewDialer(m.Host, port, m.User, m.Pass)
	return d.DialAndSend(msg)
}
