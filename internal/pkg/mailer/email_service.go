package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSubscriptionActivated(toEmail, fullName string) error
	SendSubscriptionEnded(toEmail, fullName, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendSubscriptionActivated(toEmail, fullName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to Pro, %s!</h2>
			<p>Your subscription is active. Graphs, flashcards, solutions and
			practice tests are now unlimited.</p>
			<p>Happy studying!</p>
		</div>
	`, fullName)
	return s.send(toEmail, "Your Pro subscription is active", body)
}

func (s *emailService) SendSubscriptionEnded(toEmail, fullName, reason string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Sorry to see you go, %s</h2>
			<p>Your Pro subscription has ended (%s). Your account is back on
			the free plan and your saved work stays right where it is.</p>
			<p>You can resubscribe any time from your account page.</p>
		</div>
	`, fullName, reason)
	return s.send(toEmail, "Your Pro subscription has ended", body)
}
