package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, firstName string) error
	SendStatusUpdate(toEmail, feedbackTitle, newStatus string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendWelcome(toEmail, firstName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to CivicVoice")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome, %s!</h2>
			<p>Your CivicVoice account is ready. Log in to submit and track
			feedback about your community.</p>
		</div>
	`, firstName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send welcome email to %s: %w", toEmail, err)
	}
	return nil
}

func (s *emailService) SendStatusUpdate(toEmail, feedbackTitle, newStatus string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Update on your feedback")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your feedback was updated</h2>
			<p>"%s" is now marked as:</p>
			<h3 style="color: #007BFF;">%s</h3>
			<p>Log in to see the details.</p>
		</div>
	`, feedbackTitle, newStatus)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send status email to %s: %w", toEmail, err)
	}
	return nil
}
