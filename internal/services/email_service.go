package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendLeadCaptured(to, leadTitle, contactName string) error
	SendTaskAssigned(to, taskTitle string, dueAt *time.Time) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendLeadCaptured(to, leadTitle, contactName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "New lead captured: "+leadTitle)

	body := fmt.Sprintf(`
		<h3>New lead captured</h3>
		<p>A new lead <strong>%s</strong> was captured via FairEx.</p>
		<p>Contact: %s</p>
		<p>Open the CRM to follow up.</p>
	`, leadTitle, contactName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send lead captured email: %w", err)
	}
	return nil
}

func (s *emailService) SendTaskAssigned(to, taskTitle string, dueAt *time.Time) error {
	due := "no due date"
	if dueAt != nil {
		due = dueAt.Format("2006-01-02 15:04")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Task assigned: "+taskTitle)

	body := fmt.Sprintf(`
		<h3>You have a new task</h3>
		<p><strong>%s</strong></p>
		<p>Due: %s</p>
	`, taskTitle, due)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send task assigned email: %w", err)
	}
	return nil
}
