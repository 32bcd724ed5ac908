// Package email sends interview notifications over SMTP. Sending is best
// effort everywhere it is used: callers log failures and carry on.
package email

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// Mailer holds SMTP connection details. A zero Address disables sending,
// which keeps local development working without a mail server.
type Mailer struct {
	Host     string
	Port     string
	Address  string
	Password string
	BaseURL  string
}

// NewMailerFromEnv builds a Mailer from SMTP_* environment variables.
func NewMailerFromEnv() *Mailer {
	return &Mailer{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Address:  os.Getenv("SMTP_ADDRESS"),
		Password: os.Getenv("SMTP_PASSWORD"),
		BaseURL:  os.Getenv("FRONTEND_BASE_URL"),
	}
}

func (m *Mailer) send(to, subject, body string) error {
	if m.Address == "" {
		return fmt.Errorf("mailer is not configured")
	}

	msg := strings.Join([]string{
		"From: " + m.Address,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", m.Address, m.Password, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.Address, []string{to}, []byte(msg))
}

// SendInterviewInvitation mails the candidate their join link. The link
// carries the interview id and join token so the AI interview page can
// authenticate without a login.
func (m *Mailer) SendInterviewInvitation(to, candidateName, jobTitle, scheduledAt, token, interviewID string) error {
	joinURL := fmt.Sprintf("%s/interview/join?interview_id=%s&token=%s", m.BaseURL, interviewID, token)
	body := fmt.Sprintf(
		"Dear %s,\n\nYou have been invited to an interview for the position of %s.\n\nScheduled at: %s\n\nJoin your interview here:\n%s\n\nThe link is valid for 48 hours. Please confirm your attendance.\n\nBest regards,\nThe Recruiting Team",
		candidateName, jobTitle, scheduledAt, joinURL,
	)
	return m.send(to, fmt.Sprintf("Interview Invitation: %s", jobTitle), body)
}

// SendInterviewResult mails the candidate their final verdict.
func (m *Mailer) SendInterviewResult(to, candidateName, jobTitle, passStatus, summary string) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nYour interview for the position of %s has been evaluated.\n\nResult: %s\n%s\n\nBest regards,\nThe Recruiting Team",
		candidateName, jobTitle, strings.ToUpper(passStatus), summary,
	)
	return m.send(to, fmt.Sprintf("Interview Result: %s", jobTitle), body)
}
