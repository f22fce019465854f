package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/eximdesk/exim-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService sends the KPI review-chain notifications. Sends are
// best-effort: a mail failure never fails the triggering request.
type EmailService interface {
	SendReviewRequested(to, reviewerName, ownerName, period, stage string) error
	SendSheetDecision(to, ownerName, period, decision, comments string) error
	SendDeadlineReminder(to, ownerName, period, deadline string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type reviewRequestedData struct {
	ReviewerName string
	OwnerName    string
	Period       string
	Stage        string
}

// SendReviewRequested tells the next signatory a sheet is waiting on them.
func (s *emailServiceImpl) SendReviewRequested(to, reviewerName, ownerName, period, stage string) error {
	data := reviewRequestedData{
		ReviewerName: reviewerName,
		OwnerName:    ownerName,
		Period:       period,
		Stage:        stage,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "review_requested.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("KPI sheet %s awaiting your %s", period, stage), body.String())
}

type sheetDecisionData struct {
	OwnerName string
	Period    string
	Decision  string
	Comments  string
}

// SendSheetDecision tells the owner their sheet was approved or rejected.
func (s *emailServiceImpl) SendSheetDecision(to, ownerName, period, decision, comments string) error {
	data := sheetDecisionData{
		OwnerName: ownerName,
		Period:    period,
		Decision:  decision,
		Comments:  comments,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "sheet_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("KPI sheet %s %s", period, decision), body.String())
}

type deadlineReminderData struct {
	OwnerName string
	Period    string
	Deadline  string
}

// SendDeadlineReminder nudges owners with still-unsubmitted sheets.
func (s *emailServiceImpl) SendDeadlineReminder(to, ownerName, period, deadline string) error {
	data := deadlineReminderData{
		OwnerName: ownerName,
		Period:    period,
		Deadline:  deadline,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "deadline_reminder.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("KPI sheet %s locks on %s", period, deadline), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if !s.cfg.Enabled || to == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s\r\n", from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
