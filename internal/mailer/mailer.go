// Package mailer renders and delivers notification e-mails. Delivery is
// best-effort: callers log and count failures but never fail the request
// whose business write already committed.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"sync/atomic"

	"hirehub/internal/middleware"
	"hirehub/internal/observability"
)

// Mailer sends the notification e-mails of the application workflow.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
	SendApplicationConfirmation(ctx context.Context, toEmail, seekerName, jobTitle, company string) error
	SendApplicationRejection(ctx context.Context, toEmail, seekerName, jobTitle, company string) error
	SendApplicationShortlist(ctx context.Context, toEmail, seekerName, jobTitle, company string) error
	SendNewApplicationNotice(ctx context.Context, toEmail, employerName, jobTitle, applicantName string) error
}

// Stats is a point-in-time snapshot of delivery outcomes.
type Stats struct {
	Sent   uint64 `json:"sent"`
	Failed uint64 `json:"failed"`
}

// LogMailer renders the HTML templates and simulates SMTP delivery by
// logging the envelope. Swapping in a real SMTP client only means replacing
// the Send method.
type LogMailer struct {
	from     string
	fromName string
	logger   *slog.Logger
	sent     atomic.Uint64
	failed   atomic.Uint64
}

// NewLogMailer creates a simulated mailer with the given sender identity.
func NewLogMailer(from, fromName string) *LogMailer {
	return &LogMailer{from: from, fromName: fromName, logger: middleware.Logger}
}

// Send logs the envelope in place of an SMTP handoff.
func (m *LogMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if to == "" {
		m.failed.Add(1)
		return fmt.Errorf("missing recipient address")
	}
	m.logger.InfoContext(ctx, "email dispatched",
		slog.String("from", fmt.Sprintf("%s <%s>", m.fromName, m.from)),
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("body_bytes", len(htmlBody)),
	)
	m.sent.Add(1)
	return nil
}

// Stats reports how many envelopes were handed off and how many failed.
func (m *LogMailer) Stats() Stats {
	return Stats{Sent: m.sent.Load(), Failed: m.failed.Load()}
}

func (m *LogMailer) SendApplicationConfirmation(ctx context.Context, toEmail, seekerName, jobTitle, company string) error {
	body, err := render(confirmationTmpl, scenarioData{Name: seekerName, JobTitle: jobTitle, Company: company})
	if err != nil {
		observability.RecordEmail("confirmation", err)
		return err
	}
	err = m.Send(ctx, toEmail, "Application Submitted Successfully - HireHub", body)
	observability.RecordEmail("confirmation", err)
	return err
}

func (m *LogMailer) SendApplicationRejection(ctx context.Context, toEmail, seekerName, jobTitle, company string) error {
	body, err := render(rejectionTmpl, scenarioData{Name: seekerName, JobTitle: jobTitle, Company: company})
	if err != nil {
		observability.RecordEmail("rejection", err)
		return err
	}
	err = m.Send(ctx, toEmail, "Application Update - HireHub", body)
	observability.RecordEmail("rejection", err)
	return err
}

func (m *LogMailer) SendApplicationShortlist(ctx context.Context, toEmail, seekerName, jobTitle, company string) error {
	body, err := render(shortlistTmpl, scenarioData{Name: seekerName, JobTitle: jobTitle, Company: company})
	if err != nil {
		observability.RecordEmail("shortlist", err)
		return err
	}
	err = m.Send(ctx, toEmail, "Great News! You've Been Shortlisted - HireHub", body)
	observability.RecordEmail("shortlist", err)
	return err
}

func (m *LogMailer) SendNewApplicationNotice(ctx context.Context, toEmail, employerName, jobTitle, applicantName string) error {
	body, err := render(newApplicationTmpl, scenarioData{Name: employerName, JobTitle: jobTitle, Applicant: applicantName})
	if err != nil {
		observability.RecordEmail("new_application", err)
		return err
	}
	err = m.Send(ctx, toEmail, "New Job Application Received - HireHub", body)
	observability.RecordEmail("new_application", err)
	return err
}

type scenarioData struct {
	Name      string
	JobTitle  string
	Company   string
	Applicant string
}

func render(t *template.Template, data scenarioData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}
