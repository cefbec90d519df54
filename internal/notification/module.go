// Package notification reacts to onboarding and portal events: prospects
// get their proposal summary and new accounts a welcome email, while portal
// requests are forwarded to the operations log.
package notification

import (
	"context"
	"strings"

	"sst_portal_backend/internal/email"
	"sst_portal_backend/internal/events"
	"sst_portal_backend/platform/config"
	"sst_portal_backend/platform/logger"
)

const (
	signupPath    = "/cliente/cadastro"
	dashboardPath = "/cliente/dashboard"
)

// Module is the notification module. It holds no routes; it only
// subscribes to the event bus.
type Module struct {
	sender email.Sender
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// New creates the notification module.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	return &Module{sender: sender, cfg: cfg, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// RegisterHandlers subscribes the module to the events it handles.
func (m *Module) RegisterHandlers(bus events.Bus) {
	// Onboarding
	bus.Subscribe(events.LeadCaptured{}.EventName(), m)
	bus.Subscribe(events.AccountCreated{}.EventName(), m)

	// Portal requests
	bus.Subscribe(events.MessageSent{}.EventName(), m)
	bus.Subscribe(events.AppointmentRequested{}.EventName(), m)
	bus.Subscribe(events.DocumentsUploaded{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCaptured:
		return m.handleLeadCaptured(ctx, e)
	case events.AccountCreated:
		return m.handleAccountCreated(ctx, e)
	case events.MessageSent:
		m.log.Info("client message received", "accountId", e.AccountID, "threadId", e.ThreadID, "length", len(e.Text))
		return nil
	case events.AppointmentRequested:
		m.log.Info("appointment requested",
			"accountId", e.AccountID,
			"worker", e.WorkerName,
			"examType", e.ExamType,
			"date", e.Date,
			"time", e.Time,
			"unit", e.Unit,
		)
		return nil
	case events.DocumentsUploaded:
		m.log.Info("documents uploaded", "accountId", e.AccountID, "files", len(e.FileNames))
		return nil
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleLeadCaptured(ctx context.Context, e events.LeadCaptured) error {
	if strings.TrimSpace(e.Email) == "" {
		m.log.Warn("lead captured without email, skipping proposal summary", "sessionId", e.SessionID)
		return nil
	}

	summary := email.ProposalSummary{
		ContactName: e.ContactName,
		CompanyName: e.CompanyName,
		Obligations: e.Obligations,
		MonthlyFee:  e.MonthlyFee,
		SetupFee:    e.SetupFee,
		SignupURL:   m.link(signupPath),
	}
	if err := m.sender.SendProposalSummary(ctx, e.Email, summary); err != nil {
		m.log.Error("failed to send proposal summary", "sessionId", e.SessionID, "error", err)
		return err
	}
	m.log.Info("proposal summary sent", "sessionId", e.SessionID, "company", e.CompanyName)
	return nil
}

func (m *Module) handleAccountCreated(ctx context.Context, e events.AccountCreated) error {
	if strings.TrimSpace(e.Email) == "" {
		return nil
	}
	if err := m.sender.SendWelcome(ctx, e.Email, e.ContactName, e.CompanyName, m.link(dashboardPath)); err != nil {
		m.log.Error("failed to send welcome email", "accountId", e.AccountID, "error", err)
		return err
	}
	m.log.Info("welcome email sent", "accountId", e.AccountID)
	return nil
}

func (m *Module) link(path string) string {
	base := ""
	if m.cfg != nil {
		base = strings.TrimRight(strings.TrimSpace(m.cfg.GetAppBaseURL()), "/")
	}
	return base + path
}
