package email

import (
	"context"

	"sst_portal_backend/platform/config"
)

// ProposalSummary is the content of the email sent when a prospect
// accepts the proposal.
type ProposalSummary struct {
	ContactName string
	CompanyName string
	Obligations []string
	MonthlyFee  string
	SetupFee    string
	SignupURL   string
}

type Sender interface {
	SendProposalSummary(ctx context.Context, toEmail string, summary ProposalSummary) error
	SendWelcome(ctx context.Context, toEmail, contactName, companyName, portalURL string) error
}

type NoopSender struct{}

func (NoopSender) SendProposalSummary(context.Context, string, ProposalSummary) error {
	return nil
}

func (NoopSender) SendWelcome(context.Context, string, string, string, string) error {
	return nil
}

// NewSender returns the SMTP sender when email is enabled, a no-op sender
// otherwise.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}
