// Package domain holds the onboarding session: the state machine that
// carries a prospect from the intake form through the diagnosis and
// proposal into an authenticated portal account.
package domain

import (
	"time"

	"sst_portal_backend/internal/catalog"
	"sst_portal_backend/internal/diagnosis"

	"github.com/google/uuid"
)

// State is a step of the onboarding flow.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateFormFilled    State = "form_filled"
	StateDiagnosing    State = "diagnosing"
	StateDiagnosed     State = "diagnosed"
	StateLeadCaptured  State = "lead_captured"
	StateAuthenticated State = "authenticated"
)

// Lead is the submitted profile together with its diagnosis.
type Lead struct {
	Profile   diagnosis.Profile   `json:"profile"`
	Diagnosis diagnosis.Diagnosis `json:"diagnosis"`
}

// Account is the authenticated identity of a portal client. It never
// carries the credential.
type Account struct {
	ID            uuid.UUID             `json:"id"`
	CompanyName   string                `json:"companyName"`
	TaxID         string                `json:"cnpj"`
	Segment       catalog.Segment       `json:"segment"`
	HeadcountBand catalog.HeadcountBand `json:"headcountBand"`
	ContactName   string                `json:"contactName"`
	Email         string                `json:"email"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// Session is one visitor's onboarding state. Every field is owned by the
// session; callers get copies through Clone.
type Session struct {
	ID        uuid.UUID          `json:"id"`
	State     State              `json:"state"`
	Profile   *diagnosis.Profile `json:"profile,omitempty"`
	Lead      *Lead              `json:"lead,omitempty"`
	Account   *Account           `json:"account,omitempty"`
	ReturnTo  string             `json:"returnTo,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`

	// Pending is set while a diagnosis is outstanding; the only path that
	// clears it is CompleteDiagnosis.
	Pending            bool       `json:"pending"`
	DiagnosisStartedAt *time.Time `json:"diagnosisStartedAt,omitempty"`
}

// NewSession creates an anonymous session.
func NewSession(id uuid.UUID, now time.Time) *Session {
	return &Session{ID: id, State: StateAnonymous, CreatedAt: now, UpdatedAt: now}
}

// IsAuthenticated reports whether the session holds an account.
func (s *Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.Account != nil
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.Profile != nil {
		p := *s.Profile
		c.Profile = &p
	}
	if s.Lead != nil {
		l := Lead{Profile: s.Lead.Profile, Diagnosis: cloneDiagnosis(s.Lead.Diagnosis)}
		c.Lead = &l
	}
	if s.Account != nil {
		a := *s.Account
		c.Account = &a
	}
	if s.DiagnosisStartedAt != nil {
		t := *s.DiagnosisStartedAt
		c.DiagnosisStartedAt = &t
	}
	return &c
}

func cloneDiagnosis(d diagnosis.Diagnosis) diagnosis.Diagnosis {
	d.Obligations = append([]catalog.Obligation(nil), d.Obligations...)
	d.ServiceBundle = append([]diagnosis.BundleItem(nil), d.ServiceBundle...)
	return d
}
