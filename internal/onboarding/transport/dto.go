package transport

import (
	"sst_portal_backend/internal/diagnosis"
	"sst_portal_backend/internal/onboarding/domain"

	"github.com/google/uuid"
)

// IntakeRequest is the intake form. Blank required fields are reported by
// the state machine; the tags here only reject malformed values.
type IntakeRequest struct {
	FullName               string `json:"fullName" validate:"max=200"`
	Email                  string `json:"email" validate:"omitempty,email,max=254"`
	Phone                  string `json:"phone" validate:"max=40"`
	CompanyName            string `json:"companyName" validate:"max=200"`
	CNPJ                   string `json:"cnpj" validate:"omitempty,cnpj"`
	Role                   string `json:"role" validate:"max=120"`
	City                   string `json:"city" validate:"omitempty,city"`
	Segment                string `json:"segment" validate:"omitempty,segment"`
	HeadcountBand          string `json:"headcountBand" validate:"omitempty,headcount_band"`
	HasMachinery           bool   `json:"hasMachinery"`
	HasHazardousAgents     bool   `json:"hasHazardousAgents"`
	HasDangerousConditions bool   `json:"hasDangerousConditions"`
}

type SignUpRequest struct {
	Password        string `json:"password" validate:"max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"max=72"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Password string `json:"password" validate:"max=128"`
	From     string `json:"from" validate:"max=200"`
}

type SessionResponse struct {
	SessionID uuid.UUID          `json:"sessionId"`
	State     domain.State       `json:"state"`
	Pending   bool               `json:"pending"`
	HasLead   bool               `json:"hasLead"`
	Profile   *diagnosis.Profile `json:"profile,omitempty"`
	Account   *domain.Account    `json:"account,omitempty"`
	ReturnTo  string             `json:"returnTo,omitempty"`
}

type CreateSessionResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

type DiagnosisResponse struct {
	Pending   bool                 `json:"pending"`
	State     domain.State         `json:"state"`
	Profile   *diagnosis.Profile   `json:"profile,omitempty"`
	Diagnosis *diagnosis.Diagnosis `json:"diagnosis,omitempty"`
}

type AcceptResponse struct {
	State      domain.State `json:"state"`
	RedirectTo string       `json:"redirectTo"`
}

// SignupScreenResponse is the company summary shown above the signup form.
type SignupScreenResponse struct {
	CompanyName   string                  `json:"companyName"`
	CNPJ          string                  `json:"cnpj"`
	Segment       string                  `json:"segment"`
	HeadcountBand string                  `json:"headcountBand"`
	City          string                  `json:"city"`
	Location      string                  `json:"location"`
	Price         diagnosis.PriceEstimate `json:"price"`
	Obligations   []string                `json:"obligations"`
}

type SignUpResponse struct {
	Message    string         `json:"message"`
	RedirectTo string         `json:"redirectTo"`
	Account    domain.Account `json:"account"`
}

type LoginResponse struct {
	RedirectTo string         `json:"redirectTo"`
	Account    domain.Account `json:"account"`
}

type LogoutResponse struct {
	Token      string    `json:"token"`
	SessionID  uuid.UUID `json:"sessionId"`
	RedirectTo string    `json:"redirectTo"`
}

// ToSessionResponse snapshots a session for the client.
func ToSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		SessionID: s.ID,
		State:     s.State,
		Pending:   s.Pending,
		HasLead:   s.Lead != nil,
		Profile:   s.Profile,
		Account:   s.Account,
		ReturnTo:  s.ReturnTo,
	}
}
