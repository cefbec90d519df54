package domain

import (
	"time"
	"unicode/utf8"

	"sst_portal_backend/internal/diagnosis"

	"github.com/google/uuid"
)

// MinPasswordLength is the shortest accepted signup credential, in runes.
const MinPasswordLength = 4

// MaxPasswordBytes is the longest credential bcrypt can hash.
const MaxPasswordBytes = 72

var allowed = map[State][]State{
	StateAnonymous:     {StateFormFilled, StateAuthenticated},
	StateFormFilled:    {StateDiagnosing, StateAuthenticated},
	StateDiagnosing:    {StateDiagnosed, StateAuthenticated},
	StateDiagnosed:     {StateLeadCaptured, StateAuthenticated},
	StateLeadCaptured:  {StateAuthenticated},
	StateAuthenticated: {StateAnonymous},
}

// CanTransition reports whether the machine has an edge from -> to.
func CanTransition(from, to State) bool {
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s *Session) moveTo(to State, now time.Time) error {
	if !CanTransition(s.State, to) {
		return ErrInvalidTransition
	}
	s.State = to
	s.UpdatedAt = now
	return nil
}

// SubmitIntake records the intake profile. Submitting again while the
// diagnosis is running is a no-op and reports changed=false.
func (s *Session) SubmitIntake(p diagnosis.Profile, now time.Time) (changed bool, err error) {
	switch s.State {
	case StateAuthenticated:
		return false, ErrAlreadyAuthenticated
	case StateDiagnosing:
		return false, nil
	case StateAnonymous:
	default:
		return false, ErrInvalidTransition
	}

	if missing := p.MissingFields(); len(missing) > 0 {
		return false, &ValidationError{Message: MsgIntakeIncomplete, Fields: missing}
	}

	profile := p
	s.Profile = &profile
	return true, s.moveTo(StateFormFilled, now)
}

// StartDiagnosis marks the diagnosis as pending. Calling it while already
// diagnosing reports started=false.
func (s *Session) StartDiagnosis(now time.Time) (started bool, err error) {
	if s.State == StateDiagnosing {
		return false, nil
	}
	if s.State != StateFormFilled || s.Profile == nil {
		return false, ErrInvalidTransition
	}
	if err := s.moveTo(StateDiagnosing, now); err != nil {
		return false, err
	}
	s.Pending = true
	at := now
	s.DiagnosisStartedAt = &at
	return true, nil
}

// CompleteDiagnosis resolves a pending diagnosis. It reports false when
// there is nothing pending, so duplicate resolutions are harmless.
func (s *Session) CompleteDiagnosis(now time.Time) bool {
	if s.State != StateDiagnosing || !s.Pending || s.Profile == nil {
		return false
	}
	s.Lead = &Lead{Profile: *s.Profile, Diagnosis: diagnosis.Evaluate(*s.Profile)}
	s.Pending = false
	_ = s.moveTo(StateDiagnosed, now)
	return true
}

// DiagnosisResult returns the lead once the diagnosis is available.
func (s *Session) DiagnosisResult() (*Lead, error) {
	switch s.State {
	case StateAuthenticated:
		return nil, ErrAlreadyAuthenticated
	case StateDiagnosing:
		return nil, ErrDiagnosisPending
	case StateDiagnosed, StateLeadCaptured:
		return s.Lead, nil
	default:
		return nil, ErrMissingLead
	}
}

// AcceptProposal captures the lead so it survives until signup. Accepting
// twice is a no-op.
func (s *Session) AcceptProposal(now time.Time) error {
	switch s.State {
	case StateLeadCaptured:
		return nil
	case StateDiagnosed:
		return s.moveTo(StateLeadCaptured, now)
	case StateAuthenticated:
		return ErrAlreadyAuthenticated
	case StateDiagnosing:
		return ErrDiagnosisPending
	default:
		return ErrMissingLead
	}
}

// CapturedLead gates the signup screen.
func (s *Session) CapturedLead() (*Lead, error) {
	if s.State == StateAuthenticated {
		return nil, ErrAlreadyAuthenticated
	}
	if s.State != StateLeadCaptured || s.Lead == nil {
		return nil, ErrMissingLead
	}
	return s.Lead, nil
}

// SignupForm is the signup input. The password is checked here and then
// handed to a credential registry; it never reaches the session.
type SignupForm struct {
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
}

// Validate applies the credential policy in screen order.
func (f SignupForm) Validate() error {
	if utf8.RuneCountInString(f.Password) < MinPasswordLength {
		return &ValidationError{Message: MsgPasswordTooShort, Fields: []string{"password"}}
	}
	if len(f.Password) > MaxPasswordBytes {
		return &ValidationError{Message: MsgPasswordTooLong, Fields: []string{"password"}}
	}
	if f.Password != f.ConfirmPassword {
		return &ValidationError{Message: MsgPasswordMismatch, Fields: []string{"confirmPassword"}}
	}
	if !f.AcceptTerms {
		return &ValidationError{Message: MsgTermsRequired, Fields: []string{"acceptTerms"}}
	}
	return nil
}

// SignUp converts the captured lead into an account. The lead is consumed.
func (s *Session) SignUp(form SignupForm, accountID uuid.UUID, now time.Time) (*Account, error) {
	lead, err := s.CapturedLead()
	if err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	p := lead.Profile
	account := &Account{
		ID:            accountID,
		CompanyName:   p.CompanyName,
		TaxID:         p.TaxID,
		Segment:       p.Segment,
		HeadcountBand: p.HeadcountBand,
		ContactName:   p.ContactName,
		Email:         p.Email,
		CreatedAt:     now,
	}
	if err := s.moveTo(StateAuthenticated, now); err != nil {
		return nil, err
	}
	s.Account = account
	s.Lead = nil
	s.Profile = nil
	s.ReturnTo = ""
	return account, nil
}

// Login attaches a verified account and returns where the client should go:
// the remembered destination, else the requested portal screen, else the
// dashboard. Any in-flight onboarding data is dropped.
func (s *Session) Login(account Account, requested string, now time.Time) (string, error) {
	if s.State == StateAuthenticated {
		return "", ErrAlreadyAuthenticated
	}

	destination := DashboardPath
	switch {
	case IsPortalPath(s.ReturnTo):
		destination = s.ReturnTo
	case IsPortalPath(requested):
		destination = requested
	}

	if err := s.moveTo(StateAuthenticated, now); err != nil {
		return "", err
	}
	acc := account
	s.Account = &acc
	s.Profile = nil
	s.Lead = nil
	s.Pending = false
	s.DiagnosisStartedAt = nil
	s.ReturnTo = ""
	return destination, nil
}

// Logout clears everything the session carried. The lead is not restored.
func (s *Session) Logout(now time.Time) error {
	if s.State != StateAuthenticated {
		return ErrUnauthorized
	}
	if err := s.moveTo(StateAnonymous, now); err != nil {
		return err
	}
	s.Account = nil
	s.Lead = nil
	s.Profile = nil
	s.ReturnTo = ""
	return nil
}

// Authorize gates a portal screen. When the session has no account the
// screen is remembered for the post-login redirect.
func (s *Session) Authorize(screen string, now time.Time) error {
	if s.IsAuthenticated() {
		return nil
	}
	if IsPortalPath(screen) {
		s.ReturnTo = screen
		s.UpdatedAt = now
	}
	return ErrUnauthorized
}
