// Package service runs the onboarding session state machine against the
// session store and publishes the resulting domain events.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"sst_portal_backend/internal/catalog"
	"sst_portal_backend/internal/diagnosis"
	"sst_portal_backend/internal/events"
	"sst_portal_backend/internal/onboarding/credentials"
	"sst_portal_backend/internal/onboarding/domain"
	"sst_portal_backend/internal/onboarding/repository"
	"sst_portal_backend/internal/onboarding/token"
	"sst_portal_backend/internal/onboarding/transport"
	"sst_portal_backend/platform/apperr"
	"sst_portal_backend/platform/logger"
	"sst_portal_backend/platform/metrics"
	"sst_portal_backend/platform/phone"

	"github.com/google/uuid"
)

const (
	msgSignupComplete = "Cadastro concluído com sucesso."
	msgAuthRequired   = "authentication required"
	msgAlreadyAuthed  = "already authenticated"
	msgPending        = "diagnosis pending"
	msgOutOfOrder     = "step not available in the current session state"
	msgSessionMissing = "session not found"
	msgBadCredentials = "invalid credentials"
	msgEmailTaken     = "email already registered"
)

// DiagnosisRunner resolves a pending diagnosis some time after it starts.
// Implementations call Service.CompleteDiagnosis exactly once per schedule.
type DiagnosisRunner interface {
	Schedule(ctx context.Context, sessionID uuid.UUID) error
}

// Service provides the onboarding flow operations.
type Service struct {
	store   repository.SessionStore
	creds   credentials.Store
	tokens  *token.Issuer
	bus     events.Bus
	log     *logger.Logger
	runner  DiagnosisRunner
	metrics *metrics.Metrics
	now     func() time.Time
}

// New creates the onboarding service. Without a runner, diagnoses resolve
// inside the intake request.
func New(store repository.SessionStore, creds credentials.Store, tokens *token.Issuer, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		creds:  creds,
		tokens: tokens,
		bus:    bus,
		log:    log,
		now:    time.Now,
	}
}

// SetRunner installs the asynchronous diagnosis runner.
func (s *Service) SetRunner(runner DiagnosisRunner) {
	s.runner = runner
}

// SetMetrics enables funnel metrics.
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// Start creates an anonymous session and its signed token.
func (s *Service) Start(ctx context.Context) (transport.CreateSessionResponse, error) {
	sess := domain.NewSession(uuid.New(), s.now())
	if err := s.store.Create(ctx, sess); err != nil {
		return transport.CreateSessionResponse{}, err
	}
	raw, err := s.tokens.Issue(sess.ID)
	if err != nil {
		return transport.CreateSessionResponse{}, err
	}
	return transport.CreateSessionResponse{Token: raw, Session: transport.ToSessionResponse(sess)}, nil
}

// Resolve maps a token to a live session ID.
func (s *Service) Resolve(ctx context.Context, rawToken string) (uuid.UUID, bool) {
	if strings.TrimSpace(rawToken) == "" {
		return uuid.Nil, false
	}
	id, err := s.tokens.Parse(rawToken)
	if err != nil {
		return uuid.Nil, false
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Get returns the current session snapshot.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.SessionResponse, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return transport.SessionResponse{}, s.mapError(err, "")
	}
	return transport.ToSessionResponse(sess), nil
}

// SubmitIntake records the profile and starts the diagnosis. A second
// submission while the diagnosis is pending changes nothing.
func (s *Service) SubmitIntake(ctx context.Context, id uuid.UUID, req transport.IntakeRequest) (transport.SessionResponse, error) {
	profile := toProfile(req)
	now := s.now()

	var started bool
	sess, err := s.store.Update(ctx, id, func(d *domain.Session) error {
		started = false
		changed, err := d.SubmitIntake(profile, now)
		if err != nil || !changed {
			return err
		}
		started, err = d.StartDiagnosis(now)
		return err
	})
	if err != nil {
		return transport.SessionResponse{}, s.mapError(err, "")
	}
	if !started {
		return transport.ToSessionResponse(sess), nil
	}

	s.transitioned(id, domain.StateAnonymous, domain.StateFormFilled)
	s.transitioned(id, domain.StateFormFilled, domain.StateDiagnosing)

	if s.runner == nil {
		return s.resolveInline(ctx, id)
	}
	if err := s.runner.Schedule(ctx, id); err != nil {
		s.log.Warn("diagnosis scheduling failed; resolving inline", "sessionId", id, "error", err)
		return s.resolveInline(ctx, id)
	}
	return transport.ToSessionResponse(sess), nil
}

func (s *Service) resolveInline(ctx context.Context, id uuid.UUID) (transport.SessionResponse, error) {
	if err := s.CompleteDiagnosis(ctx, id); err != nil {
		return transport.SessionResponse{}, err
	}
	return s.Get(ctx, id)
}

// CompleteDiagnosis is the single resolution path of a pending diagnosis.
// Sessions that are gone or no longer pending are left alone.
func (s *Service) CompleteDiagnosis(ctx context.Context, id uuid.UUID) error {
	now := s.now()
	var (
		done      bool
		startedAt time.Time
	)
	sess, err := s.store.Update(ctx, id, func(d *domain.Session) error {
		if d.DiagnosisStartedAt != nil {
			startedAt = *d.DiagnosisStartedAt
		}
		done = d.CompleteDiagnosis(now)
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Info("diagnosis resolved for a session that no longer exists", "sessionId", id)
		return nil
	}
	if err != nil {
		return err
	}
	if !done {
		return nil
	}

	s.transitioned(id, domain.StateDiagnosing, domain.StateDiagnosed)
	s.metrics.IncrementDiagnosesCompleted()
	if !startedAt.IsZero() {
		s.metrics.ObserveDiagnosisWait(now.Sub(startedAt).Seconds())
	}

	s.bus.Publish(ctx, events.DiagnosisCompleted{
		BaseEvent:   events.NewBaseEvent(),
		SessionID:   id,
		CompanyName: sess.Lead.Profile.CompanyName,
		Segment:     string(sess.Lead.Profile.Segment),
		Obligations: obligationCodes(sess.Lead.Diagnosis),
	})
	return nil
}

// Diagnosis returns the lead once it is available. While the diagnosis is
// pending the response carries Pending and no result.
func (s *Service) Diagnosis(ctx context.Context, id uuid.UUID) (transport.DiagnosisResponse, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return transport.DiagnosisResponse{}, s.mapError(err, "")
	}

	lead, err := sess.DiagnosisResult()
	if errors.Is(err, domain.ErrDiagnosisPending) {
		return transport.DiagnosisResponse{Pending: true, State: sess.State, Profile: sess.Profile}, nil
	}
	if err != nil {
		return transport.DiagnosisResponse{}, s.mapError(err, "")
	}

	profile := lead.Profile
	result := lead.Diagnosis
	return transport.DiagnosisResponse{State: sess.State, Profile: &profile, Diagnosis: &result}, nil
}

// AcceptProposal captures the lead for the signup step.
func (s *Service) AcceptProposal(ctx context.Context, id uuid.UUID) (transport.AcceptResponse, error) {
	var captured bool
	sess, err := s.store.Update(ctx, id, func(d *domain.Session) error {
		captured = d.State == domain.StateDiagnosed
		return d.AcceptProposal(s.now())
	})
	if err != nil {
		return transport.AcceptResponse{}, s.mapError(err, "")
	}

	if captured {
		s.transitioned(id, domain.StateDiagnosed, domain.StateLeadCaptured)
		s.metrics.IncrementLeadsCaptured()

		p := sess.Lead.Profile
		s.bus.Publish(ctx, events.LeadCaptured{
			BaseEvent:   events.NewBaseEvent(),
			SessionID:   id,
			CompanyName: p.CompanyName,
			ContactName: p.ContactName,
			Email:       p.Email,
			Phone:       p.Phone,
			City:        p.City,
			Obligations: obligationCodes(sess.Lead.Diagnosis),
			MonthlyFee:  sess.Lead.Diagnosis.Price.Monthly,
			SetupFee:    sess.Lead.Diagnosis.Price.Setup,
		})
	}
	return transport.AcceptResponse{State: sess.State, RedirectTo: domain.SignupPath}, nil
}

// SignupScreen returns the company summary for the signup form.
func (s *Service) SignupScreen(ctx context.Context, id uuid.UUID) (transport.SignupScreenResponse, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return transport.SignupScreenResponse{}, s.mapError(err, "")
	}
	lead, err := sess.CapturedLead()
	if err != nil {
		return transport.SignupScreenResponse{}, s.mapError(err, "")
	}

	p := lead.Profile
	return transport.SignupScreenResponse{
		CompanyName:   p.CompanyName,
		CNPJ:          p.TaxID,
		Segment:       string(p.Segment),
		HeadcountBand: string(p.HeadcountBand),
		City:          p.City,
		Location:      p.City + " / BA",
		Price:         lead.Diagnosis.Price,
		Obligations:   obligationCodes(lead.Diagnosis),
	}, nil
}

// SignUp converts the captured lead into an account. The credential goes
// to the credential store and nowhere else.
func (s *Service) SignUp(ctx context.Context, id uuid.UUID, req transport.SignUpRequest) (transport.SignUpResponse, error) {
	form := domain.SignupForm{
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AcceptTerms:     req.AcceptTerms,
	}
	accountID := accountIDFor(id)
	now := s.now()

	var account *domain.Account
	_, err := s.store.Update(ctx, id, func(d *domain.Session) error {
		acc, err := d.SignUp(form, accountID, now)
		if err != nil {
			return err
		}
		if err := s.creds.Register(ctx, *acc, form.Password); err != nil {
			return err
		}
		account = acc
		return nil
	})
	if err != nil {
		s.log.AuthEvent("signup", "", false, err.Error())
		return transport.SignUpResponse{}, s.mapError(err, "")
	}

	s.transitioned(id, domain.StateLeadCaptured, domain.StateAuthenticated)
	s.metrics.IncrementAccountsCreated()
	s.log.AuthEvent("signup", account.Email, true, "")

	s.bus.Publish(ctx, events.AccountCreated{
		BaseEvent:   events.NewBaseEvent(),
		SessionID:   id,
		AccountID:   account.ID,
		CompanyName: account.CompanyName,
		ContactName: account.ContactName,
		Email:       account.Email,
	})

	return transport.SignUpResponse{Message: msgSignupComplete, RedirectTo: domain.DashboardPath, Account: *account}, nil
}

// Login verifies the credential pair and attaches the account. The
// response names the screen the client should open next.
func (s *Service) Login(ctx context.Context, id uuid.UUID, req transport.LoginRequest) (transport.LoginResponse, error) {
	account, err := s.creds.Verify(ctx, req.Email, req.Password)
	if err != nil {
		s.metrics.ObserveLogin("failure")
		s.log.AuthEvent("login", req.Email, false, err.Error())
		return transport.LoginResponse{}, s.mapError(err, "")
	}

	var (
		from        domain.State
		destination string
	)
	_, err = s.store.Update(ctx, id, func(d *domain.Session) error {
		from = d.State
		dest, err := d.Login(account, req.From, s.now())
		destination = dest
		return err
	})
	if err != nil {
		s.metrics.ObserveLogin("failure")
		return transport.LoginResponse{}, s.mapError(err, "")
	}

	s.transitioned(id, from, domain.StateAuthenticated)
	s.metrics.ObserveLogin("success")
	s.log.AuthEvent("login", account.Email, true, "")

	s.bus.Publish(ctx, events.AccountLoggedIn{
		BaseEvent: events.NewBaseEvent(),
		SessionID: id,
		AccountID: account.ID,
		Email:     account.Email,
	})
	return transport.LoginResponse{RedirectTo: destination, Account: account}, nil
}

// Logout tears the session down and hands out a fresh anonymous one.
func (s *Service) Logout(ctx context.Context, id uuid.UUID) (transport.LogoutResponse, error) {
	var accountID uuid.UUID
	_, err := s.store.Update(ctx, id, func(d *domain.Session) error {
		if d.Account != nil {
			accountID = d.Account.ID
		}
		return d.Logout(s.now())
	})
	if err != nil {
		return transport.LogoutResponse{}, s.mapError(err, domain.LoginPath)
	}
	s.transitioned(id, domain.StateAuthenticated, domain.StateAnonymous)

	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Warn("failed to delete logged out session", "sessionId", id, "error", err)
	}

	fresh, err := s.Start(ctx)
	if err != nil {
		return transport.LogoutResponse{}, err
	}

	s.log.AuthEvent("logout", "", true, "")
	s.bus.Publish(ctx, events.AccountLoggedOut{
		BaseEvent: events.NewBaseEvent(),
		SessionID: id,
		AccountID: accountID,
	})
	return transport.LogoutResponse{Token: fresh.Token, SessionID: fresh.Session.SessionID, RedirectTo: domain.LoginPath}, nil
}

// Authorize gates a portal screen. A refused request remembers the screen
// so the next login lands there.
func (s *Service) Authorize(ctx context.Context, id uuid.UUID, screen string) (domain.Account, error) {
	var gateErr error
	sess, err := s.store.Update(ctx, id, func(d *domain.Session) error {
		gateErr = d.Authorize(screen, s.now())
		return nil
	})
	if err != nil {
		return domain.Account{}, s.mapError(err, screen)
	}
	if gateErr != nil {
		s.metrics.IncrementGateRedirect(domain.LoginPath)
		return domain.Account{}, s.mapError(gateErr, screen)
	}
	return *sess.Account, nil
}

func (s *Service) transitioned(id uuid.UUID, from, to domain.State) {
	s.log.SessionTransition(id.String(), string(from), string(to))
	s.metrics.ObserveTransition(string(from), string(to))
}

// mapError turns domain and store errors into typed application errors
// carrying the screen the client should navigate to.
func (s *Service) mapError(err error, screen string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return apperr.Validation(verr.Message).WithDetails(map[string]any{"fields": verr.Fields})
	case errors.Is(err, domain.ErrMissingLead):
		s.metrics.IncrementGateRedirect(domain.IntakePath)
		return apperr.Wrap(apperr.KindConflict, domain.MsgMissingLead, err).WithRedirect(domain.IntakePath, "")
	case errors.Is(err, domain.ErrAlreadyAuthenticated):
		s.metrics.IncrementGateRedirect(domain.DashboardPath)
		return apperr.Wrap(apperr.KindConflict, msgAlreadyAuthed, err).WithRedirect(domain.DashboardPath, "")
	case errors.Is(err, domain.ErrUnauthorized):
		return apperr.Wrap(apperr.KindUnauthorized, msgAuthRequired, err).WithRedirect(domain.LoginPath, screen)
	case errors.Is(err, domain.ErrDiagnosisPending):
		return apperr.Wrap(apperr.KindConflict, msgPending, err)
	case errors.Is(err, domain.ErrInvalidTransition):
		return apperr.Wrap(apperr.KindConflict, msgOutOfOrder, err)
	case errors.Is(err, repository.ErrNotFound):
		return apperr.Wrap(apperr.KindNotFound, msgSessionMissing, err)
	case errors.Is(err, credentials.ErrInvalidCredentials):
		return apperr.Wrap(apperr.KindUnauthorized, msgBadCredentials, err)
	case errors.Is(err, credentials.ErrPasswordTooLong):
		return apperr.Wrap(apperr.KindValidation, domain.MsgPasswordTooLong, err).WithDetails(map[string]any{"fields": []string{"password"}})
	case errors.Is(err, credentials.ErrEmailTaken):
		return apperr.Wrap(apperr.KindConflict, msgEmailTaken, err)
	default:
		return err
	}
}

// accountIDFor derives the account ID from the session, so a signup retried
// after a failed session write registers the same account again.
func accountIDFor(sessionID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("sst-portal-account:"+sessionID.String()))
}

func toProfile(req transport.IntakeRequest) diagnosis.Profile {
	return diagnosis.Profile{
		ContactName:            strings.TrimSpace(req.FullName),
		Email:                  strings.TrimSpace(req.Email),
		Phone:                  phone.NormalizeE164(req.Phone),
		CompanyName:            strings.TrimSpace(req.CompanyName),
		TaxID:                  strings.TrimSpace(req.CNPJ),
		Role:                   strings.TrimSpace(req.Role),
		City:                   strings.TrimSpace(req.City),
		Segment:                catalog.Segment(strings.TrimSpace(req.Segment)),
		HeadcountBand:          catalog.HeadcountBand(strings.TrimSpace(req.HeadcountBand)),
		HasMachinery:           req.HasMachinery,
		HasHazardousAgents:     req.HasHazardousAgents,
		HasDangerousConditions: req.HasDangerousConditions,
	}
}

func obligationCodes(d diagnosis.Diagnosis) []string {
	codes := make([]string, 0, len(d.Obligations))
	for _, c := range d.Codes() {
		codes = append(codes, string(c))
	}
	return codes
}
