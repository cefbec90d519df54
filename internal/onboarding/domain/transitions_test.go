package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"sst_portal_backend/internal/catalog"
	"sst_portal_backend/internal/diagnosis"

	"github.com/google/uuid"
)

var now = time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)

func completeProfile() diagnosis.Profile {
	return diagnosis.Profile{
		ContactName:   "Ana Souza",
		Email:         "ana@construtora.com.br",
		Phone:         "+5571999990000",
		CompanyName:   "Construtora Boa Obra",
		TaxID:         "11.222.333/0001-44",
		Role:          "Gerente de RH",
		City:          "Salvador",
		Segment:       catalog.SegmentConstruction,
		HeadcountBand: catalog.Band100To249,
		HasMachinery:  true,
	}
}

func diagnosedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(uuid.New(), now)
	if _, err := s.SubmitIntake(completeProfile(), now); err != nil {
		t.Fatalf("submit intake: %v", err)
	}
	if _, err := s.StartDiagnosis(now); err != nil {
		t.Fatalf("start diagnosis: %v", err)
	}
	if !s.CompleteDiagnosis(now) {
		t.Fatal("expected diagnosis to complete")
	}
	return s
}

func capturedSession(t *testing.T) *Session {
	t.Helper()
	s := diagnosedSession(t)
	if err := s.AcceptProposal(now); err != nil {
		t.Fatalf("accept proposal: %v", err)
	}
	return s
}

func TestSubmitIntakeIncompleteLeavesStateUnchanged(t *testing.T) {
	s := NewSession(uuid.New(), now)
	p := completeProfile()
	p.TaxID = ""
	p.City = ""

	_, err := s.SubmitIntake(p, now)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Message != MsgIntakeIncomplete {
		t.Fatalf("unexpected message %q", verr.Message)
	}
	if len(verr.Fields) != 2 || verr.Fields[0] != "cnpj" || verr.Fields[1] != "city" {
		t.Fatalf("expected cnpj and city missing, got %v", verr.Fields)
	}
	if s.State != StateAnonymous || s.Profile != nil {
		t.Fatalf("session changed on rejected intake: %+v", s)
	}
}

func TestIntakeToDiagnosed(t *testing.T) {
	s := NewSession(uuid.New(), now)

	changed, err := s.SubmitIntake(completeProfile(), now)
	if err != nil || !changed {
		t.Fatalf("submit intake: changed=%v err=%v", changed, err)
	}
	if s.State != StateFormFilled {
		t.Fatalf("expected form_filled, got %s", s.State)
	}

	started, err := s.StartDiagnosis(now)
	if err != nil || !started {
		t.Fatalf("start diagnosis: started=%v err=%v", started, err)
	}
	if s.State != StateDiagnosing || !s.Pending {
		t.Fatalf("expected pending diagnosing session, got %s pending=%v", s.State, s.Pending)
	}
	if _, err := s.DiagnosisResult(); !errors.Is(err, ErrDiagnosisPending) {
		t.Fatalf("expected pending error while diagnosing, got %v", err)
	}

	if !s.CompleteDiagnosis(now.Add(2 * time.Second)) {
		t.Fatal("expected completion")
	}
	if s.State != StateDiagnosed || s.Pending {
		t.Fatalf("expected diagnosed without pending flag, got %s pending=%v", s.State, s.Pending)
	}
	lead, err := s.DiagnosisResult()
	if err != nil {
		t.Fatalf("diagnosis result: %v", err)
	}
	if lead.Profile.CompanyName != "Construtora Boa Obra" {
		t.Fatalf("lead lost the profile: %+v", lead.Profile)
	}
	if len(lead.Diagnosis.Obligations) != 4 {
		t.Fatalf("expected 4 obligations, got %v", lead.Diagnosis.Codes())
	}
}

func TestSecondSubmitWhileDiagnosingIsNoop(t *testing.T) {
	s := NewSession(uuid.New(), now)
	_, _ = s.SubmitIntake(completeProfile(), now)
	_, _ = s.StartDiagnosis(now)

	other := completeProfile()
	other.CompanyName = "Outra"
	changed, err := s.SubmitIntake(other, now)
	if err != nil || changed {
		t.Fatalf("expected silent no-op, got changed=%v err=%v", changed, err)
	}
	started, err := s.StartDiagnosis(now)
	if err != nil || started {
		t.Fatalf("expected second start to be a no-op, got started=%v err=%v", started, err)
	}
	if s.Profile.CompanyName != "Construtora Boa Obra" {
		t.Fatal("profile was replaced during diagnosis")
	}
}

func TestCompleteDiagnosisResolvesOnce(t *testing.T) {
	s := diagnosedSession(t)
	first := s.Lead

	if s.CompleteDiagnosis(now) {
		t.Fatal("second resolution must be a no-op")
	}
	if s.Lead != first {
		t.Fatal("lead was replaced by a duplicate resolution")
	}
}

func TestProfileCannotBeEditedAfterSubmit(t *testing.T) {
	s := diagnosedSession(t)
	if _, err := s.SubmitIntake(completeProfile(), now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestAcceptProposalRequiresDiagnosis(t *testing.T) {
	s := NewSession(uuid.New(), now)
	if err := s.AcceptProposal(now); !errors.Is(err, ErrMissingLead) {
		t.Fatalf("expected missing lead, got %v", err)
	}

	s = diagnosedSession(t)
	if err := s.AcceptProposal(now); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := s.AcceptProposal(now); err != nil {
		t.Fatalf("second accept should be a no-op, got %v", err)
	}
	if s.State != StateLeadCaptured {
		t.Fatalf("expected lead_captured, got %s", s.State)
	}
}

func TestSignupPolicy(t *testing.T) {
	tests := []struct {
		name string
		form SignupForm
		msg  string
	}{
		{name: "too short", form: SignupForm{Password: "ab", ConfirmPassword: "ab", AcceptTerms: true}, msg: MsgPasswordTooShort},
		{name: "empty", form: SignupForm{AcceptTerms: true}, msg: MsgPasswordTooShort},
		{name: "mismatch", form: SignupForm{Password: "abcd", ConfirmPassword: "abce", AcceptTerms: true}, msg: MsgPasswordMismatch},
		{name: "terms", form: SignupForm{Password: "abcd", ConfirmPassword: "abcd"}, msg: MsgTermsRequired},
		{name: "beyond bcrypt limit", form: SignupForm{Password: strings.Repeat("é", 37), ConfirmPassword: strings.Repeat("é", 37), AcceptTerms: true}, msg: MsgPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := capturedSession(t)
			_, err := s.SignUp(tt.form, uuid.New(), now)

			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Message != tt.msg {
				t.Fatalf("expected %q, got %v", tt.msg, err)
			}
			if s.State != StateLeadCaptured || s.Lead == nil || s.Account != nil {
				t.Fatalf("rejected signup changed the session: %+v", s)
			}
		})
	}
}

func TestSignupCountsRunesNotBytes(t *testing.T) {
	s := capturedSession(t)
	if _, err := s.SignUp(SignupForm{Password: "çãé", ConfirmPassword: "çãé", AcceptTerms: true}, uuid.New(), now); err == nil {
		t.Fatal("three characters must be rejected even when they take six bytes")
	}
}

func TestSignupBuildsAccountFromLead(t *testing.T) {
	s := capturedSession(t)
	id := uuid.New()

	account, err := s.SignUp(SignupForm{Password: "abcd", ConfirmPassword: "abcd", AcceptTerms: true}, id, now)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	p := completeProfile()
	if account.ID != id ||
		account.CompanyName != p.CompanyName ||
		account.TaxID != p.TaxID ||
		account.Segment != p.Segment ||
		account.HeadcountBand != p.HeadcountBand ||
		account.ContactName != p.ContactName ||
		account.Email != p.Email {
		t.Fatalf("account does not mirror the lead: %+v", account)
	}
	if s.State != StateAuthenticated || s.Lead != nil || s.Profile != nil {
		t.Fatalf("lead was not consumed: %+v", s)
	}
	if _, err := s.CapturedLead(); !errors.Is(err, ErrAlreadyAuthenticated) {
		t.Fatalf("expected signup screen to redirect once authenticated, got %v", err)
	}
}

func TestSignupWithoutLead(t *testing.T) {
	s := NewSession(uuid.New(), now)
	if _, err := s.SignUp(SignupForm{Password: "abcd", ConfirmPassword: "abcd", AcceptTerms: true}, uuid.New(), now); !errors.Is(err, ErrMissingLead) {
		t.Fatalf("expected missing lead, got %v", err)
	}
	if s.State != StateAnonymous {
		t.Fatalf("state changed: %s", s.State)
	}
}

func TestAuthorizeRemembersDestinationForLogin(t *testing.T) {
	s := NewSession(uuid.New(), now)

	if err := s.Authorize(DocumentsPath, now); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if s.ReturnTo != DocumentsPath {
		t.Fatalf("expected %s to be remembered, got %q", DocumentsPath, s.ReturnTo)
	}

	dest, err := s.Login(Account{ID: uuid.New(), Email: "x@y.com"}, "", now)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if dest != DocumentsPath {
		t.Fatalf("expected redirect to %s, got %s", DocumentsPath, dest)
	}
	if s.ReturnTo != "" {
		t.Fatal("remembered destination must be cleared after use")
	}
	if err := s.Authorize(DocumentsPath, now); err != nil {
		t.Fatalf("authenticated session should pass, got %v", err)
	}
}

func TestLoginDestinations(t *testing.T) {
	tests := []struct {
		name      string
		returnTo  string
		requested string
		want      string
	}{
		{name: "default", want: DashboardPath},
		{name: "requested portal screen", requested: MessagesPath, want: MessagesPath},
		{name: "requested public screen ignored", requested: SignupPath, want: DashboardPath},
		{name: "remembered wins", returnTo: HelpPath, requested: MessagesPath, want: HelpPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(uuid.New(), now)
			s.ReturnTo = tt.returnTo
			got, err := s.Login(Account{ID: uuid.New()}, tt.requested, now)
			if err != nil {
				t.Fatalf("login: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestLoginDuringDiagnosisDropsPendingWork(t *testing.T) {
	s := NewSession(uuid.New(), now)
	_, _ = s.SubmitIntake(completeProfile(), now)
	_, _ = s.StartDiagnosis(now)

	if _, err := s.Login(Account{ID: uuid.New()}, "", now); err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.CompleteDiagnosis(now) {
		t.Fatal("late diagnosis must not touch an authenticated session")
	}
	if s.State != StateAuthenticated || s.Lead != nil {
		t.Fatalf("unexpected session after late resolution: %+v", s)
	}
}

func TestLogoutResetsSession(t *testing.T) {
	s := capturedSession(t)
	if _, err := s.SignUp(SignupForm{Password: "abcd", ConfirmPassword: "abcd", AcceptTerms: true}, uuid.New(), now); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if err := s.Logout(now); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if s.State != StateAnonymous || s.Account != nil || s.Lead != nil || s.Profile != nil {
		t.Fatalf("logout left data behind: %+v", s)
	}
	if _, err := s.CapturedLead(); !errors.Is(err, ErrMissingLead) {
		t.Fatalf("lead must not come back after logout, got %v", err)
	}
	if err := s.Logout(now); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized on second logout, got %v", err)
	}
}

func TestTransitionTable(t *testing.T) {
	if CanTransition(StateAnonymous, StateDiagnosed) {
		t.Fatal("anonymous must not jump to diagnosed")
	}
	if CanTransition(StateLeadCaptured, StateAnonymous) {
		t.Fatal("only logout goes back to anonymous")
	}
	for _, from := range []State{StateAnonymous, StateFormFilled, StateDiagnosing, StateDiagnosed, StateLeadCaptured} {
		if !CanTransition(from, StateAuthenticated) {
			t.Fatalf("login should be possible from %s", from)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := diagnosedSession(t)
	c := s.Clone()
	c.Profile.CompanyName = "changed"
	c.Lead.Diagnosis.Obligations[0].Name = "changed"

	if s.Profile.CompanyName == "changed" || s.Lead.Diagnosis.Obligations[0].Name == "changed" {
		t.Fatal("clone shares memory with the original")
	}
}
