package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"sst_portal_backend/internal/catalog"
	"sst_portal_backend/internal/events"
	"sst_portal_backend/internal/onboarding/credentials"
	"sst_portal_backend/internal/onboarding/domain"
	"sst_portal_backend/internal/onboarding/repository"
	"sst_portal_backend/internal/onboarding/token"
	"sst_portal_backend/internal/onboarding/transport"
	"sst_portal_backend/platform/apperr"
	"sst_portal_backend/platform/logger"
	"sst_portal_backend/platform/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.EventName())
	}
	return out
}

type manualRunner struct {
	scheduled []uuid.UUID
	err       error
}

func (r *manualRunner) Schedule(_ context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.scheduled = append(r.scheduled, id)
	return nil
}

type fixture struct {
	svc   *Service
	bus   *recordingBus
	store *repository.InMemory
	m     *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewInMemory(time.Hour)
	bus := &recordingBus{}
	svc := New(store, credentials.NewAcceptAny(), token.NewIssuer("test-secret", time.Hour), bus, logger.Discard())
	m := metrics.New()
	svc.SetMetrics(m)
	return &fixture{svc: svc, bus: bus, store: store, m: m}
}

func (f *fixture) start(t *testing.T) uuid.UUID {
	t.Helper()
	resp, err := f.svc.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a session token")
	}
	return resp.Session.SessionID
}

func intake() transport.IntakeRequest {
	return transport.IntakeRequest{
		FullName:      "Ana Souza",
		Email:         "ana@abc.com.br",
		Phone:         "(71) 99999-0000",
		CompanyName:   "Metalúrgica ABC Ltda",
		CNPJ:          "12.345.678/0001-90",
		Role:          "Gerente de RH",
		City:          "Salvador",
		Segment:       string(catalog.SegmentMetallurgy),
		HeadcountBand: string(catalog.Band50To99),
		HasMachinery:  true,
	}
}

func requireKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	appErr, ok := apperr.As(err)
	if !ok {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	if appErr.Kind != kind {
		t.Fatalf("expected kind %d, got %d (%v)", kind, appErr.Kind, err)
	}
	return appErr
}

func TestInlineDiagnosisReachesDiagnosed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.start(t)

	resp, err := f.svc.SubmitIntake(ctx, id, intake())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.State != domain.StateDiagnosed || resp.Pending {
		t.Fatalf("expected diagnosed without pending work, got %+v", resp)
	}
	if resp.Profile == nil || resp.Profile.Phone != "+5571999990000" {
		t.Fatalf("expected normalised phone, got %+v", resp.Profile)
	}

	result, err := f.svc.Diagnosis(ctx, id)
	if err != nil {
		t.Fatalf("diagnosis: %v", err)
	}
	if result.Pending || result.Diagnosis == nil {
		t.Fatalf("expected a result, got %+v", result)
	}
	codes := result.Diagnosis.Codes()
	if codes[0] != catalog.NR01 {
		t.Fatalf("expected NR-01 first, got %v", codes)
	}

	if got := testutil.ToFloat64(f.m.DiagnosesCompleted); got != 1 {
		t.Fatalf("expected 1 completed diagnosis, got %v", got)
	}
	if names := f.bus.names(); len(names) != 1 || names[0] != "onboarding.diagnosis.completed" {
		t.Fatalf("unexpected events %v", names)
	}
}

func TestIncompleteIntakeIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.start(t)

	req := intake()
	req.CNPJ = "  "
	req.City = ""
	_, err := f.svc.SubmitIntake(ctx, id, req)
	appErr := requireKind(t, err, apperr.KindValidation)
	if appErr.Message != domain.MsgIntakeIncomplete {
		t.Fatalf("unexpected message %q", appErr.Message)
	}

	sess, err := f.svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.State != domain.StateAnonymous || sess.Profile != nil {
		t.Fatalf("session should be untouched, got %+v", sess)
	}
}

func TestScheduledDiagnosisStaysPendingUntilCompleted(t *testing.T) {
	f := newFixture(t)
	runner := &manualRunner{}
	f.svc.SetRunner(runner)
	ctx := context.Background()
	id := f.start(t)

	resp, err := f.svc.SubmitIntake(ctx, id, intake())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.State != domain.StateDiagnosing || !resp.Pending {
		t.Fatalf("expected pending diagnosis, got %+v", resp)
	}

	// A second submit while pending schedules nothing new.
	if _, err := f.svc.SubmitIntake(ctx, id, intake()); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if len(runner.scheduled) != 1 {
		t.Fatalf("expected one scheduled diagnosis, got %d", len(runner.scheduled))
	}

	pending, err := f.svc.Diagnosis(ctx, id)
	if err != nil {
		t.Fatalf("diagnosis: %v", err)
	}
	if !pending.Pending || pending.Diagnosis != nil {
		t.Fatalf("expected pending response, got %+v", pending)
	}

	if _, err := f.svc.AcceptProposal(ctx, id); err == nil {
		t.Fatal("accepting while pending should fail")
	}

	if err := f.svc.CompleteDiagnosis(ctx, id); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := f.svc.CompleteDiagnosis(ctx, id); err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if got := testutil.ToFloat64(f.m.DiagnosesCompleted); got != 1 {
		t.Fatalf("duplicate completion must not count twice, got %v", got)
	}
}

func TestSchedulingFailureFallsBackInline(t *testing.T) {
	f := newFixture(t)
	f.svc.SetRunner(&manualRunner{err: errors.New("queue down")})
	id := f.start(t)

	resp, err := f.svc.SubmitIntake(context.Background(), id, intake())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.State != domain.StateDiagnosed {
		t.Fatalf("expected inline resolution, got %s", resp.State)
	}
}

func TestCompleteDiagnosisIgnoresMissingSession(t *testing.T) {
	f := newFixture(t)
	if err := f.svc.CompleteDiagnosis(context.Background(), uuid.New()); err != nil {
		t.Fatalf("expected nil for a vanished session, got %v", err)
	}
}

func TestFullOnboardingFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.start(t)

	if _, err := f.svc.SubmitIntake(ctx, id, intake()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	accepted, err := f.svc.AcceptProposal(ctx, id)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.State != domain.StateLeadCaptured || accepted.RedirectTo != domain.SignupPath {
		t.Fatalf("unexpected accept response %+v", accepted)
	}
	if _, err := f.svc.AcceptProposal(ctx, id); err != nil {
		t.Fatalf("second accept should be a no-op: %v", err)
	}

	screen, err := f.svc.SignupScreen(ctx, id)
	if err != nil {
		t.Fatalf("signup screen: %v", err)
	}
	if screen.CompanyName != "Metalúrgica ABC Ltda" || screen.Location != "Salvador / BA" {
		t.Fatalf("unexpected signup summary %+v", screen)
	}

	_, err = f.svc.SignUp(ctx, id, transport.SignUpRequest{Password: "abc", ConfirmPassword: "abc", AcceptTerms: true})
	appErr := requireKind(t, err, apperr.KindValidation)
	if appErr.Message != domain.MsgPasswordTooShort {
		t.Fatalf("unexpected message %q", appErr.Message)
	}

	signed, err := f.svc.SignUp(ctx, id, transport.SignUpRequest{Password: "abcd", ConfirmPassword: "abcd", AcceptTerms: true})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if signed.RedirectTo != domain.DashboardPath || signed.Account.Email != "ana@abc.com.br" {
		t.Fatalf("unexpected signup response %+v", signed)
	}

	account, err := f.svc.Authorize(ctx, id, domain.DocumentsPath)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if account.ID != signed.Account.ID {
		t.Fatal("authorize should return the signed up account")
	}

	want := []string{"onboarding.diagnosis.completed", "onboarding.lead.captured", "onboarding.account.created"}
	got := f.bus.names()
	if len(got) != len(want) {
		t.Fatalf("expected events %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, got)
		}
	}
	if testutil.ToFloat64(f.m.LeadsCaptured) != 1 || testutil.ToFloat64(f.m.AccountsCreated) != 1 {
		t.Fatal("expected lead and account counters to be incremented once")
	}
}

func TestSignupWithoutLeadRedirectsToIntake(t *testing.T) {
	f := newFixture(t)
	id := f.start(t)

	_, err := f.svc.SignupScreen(context.Background(), id)
	appErr := requireKind(t, err, apperr.KindConflict)
	if appErr.Redirect == nil || appErr.Redirect.To != domain.IntakePath {
		t.Fatalf("expected redirect to intake, got %+v", appErr.Redirect)
	}
	if appErr.Message != domain.MsgMissingLead {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
}

func TestGateRemembersScreenForLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.start(t)

	_, err := f.svc.Authorize(ctx, id, domain.AppointmentsPath)
	appErr := requireKind(t, err, apperr.KindUnauthorized)
	if appErr.HTTPStatus() != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", appErr.HTTPStatus())
	}
	if appErr.Redirect == nil || appErr.Redirect.To != domain.LoginPath || appErr.Redirect.From != domain.AppointmentsPath {
		t.Fatalf("unexpected redirect %+v", appErr.Redirect)
	}

	login, err := f.svc.Login(ctx, id, transport.LoginRequest{Email: "gestor@abc.com.br", Password: "x"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.RedirectTo != domain.AppointmentsPath {
		t.Fatalf("expected remembered destination, got %q", login.RedirectTo)
	}
	if login.Account.CompanyName != "Metalúrgica ABC Ltda" {
		t.Fatalf("expected demo account, got %+v", login.Account)
	}

	_, err = f.svc.Login(ctx, id, transport.LoginRequest{Email: "gestor@abc.com.br"})
	appErr = requireKind(t, err, apperr.KindConflict)
	if appErr.Redirect == nil || appErr.Redirect.To != domain.DashboardPath {
		t.Fatalf("expected redirect to dashboard, got %+v", appErr.Redirect)
	}
}

func TestLoginWithRegisteredCredentials(t *testing.T) {
	store := repository.NewInMemory(time.Hour)
	svc := New(store, credentials.NewRegistered(), token.NewIssuer("test-secret", time.Hour), &recordingBus{}, logger.Discard())
	ctx := context.Background()

	started, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	_, err = svc.Login(ctx, started.Session.SessionID, transport.LoginRequest{Email: "nobody@abc.com.br", Password: "abcd"})
	requireKind(t, err, apperr.KindUnauthorized)
}

// failOnceStore runs the mutation of the next Update and then reports a
// write failure, as a Redis transaction that cannot commit would.
type failOnceStore struct {
	repository.SessionStore
	fail bool
}

func (s *failOnceStore) Update(ctx context.Context, id uuid.UUID, fn repository.MutateFunc) (*domain.Session, error) {
	if s.fail {
		s.fail = false
		sess, err := s.SessionStore.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(sess); err != nil {
			return nil, err
		}
		return nil, errors.New("write failed")
	}
	return s.SessionStore.Update(ctx, id, fn)
}

func newRegisteredService(store repository.SessionStore) *Service {
	return New(store, credentials.NewRegistered(), token.NewIssuer("test-secret", time.Hour), &recordingBus{}, logger.Discard())
}

func captureLead(t *testing.T, svc *Service) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	started, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := started.Session.SessionID
	if _, err := svc.SubmitIntake(ctx, id, intake()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.AcceptProposal(ctx, id); err != nil {
		t.Fatalf("accept: %v", err)
	}
	return id
}

func TestRegisteredSignupThenLogin(t *testing.T) {
	svc := newRegisteredService(repository.NewInMemory(time.Hour))
	ctx := context.Background()
	id := captureLead(t, svc)

	signed, err := svc.SignUp(ctx, id, transport.SignUpRequest{Password: "s3nha-forte", ConfirmPassword: "s3nha-forte", AcceptTerms: true})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	out, err := svc.Logout(ctx, id)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}

	_, err = svc.Login(ctx, out.SessionID, transport.LoginRequest{Email: "ana@abc.com.br", Password: "wrong"})
	requireKind(t, err, apperr.KindUnauthorized)

	login, err := svc.Login(ctx, out.SessionID, transport.LoginRequest{Email: "ANA@abc.com.br", Password: "s3nha-forte"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Account.ID != signed.Account.ID || login.Account.CompanyName != "Metalúrgica ABC Ltda" {
		t.Fatalf("expected the signed up account, got %+v", login.Account)
	}
	if login.RedirectTo != domain.DashboardPath {
		t.Fatalf("expected dashboard redirect, got %q", login.RedirectTo)
	}
}

func TestSignupRejectsPasswordBeyondBcryptLimit(t *testing.T) {
	svc := newRegisteredService(repository.NewInMemory(time.Hour))
	ctx := context.Background()
	id := captureLead(t, svc)

	tests := []struct {
		name     string
		password string
	}{
		{name: "ascii", password: strings.Repeat("a", 100)},
		// 40 runes, 80 bytes
		{name: "multibyte", password: strings.Repeat("ç", 40)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, id, transport.SignUpRequest{Password: tt.password, ConfirmPassword: tt.password, AcceptTerms: true})
			appErr := requireKind(t, err, apperr.KindValidation)
			if appErr.HTTPStatus() != http.StatusBadRequest || appErr.Message != domain.MsgPasswordTooLong {
				t.Fatalf("unexpected error %d %q", appErr.HTTPStatus(), appErr.Message)
			}
		})
	}

	sess, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.State != domain.StateLeadCaptured {
		t.Fatalf("rejected signup must keep the lead, got %s", sess.State)
	}

	longest := strings.Repeat("a", domain.MaxPasswordBytes)
	if _, err := svc.SignUp(ctx, id, transport.SignUpRequest{Password: longest, ConfirmPassword: longest, AcceptTerms: true}); err != nil {
		t.Fatalf("a %d byte password must be accepted: %v", domain.MaxPasswordBytes, err)
	}
}

func TestCredentialLengthErrorMapsToValidation(t *testing.T) {
	f := newFixture(t)
	appErr := requireKind(t, f.svc.mapError(credentials.ErrPasswordTooLong, ""), apperr.KindValidation)
	if appErr.Message != domain.MsgPasswordTooLong {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
}

func TestSignupRetryAfterFailedWriteReusesAccount(t *testing.T) {
	store := &failOnceStore{SessionStore: repository.NewInMemory(time.Hour)}
	svc := newRegisteredService(store)
	ctx := context.Background()
	id := captureLead(t, svc)

	req := transport.SignUpRequest{Password: "abcd", ConfirmPassword: "abcd", AcceptTerms: true}
	store.fail = true
	if _, err := svc.SignUp(ctx, id, req); err == nil {
		t.Fatal("expected the failed write to surface")
	}

	signed, err := svc.SignUp(ctx, id, req)
	if err != nil {
		t.Fatalf("retried signup must not report the email as taken: %v", err)
	}
	if signed.Account.ID != accountIDFor(id) {
		t.Fatal("account id should be derived from the session")
	}
}

func TestLogoutIssuesFreshSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.start(t)

	if _, err := f.svc.Logout(ctx, id); err == nil {
		t.Fatal("logout without an account should fail")
	}

	if _, err := f.svc.Login(ctx, id, transport.LoginRequest{Email: "gestor@abc.com.br"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	out, err := f.svc.Logout(ctx, id)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if out.SessionID == id || out.Token == "" || out.RedirectTo != domain.LoginPath {
		t.Fatalf("unexpected logout response %+v", out)
	}
	if _, err := f.store.Get(ctx, id); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("old session should be gone, got %v", err)
	}

	fresh, err := f.svc.Get(ctx, out.SessionID)
	if err != nil {
		t.Fatalf("get fresh: %v", err)
	}
	if fresh.State != domain.StateAnonymous || fresh.Account != nil {
		t.Fatalf("fresh session should be anonymous, got %+v", fresh)
	}
}

func TestResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	started, err := f.svc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	id, ok := f.svc.Resolve(ctx, started.Token)
	if !ok || id != started.Session.SessionID {
		t.Fatalf("expected token to resolve to %s", started.Session.SessionID)
	}
	if _, ok := f.svc.Resolve(ctx, "garbage"); ok {
		t.Fatal("garbage token should not resolve")
	}
	if _, ok := f.svc.Resolve(ctx, ""); ok {
		t.Fatal("empty token should not resolve")
	}

	if err := f.store.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := f.svc.Resolve(ctx, started.Token); ok {
		t.Fatal("token of a deleted session should not resolve")
	}
}

func TestInProcessRunnerCompletesDiagnosis(t *testing.T) {
	f := newFixture(t)
	runner := NewInProcessRunner(10*time.Millisecond, logger.Discard())
	runner.Bind(f.svc.CompleteDiagnosis)
	f.svc.SetRunner(runner)
	ctx := context.Background()
	id := f.start(t)

	if _, err := f.svc.SubmitIntake(ctx, id, intake()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	runner.Wait()

	resp, err := f.svc.Diagnosis(ctx, id)
	if err != nil {
		t.Fatalf("diagnosis: %v", err)
	}
	if resp.Pending || resp.State != domain.StateDiagnosed {
		t.Fatalf("expected resolved diagnosis, got %+v", resp)
	}
}

func TestUnboundRunnerFails(t *testing.T) {
	runner := NewInProcessRunner(0, logger.Discard())
	if err := runner.Schedule(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error from unbound runner")
	}
}
