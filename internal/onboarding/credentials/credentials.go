// Package credentials verifies login credentials and records the ones
// chosen at signup.
package credentials

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"sst_portal_backend/internal/catalog"
	"sst_portal_backend/internal/onboarding/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

// Verifier resolves a credential pair to an account.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (domain.Account, error)
}

// Registrar records the credential chosen at signup.
type Registrar interface {
	Register(ctx context.Context, account domain.Account, password string) error
}

// Store is both halves of credential handling.
type Store interface {
	Verifier
	Registrar
}

// DemoAccount is the fixed account used by the accept-any mode.
func DemoAccount(email string, now time.Time) domain.Account {
	return domain.Account{
		ID:            uuid.NewSHA1(uuid.NameSpaceURL, []byte("sst-portal-demo:"+strings.ToLower(strings.TrimSpace(email)))),
		CompanyName:   "Metalúrgica ABC Ltda",
		TaxID:         "12.345.678/0001-90",
		Segment:       catalog.SegmentMetallurgy,
		HeadcountBand: catalog.Band100To249,
		ContactName:   "João Gestor",
		Email:         strings.TrimSpace(email),
		CreatedAt:     now,
	}
}

// AcceptAny accepts every credential pair and answers with the demo account
// for the submitted email. Signup credentials are discarded.
type AcceptAny struct {
	now func() time.Time
}

// NewAcceptAny creates the demo verifier.
func NewAcceptAny() *AcceptAny {
	return &AcceptAny{now: time.Now}
}

func (a *AcceptAny) Verify(_ context.Context, email, _ string) (domain.Account, error) {
	return DemoAccount(email, a.now()), nil
}

func (a *AcceptAny) Register(context.Context, domain.Account, string) error {
	return nil
}

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

type registration struct {
	account domain.Account
	hash    []byte
}

// Registered checks logins against bcrypt hashes recorded at signup. The
// registry lives in process memory. Registering the same account again
// replaces its hash, so a retried signup is harmless.
type Registered struct {
	mu    sync.RWMutex
	users map[string]registration
	cost  int
}

// NewRegistered creates an empty registry.
func NewRegistered() *Registered {
	return &Registered{users: make(map[string]registration), cost: bcrypt.DefaultCost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *Registered) Register(_ context.Context, account domain.Account, password string) error {
	key := normalizeEmail(account.Email)
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, exists := r.users[key]; exists && existing.account.ID != account.ID {
		return ErrEmailTaken
	}
	r.users[key] = registration{account: account, hash: hash}
	return nil
}

func (r *Registered) Verify(_ context.Context, email, password string) (domain.Account, error) {
	r.mu.RLock()
	reg, ok := r.users[normalizeEmail(email)]
	r.mu.RUnlock()
	if !ok {
		return domain.Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(reg.hash, []byte(password)); err != nil {
		return domain.Account{}, ErrInvalidCredentials
	}
	return reg.account, nil
}

var (
	_ Store = (*AcceptAny)(nil)
	_ Store = (*Registered)(nil)
)
