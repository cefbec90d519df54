// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextSessionIDKey is the gin context key for the onboarding session ID.
	ContextSessionIDKey = "sessionID"
	// ContextAccountKey is the gin context key for the authenticated account snapshot.
	ContextAccountKey = "account"
)

// AccountInfo is the slice of the authenticated account that portal handlers
// may read. It is set by the portal gate; handlers never see the session.
type AccountInfo struct {
	ID          uuid.UUID
	CompanyName string
	TaxID       string
	Segment     string
	Headcount   string
	ContactName string
	Email       string
}

// Identity represents the caller behind a portal request.
// It lets handlers read account data without depending on the onboarding
// package or on how the gate resolved the session.
type Identity interface {
	// SessionID returns the onboarding session the request belongs to.
	SessionID() uuid.UUID
	// Account returns the authenticated account.
	Account() AccountInfo
	// IsAuthenticated returns true if the session carries an account.
	IsAuthenticated() bool
}

type identity struct {
	sessionID     uuid.UUID
	account       AccountInfo
	authenticated bool
}

func (i *identity) SessionID() uuid.UUID  { return i.sessionID }
func (i *identity) Account() AccountInfo  { return i.account }
func (i *identity) IsAuthenticated() bool { return i.authenticated }

// SetIdentity stores the session and account on the gin context.
func SetIdentity(c *gin.Context, sessionID uuid.UUID, account AccountInfo) {
	c.Set(ContextSessionIDKey, sessionID)
	c.Set(ContextAccountKey, account)
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if no account is present.
func GetIdentity(c *gin.Context) Identity {
	rawSession, _ := c.Get(ContextSessionIDKey)
	sessionID, _ := rawSession.(uuid.UUID)

	rawAccount, ok := c.Get(ContextAccountKey)
	if !ok {
		return &identity{sessionID: sessionID}
	}
	account, ok := rawAccount.(AccountInfo)
	if !ok || account.ID == uuid.Nil {
		return &identity{sessionID: sessionID}
	}

	return &identity{sessionID: sessionID, account: account, authenticated: true}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the caller is not authenticated, it aborts with 401 and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return nil
	}
	return id
}
