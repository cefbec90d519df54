// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"sst_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Onboarding Domain Events
// =============================================================================

// DiagnosisCompleted is published when a session's pending diagnosis resolves.
type DiagnosisCompleted struct {
	BaseEvent
	SessionID   uuid.UUID `json:"sessionId"`
	CompanyName string    `json:"companyName"`
	Segment     string    `json:"segment"`
	Obligations []string  `json:"obligations"`
}

func (e DiagnosisCompleted) EventName() string { return "onboarding.diagnosis.completed" }

// LeadCaptured is published when a prospect accepts the proposal.
type LeadCaptured struct {
	BaseEvent
	SessionID   uuid.UUID `json:"sessionId"`
	CompanyName string    `json:"companyName"`
	ContactName string    `json:"contactName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	City        string    `json:"city"`
	Obligations []string  `json:"obligations"`
	MonthlyFee  string    `json:"monthlyFee"`
	SetupFee    string    `json:"setupFee"`
}

func (e LeadCaptured) EventName() string { return "onboarding.lead.captured" }

// AccountCreated is published when signup converts a lead into an account.
type AccountCreated struct {
	BaseEvent
	SessionID   uuid.UUID `json:"sessionId"`
	AccountID   uuid.UUID `json:"accountId"`
	CompanyName string    `json:"companyName"`
	ContactName string    `json:"contactName"`
	Email       string    `json:"email"`
}

func (e AccountCreated) EventName() string { return "onboarding.account.created" }

// AccountLoggedIn is published after a successful login.
type AccountLoggedIn struct {
	BaseEvent
	SessionID uuid.UUID `json:"sessionId"`
	AccountID uuid.UUID `json:"accountId"`
	Email     string    `json:"email"`
}

func (e AccountLoggedIn) EventName() string { return "onboarding.account.logged_in" }

// AccountLoggedOut is published when a session is torn down by logout.
type AccountLoggedOut struct {
	BaseEvent
	SessionID uuid.UUID `json:"sessionId"`
	AccountID uuid.UUID `json:"accountId"`
}

func (e AccountLoggedOut) EventName() string { return "onboarding.account.logged_out" }

// =============================================================================
// Portal Domain Events
// =============================================================================

// MessageSent is published when a client writes in a support thread.
type MessageSent struct {
	BaseEvent
	AccountID uuid.UUID `json:"accountId"`
	ThreadID  string    `json:"threadId"`
	Text      string    `json:"text"`
}

func (e MessageSent) EventName() string { return "portal.message.sent" }

// AppointmentRequested is published when a client asks for a new exam slot.
type AppointmentRequested struct {
	BaseEvent
	AccountID  uuid.UUID `json:"accountId"`
	WorkerName string    `json:"workerName"`
	ExamType   string    `json:"examType"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Unit       string    `json:"unit"`
}

func (e AppointmentRequested) EventName() string { return "portal.appointment.requested" }

// DocumentsUploaded is published when a client registers uploaded files.
type DocumentsUploaded struct {
	BaseEvent
	AccountID uuid.UUID `json:"accountId"`
	FileNames []string  `json:"fileNames"`
}

func (e DocumentsUploaded) EventName() string { return "portal.documents.uploaded" }
