package journey

import "github.com/google/uuid"

// Step status values of the implementation timeline.
const (
	StepDone    = "done"
	StepPending = "pending"
	StepWaiting = "waiting"
)

type Status struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
}

type Consultant struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	WhatsApp string `json:"whatsapp"`
}

// Step is one milestone of the implementation journey.
type Step struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	Highlight bool   `json:"highlight,omitempty"`
}

type PendingItem struct {
	Title  string `json:"title"`
	Action string `json:"action"`
}

type RecentDocument struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Dashboard is the client home screen.
type Dashboard struct {
	Greeting             string           `json:"greeting"`
	Welcome              string           `json:"welcome"`
	LastAccess           string           `json:"lastAccess"`
	Status               Status           `json:"status"`
	Consultant           Consultant       `json:"consultant"`
	Timeline             []Step           `json:"timeline"`
	PendingItems         []PendingItem    `json:"pendingItems"`
	RecentDocuments      []RecentDocument `json:"recentDocuments"`
	UpcomingAppointments []string         `json:"upcomingAppointments"`
	UpcomingNote         string           `json:"upcomingNote,omitempty"`
}

// Help is the quick help screen.
type Help struct {
	Intro  string   `json:"intro"`
	Topics []string `json:"topics"`
}

// Me is the authenticated account as shown in the portal header.
type Me struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"companyName"`
	CNPJ        string    `json:"cnpj"`
	Segment     string    `json:"segment"`
	Headcount   string    `json:"headcountBand"`
	ContactName string    `json:"contactName"`
	Email       string    `json:"email"`
}
