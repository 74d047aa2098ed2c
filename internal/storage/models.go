package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Follow-up statuses. A row starts as scheduled and always ends in a
// terminal status; sending marks a row claimed by a worker that is
// currently delivering it.
const (
	FollowUpScheduled = "scheduled"
	FollowUpSending   = "sending"
	FollowUpSent      = "sent"
	FollowUpFailed    = "failed"
	FollowUpCanceled  = "canceled"
	FollowUpResponded = "responded"
	FollowUpSkipped   = "skipped"
)

type User struct {
	ID              int64
	Username        string
	FirstName       string
	LastName        string
	JoinedAt        time.Time
	LastInteraction time.Time
	Purchased       bool
	Campaign        string
}

type Interaction struct {
	ID          string
	UserID      int64
	Kind        string
	PayloadJSON string // JSON object stored as text
	CreatedAt   time.Time
}

type ServiceView struct {
	UserID     int64
	Service    string
	ViewCount  int
	LastViewed time.Time
}

type Purchase struct {
	ID          string
	UserID      int64
	PlanCode    string
	Price       string
	PurchasedAt time.Time
}

type FollowUp struct {
	ID          string
	UserID      int64
	Service     string
	ScheduledAt time.Time
	Status      string
	Response    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Stats is the aggregate snapshot served to operators.
type Stats struct {
	Users        int
	Interactions int
	Purchases    int
	FollowUps    map[string]int // status -> count
	Campaigns    map[string]int // campaign -> count, empty campaign excluded
}

// UserDetail bundles everything recorded about one user.
type UserDetail struct {
	User      User
	Views     []ServiceView
	Purchases []Purchase
	FollowUps []FollowUp
}

// UserExport is one row of the operator CSV export.
type UserExport struct {
	User
	PurchaseCount int
}
