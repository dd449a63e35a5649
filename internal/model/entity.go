package model

import "time"

// Priority levels shared by todos and minute tracker entries.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// User is a team account. Every other entity carries its id as userId.
// Password holds a bcrypt hash; API responses use Session instead.
type User struct {
	ID        string    `json:"id"`
	TeamName  string    `json:"teamName"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegistryEntry records one member's attendance for one calendar date.
// The id is derived as "<date>-<memberId>" so repeated marks land on the
// same document.
type RegistryEntry struct {
	ID         string `json:"id"`
	MemberID   string `json:"memberId"`
	MemberName string `json:"memberName"`
	Date       string `json:"date"`
	MarkIn     string `json:"markIn,omitempty"`
	MarkOut    string `json:"markOut,omitempty"`
	UserID     string `json:"userId"`
}

type TodoItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	DueDate     string    `json:"dueDate,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      string    `json:"userId"`
}

// MinuteTrackerEntry is one tracked day. Tasks maps a member id to an
// ordered list of free-text task strings; every listed member keeps at
// least one slot.
type MinuteTrackerEntry struct {
	ID               string              `json:"id"`
	Date             string              `json:"date"`
	Members          []string            `json:"members"`
	Tasks            map[string][]string `json:"tasks"`
	Priority         Priority            `json:"priority"`
	EstimatedMinutes int                 `json:"estimatedMinutes"`
	UserID           string              `json:"userId"`
	CreatedAt        time.Time           `json:"createdAt"`
}
