package model

import "time"

type RegisterRequest struct {
	TeamName        string `json:"teamName" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	TeamName string `json:"teamName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session is the authenticated team account with the password stripped.
type Session struct {
	ID        string    `json:"id"`
	TeamName  string    `json:"teamName"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  Session `json:"user"`
}

func (u *User) Session() Session {
	return Session{ID: u.ID, TeamName: u.TeamName, CreatedAt: u.CreatedAt}
}

type MemberRequest struct {
	Name string `json:"name" binding:"required"`
}

// MarkRequest marks a member in or out. Date defaults to today and Time
// to the current clock when omitted; an explicit Time lets the client
// replay an optimistic update.
type MarkRequest struct {
	MemberID   string `json:"memberId" binding:"required"`
	MemberName string `json:"memberName"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

type TodoRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"dueDate"`
}

// MinuteCreateRequest opens a tracked day for the selected members.
// Template, when set, seeds every member's task list.
type MinuteCreateRequest struct {
	Date             string   `json:"date"`
	Members          []string `json:"members" binding:"required"`
	Template         string   `json:"template"`
	Priority         Priority `json:"priority"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
}

type MinuteUpdateRequest struct {
	Date             string              `json:"date"`
	Members          []string            `json:"members"`
	Tasks            map[string][]string `json:"tasks"`
	Priority         Priority            `json:"priority"`
	EstimatedMinutes int                 `json:"estimatedMinutes"`
}

type TaskRequest struct {
	Value string `json:"value"`
}
