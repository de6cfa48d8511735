package domain

import "time"

// AuthAction identifies the kind of authentication event being recorded.
type AuthAction string

const (
	ActionLoginSuccess AuthAction = "LOGIN_SUCCESS"
	ActionLoginFailure AuthAction = "LOGIN_FAILURE"
	ActionLogout       AuthAction = "LOGOUT"
)

// AuthLog is an immutable audit record of a single authentication event.
// Entries are written exactly once per login/logout attempt and never
// mutated afterwards.
type AuthLog struct {
	ID        string     `json:"id"`
	AccountID string     `json:"account_id"`
	Action    AuthAction `json:"action"`
	IPAddress string     `json:"ip_address"`
	UserAgent string     `json:"user_agent,omitempty"`
	Location  string     `json:"location,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ClientInfo carries the request metadata the orchestrator records in audit
// entries. It is passed explicitly so the core never reads ambient request
// state.
type ClientInfo struct {
	IP        string
	UserAgent string
	Location  string
}
