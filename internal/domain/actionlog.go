package domain

import "time"

// ActionType classifies an audit entry.
type ActionType string

const (
	ActionCreate ActionType = "CREATE"
	ActionUpdate ActionType = "UPDATE"
	ActionDelete ActionType = "DELETE"
	ActionView   ActionType = "VIEW"
	ActionExport ActionType = "EXPORT"
	ActionImport ActionType = "IMPORT"
	ActionLogin  ActionType = "LOGIN"
	ActionLogout ActionType = "LOGOUT"
)

// ActionLog is one append-only audit entry. Entries are never updated or
// deleted by application flows.
type ActionLog struct {
	ID          uint       `json:"id"`
	UserID      *uint      `json:"user_id"`
	ActionType  ActionType `json:"action_type"`
	ModelName   string     `json:"model_name"`
	ObjectID    *uint      `json:"object_id"`
	Description string     `json:"description"`
	IPAddress   string     `json:"ip_address"`
	UserAgent   string     `json:"user_agent"`
	CreatedAt   time.Time  `json:"created_at"`
}
