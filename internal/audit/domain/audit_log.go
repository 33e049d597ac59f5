// Package domain defines the audit log entry.
package domain

import "time"

// AuditLog records a security-relevant action. UserID may be empty for
// unauthenticated actions such as registration.
type AuditLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource"`
	IP        string    `json:"ip"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
