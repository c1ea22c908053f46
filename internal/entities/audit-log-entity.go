package entities

import "time"

// AuditLog is an immutable note describing a completed action. Rows are
// append-only; nothing in the system updates or deletes them.
type AuditLog struct {
	ID         uint64
	UserID     *uint64
	Action     string
	EntityType string
	EntityID   *uint64
	Details    map[string]interface{}
	IPAddress  *string
	UserAgent  *string
	CreatedAt  time.Time
}
