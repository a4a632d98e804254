package models

import "time"

// InvitationStatus tracks the lifecycle of an invitation token.
type InvitationStatus string

const (
	InvitationSent     InvitationStatus = "sent"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// Invitation is a single-use, time-limited registration credential. Expiry is
// checked lazily against ExpiresAt; the stored status only moves to expired
// when the maintenance sweeper runs.
type Invitation struct {
	BaseModel

	Email     string           `gorm:"not null;index" json:"email"`
	Token     string           `gorm:"uniqueIndex;not null" json:"token"`
	Status    InvitationStatus `gorm:"not null;default:sent" json:"status"`
	ExpiresAt time.Time        `gorm:"index" json:"expires_at"`
}

// Lapsed reports whether the invitation expiry has passed at the given time.
// The token is valid strictly before ExpiresAt, matching the sweep query.
func (i *Invitation) Lapsed(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
