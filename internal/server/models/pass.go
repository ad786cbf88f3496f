package models

import "time"

const (
	PassTypeStandard = "standard"
	PassTypeVisitor  = "visitor"
)

// Stored statuses. StatusExpired is never written: it is derived from
// ExpiresAt when passes are read back.
const (
	StatusActive  = "active"
	StatusExpired = "expired"
	StatusRevoked = "revoked"
)

type Pass struct {
	ID         string
	Type       string
	PlateAlpha string
	PlateNum   string
	Location   string
	Status     string
	ExpiresAt  time.Time
	CreatedAt  time.Time
	RevokedAt  *time.Time

	CreatedBy        string
	CreatedByName    string
	CreatedByCompany string

	OwnerName    string
	OwnerCompany string
	Serial       string

	VisitorName   string
	PersonToVisit string
	Purpose       string
}

// EffectiveStatus reports the status a reader should see at now: an active
// pass whose expiry lies before now is expired.
func (p Pass) EffectiveStatus(now time.Time) string {
	if p.Status == StatusActive && p.ExpiresAt.Before(now) {
		return StatusExpired
	}
	return p.Status
}
