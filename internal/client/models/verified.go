package models

import "time"

// VerifiedPass is a cached pass plus the expiry flag derived at read time.
// Expired is never stored.
type VerifiedPass struct {
	Pass
	Expired bool
}

// Verify derives the expiry flag against now. A pass whose ExpiresAt equals
// now is still valid.
func Verify(p Pass, now time.Time) VerifiedPass {
	return VerifiedPass{Pass: p, Expired: p.ExpiresAt.Before(now)}
}

// Decision is the guard-facing outcome for a verified pass.
type Decision string

const (
	DecisionGranted Decision = "granted"
	DecisionExpired Decision = "expired"
	DecisionRevoked Decision = "revoked"
	DecisionUnknown Decision = "unknown"
)

// Allowed reports whether the vehicle may pass: active and not expired.
func (v VerifiedPass) Allowed() bool {
	return v.Status == StatusActive && !v.Expired
}

// Decision maps the pass to a guard decision. The locally derived expiry is
// checked before the last known server status.
func (v VerifiedPass) Decision() Decision {
	switch {
	case v.Allowed():
		return DecisionGranted
	case v.Expired:
		return DecisionExpired
	case v.Status == StatusRevoked:
		return DecisionRevoked
	default:
		return DecisionUnknown
	}
}

// Title is the banner text shown for a decision.
func (d Decision) Title() string {
	switch d {
	case DecisionGranted:
		return "Access Granted"
	case DecisionExpired:
		return "Denied: Expired"
	case DecisionRevoked:
		return "Denied: Revoked"
	default:
		return "Status Unknown"
	}
}

// Message is the one-line explanation shown under the title.
func (d Decision) Message() string {
	switch d {
	case DecisionGranted:
		return "This pass is valid for entry."
	case DecisionExpired:
		return "This pass has expired."
	case DecisionRevoked:
		return "This pass has been revoked."
	default:
		return "Pass status could not be determined."
	}
}
