// Package common contains shared constants and sentinel errors used across
// GateGuard components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Role names carried in access tokens and user records.
const (
	RoleAdmin = "admin"
	RoleGuard = "guard"
)
