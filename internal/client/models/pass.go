// Package models defines the pass records held in the gate device cache.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PassType tags the details variant of a pass.
type PassType string

const (
	PassTypeStandard PassType = "standard"
	PassTypeVisitor  PassType = "visitor"
)

// Status is the server-side lifecycle state as of the last sync.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

var ErrUnknownPassType = errors.New("unknown pass type")

// Details is the type-specific part of a pass.
type Details interface {
	Kind() PassType
}

// StandardDetails describes a vehicle owned by a registered company.
type StandardDetails struct {
	OwnerName    string `json:"ownerName" validate:"required"`
	OwnerCompany string `json:"ownerCompany"`
	Serial       string `json:"serial"`
}

func (StandardDetails) Kind() PassType { return PassTypeStandard }

// VisitorDetails describes a one-off visit.
type VisitorDetails struct {
	VisitorName   string `json:"visitorName" validate:"required"`
	PersonToVisit string `json:"personToVisit"`
	Purpose       string `json:"purpose"`
}

func (VisitorDetails) Kind() PassType { return PassTypeVisitor }

// Pass is one cached pass record.
type Pass struct {
	ID               string    `validate:"required"`
	Type             PassType  `validate:"oneof=standard visitor"`
	PlateAlpha       string    `validate:"required,plate_alpha"`
	PlateNum         string    `validate:"required,plate_num"`
	Status           Status    `validate:"oneof=active expired revoked"`
	ExpiresAt        time.Time `validate:"required"`
	CreatedAt        time.Time
	Location         string
	CreatedBy        string
	CreatedByName    string
	CreatedByCompany string
	Details          Details `validate:"required"`
}

// MarshalDetails encodes the details variant for storage.
func MarshalDetails(d Details) ([]byte, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

// UnmarshalDetails decodes stored details according to the pass type tag.
func UnmarshalDetails(t PassType, b []byte) (Details, error) {
	switch t {
	case PassTypeStandard:
		var v StandardDetails
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, err
		}
		return v, nil
	case PassTypeVisitor:
		var v VisitorDetails
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPassType, t)
	}
}

// HolderName is the person the pass was issued to, whatever its type.
func (p Pass) HolderName() string {
	switch d := p.Details.(type) {
	case StandardDetails:
		return d.OwnerName
	case VisitorDetails:
		return d.VisitorName
	default:
		return ""
	}
}

// Plate renders the plate as printed, e.g. "ABC 1234".
func (p Pass) Plate() string {
	return p.PlateAlpha + " " + p.PlateNum
}
