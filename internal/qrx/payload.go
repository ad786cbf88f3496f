// Package qrx builds and parses the JSON payload printed in pass QR codes.
//
// A payload looks like
//
//	{"v":1,"pid":"<pass id>","pa":"ABC","pn":"1234","exp":1767225600}
//
// where exp is the expiry in Unix seconds. The expiry in the code is a hint
// only: the cached record is authoritative at the gate.
package qrx

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/validation"
)

// Version is the only payload version understood.
const Version = 1

var ErrInvalidPayload = errors.New("invalid QR payload")

// Payload is a decoded QR code. Only v and pid are required; the plate and
// expiry hints are checked when present.
type Payload struct {
	V          int    `json:"v" validate:"eq=1"`
	PassID     string `json:"pid" validate:"required"`
	PlateAlpha string `json:"pa,omitempty" validate:"omitempty,plate_alpha"`
	PlateNum   string `json:"pn,omitempty" validate:"omitempty,plate_num"`
	Exp        int64  `json:"exp,omitempty" validate:"omitempty,gt=0"`
}

// Build returns the payload for a pass.
func Build(passID, plateAlpha, plateNum string, expiresAt time.Time) Payload {
	return Payload{
		V:          Version,
		PassID:     passID,
		PlateAlpha: validation.NormalizePlateAlpha(plateAlpha),
		PlateNum:   plateNum,
		Exp:        expiresAt.Unix(),
	}
}

// Encode renders p as the compact JSON text put into the QR image.
func (p Payload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// HasExpiry reports whether the code carries an expiry hint.
func (p Payload) HasExpiry() bool {
	return p.Exp != 0
}

// ExpiresAt returns the expiry hint as UTC time, or the zero time when the
// code has none.
func (p Payload) ExpiresAt() time.Time {
	if !p.HasExpiry() {
		return time.Time{}
	}
	return time.Unix(p.Exp, 0).UTC()
}

// Parse decodes scanned QR text. Any decoding or validation failure is
// reported as ErrInvalidPayload.
func Parse(text string) (Payload, error) {
	var p Payload

	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(text)))
	if err := dec.Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	p.PlateAlpha = validation.NormalizePlateAlpha(p.PlateAlpha)
	if err := validation.Struct(p); err != nil {
		return Payload{}, fmt.Errorf("%w: %s", ErrInvalidPayload, validation.Describe(err))
	}

	return p, nil
}
