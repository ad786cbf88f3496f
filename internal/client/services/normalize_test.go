package services

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/client/models"
	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/passrpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestNormalize_Standard(t *testing.T) {
	d := activeStandard("p1", "abc", "123")
	d.ExpiresAt = &passrpc.Timestamp{Seconds: testNow.Unix(), Nanos: 1_234_567}

	p, err := Normalize(doc(t, d))
	require.NoError(t, err)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "ABC", p.PlateAlpha)
	assert.Equal(t, models.PassTypeStandard, p.Type)
	assert.Equal(t, models.StatusActive, p.Status)
	assert.Equal(t, testNow.Add(1234*time.Microsecond), p.ExpiresAt, "truncated to microseconds, UTC")
	assert.Equal(t, models.StandardDetails{OwnerName: "Ali", Serial: "S-1"}, p.Details)
}

func TestNormalize_Visitor(t *testing.T) {
	d := passrpc.Document{
		ID: "v1", Type: "visitor", PlateAlpha: "xy", PlateNum: "9", Status: "active",
		ExpiresAt:   passrpc.FromTime(testNow),
		VisitorName: "Sara", PersonToVisit: "Omar", Purpose: "meeting",
	}

	p, err := Normalize(doc(t, d))
	require.NoError(t, err)
	assert.Equal(t, "XY", p.PlateAlpha)
	assert.True(t, p.CreatedAt.IsZero())
	assert.Equal(t, models.VisitorDetails{VisitorName: "Sara", PersonToVisit: "Omar", Purpose: "meeting"}, p.Details)
}

func TestNormalize_Idempotent(t *testing.T) {
	p, err := Normalize(doc(t, activeStandard("p1", "aBc", "1")))
	require.NoError(t, err)

	again := activeStandard("p1", p.PlateAlpha, "1")
	q, err := Normalize(doc(t, again))
	require.NoError(t, err)
	assert.Equal(t, p, q)
}

func TestNormalize_Rejects(t *testing.T) {
	mutate := func(f func(d *passrpc.Document)) passrpc.Document {
		d := activeStandard("bad", "ABC", "1")
		f(&d)
		return d
	}

	cases := map[string]*structpb.Struct{
		"missing expiry":   doc(t, mutate(func(d *passrpc.Document) { d.ExpiresAt = nil })),
		"invalid nanos":    doc(t, mutate(func(d *passrpc.Document) { d.ExpiresAt = &passrpc.Timestamp{Seconds: 1, Nanos: -5} })),
		"unknown type":     doc(t, mutate(func(d *passrpc.Document) { d.Type = "vip" })),
		"digits in alpha":  doc(t, mutate(func(d *passrpc.Document) { d.PlateAlpha = "A1" })),
		"long plate num":   doc(t, mutate(func(d *passrpc.Document) { d.PlateNum = "123456" })),
		"unknown status":   doc(t, mutate(func(d *passrpc.Document) { d.Status = "pending" })),
		"no id":            doc(t, mutate(func(d *passrpc.Document) { d.ID = "" })),
		"no owner":         doc(t, mutate(func(d *passrpc.Document) { d.OwnerName = "" })),
		"wrong field type": mustRaw(t, map[string]any{"id": "bad", "expiresAt": "soon"}),
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize(raw)
			require.Error(t, err)

			var ne *common.NormalizationError
			require.True(t, errors.As(err, &ne))
			assert.True(t, errors.Is(err, common.ErrorValidation))
		})
	}
}

func TestNormalize_ErrorCarriesID(t *testing.T) {
	_, err := Normalize(mustRaw(t, map[string]any{"id": "p-77", "type": "standard"}))

	var ne *common.NormalizationError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, "p-77", ne.PassID)
}

func mustRaw(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}
