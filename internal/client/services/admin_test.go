package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/client/models"
	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitorDraft() PassDraft {
	return PassDraft{
		Type:          models.PassTypeVisitor,
		PlateAlpha:    "ab",
		PlateNum:      "42",
		Location:      "LD 03",
		ExpiresAt:     testNow.Add(8 * time.Hour),
		VisitorName:   "Sara",
		PersonToVisit: "Omar",
		Purpose:       "interview",
	}
}

func TestAdminService_IssueVisitor(t *testing.T) {
	fc := &fakeClient{}
	s := NewAdminService(fc)

	got, err := s.Issue(context.Background(), visitorDraft())
	require.NoError(t, err)
	assert.Equal(t, "issued-1", got.ID)

	require.NotNil(t, fc.issued)
	assert.Equal(t, "visitor", fc.issued.Type)
	assert.Equal(t, "AB", fc.issued.PlateAlpha)
	assert.Equal(t, testNow.Add(8*time.Hour).Unix(), fc.issued.ExpiresAt.Seconds)
}

func TestAdminService_IssueRejectsInvalidDrafts(t *testing.T) {
	fc := &fakeClient{}
	s := NewAdminService(fc)

	d := visitorDraft()
	d.Type = models.PassTypeStandard
	_, err := s.Issue(context.Background(), d)
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, err.Error(), "OwnerName: required")

	d = visitorDraft()
	d.Location = "Moon Base"
	d.PlateNum = "12a"
	_, err = s.Issue(context.Background(), d)
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, err.Error(), "Location: unknown location")
	assert.Contains(t, err.Error(), "PlateNum")

	assert.Nil(t, fc.issued, "invalid drafts never reach the directory")
}

func TestAdminService_RevokeAndCreateUser(t *testing.T) {
	fc := &fakeClient{}
	s := NewAdminService(fc)
	ctx := context.Background()

	require.ErrorIs(t, s.Revoke(ctx, ""), common.ErrorValidation)
	require.NoError(t, s.Revoke(ctx, "p9"))
	assert.Equal(t, "p9", fc.revoked)

	require.ErrorIs(t, s.CreateUser(ctx, "u", []byte("p"), "owner"), common.ErrorValidation)
	require.ErrorIs(t, s.CreateUser(ctx, "", []byte("p"), common.RoleGuard), common.ErrorValidation)

	pw := []byte("pw")
	require.NoError(t, s.CreateUser(ctx, "gate2", pw, common.RoleGuard))
	assert.Equal(t, "gate2", fc.newUser.Username)
	assert.Equal(t, "pw", fc.newUser.Password)
	assert.Equal(t, []byte{0, 0}, pw)
}
