package grpc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/logging"
	"github.com/dmitrijs2005/gateguard/internal/server/auth"
	"github.com/dmitrijs2005/gateguard/internal/server/models"
	"github.com/dmitrijs2005/gateguard/internal/server/services"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret"

type fakeUsers struct {
	mu        sync.Mutex
	created   []services.NewUser
	loginErr  error
	createErr error
}

func (f *fakeUsers) Login(ctx context.Context, userName, password string) (*services.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if password != "pw" {
		return nil, common.ErrorUnauthorized
	}
	role := common.RoleGuard
	if userName == "admin" {
		role = common.RoleAdmin
	}
	tok, err := auth.GenerateToken("id-"+userName, role, []byte(testSecret), time.Hour)
	if err != nil {
		return nil, err
	}
	return &services.LoginResult{AccessToken: tok, Role: role}, nil
}

func (f *fakeUsers) CreateUser(ctx context.Context, u services.NewUser) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	return &models.User{ID: "id-" + u.Username, UserName: u.Username, Role: u.Role}, nil
}

type fakePasses struct {
	mu         sync.Mutex
	list       []*models.Pass
	listStatus string
	issuer     string
	draft      services.PassDraft
	revoked    []string

	listErr   error
	issueErr  error
	revokeErr error
}

func (f *fakePasses) Issue(ctx context.Context, issuerID string, d services.PassDraft) (*services.IssuedPass, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	f.issuer, f.draft = issuerID, d
	p := &models.Pass{
		ID: "new-id", Type: d.Type, PlateAlpha: d.PlateAlpha, PlateNum: d.PlateNum, Location: d.Location,
		Status: models.StatusActive, ExpiresAt: d.ExpiresAt, CreatedAt: issuedAt,
		CreatedBy: issuerID, CreatedByName: "admin",
		OwnerName: d.OwnerName, OwnerCompany: d.OwnerCompany, Serial: d.Serial,
	}
	return &services.IssuedPass{Pass: p, QR: `{"v":1}`}, nil
}

func (f *fakePasses) Revoke(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.revokeErr != nil {
		return f.revokeErr
	}
	f.revoked = append(f.revoked, id)
	return nil
}

func (f *fakePasses) List(ctx context.Context, status string) ([]*models.Pass, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listStatus = status
	return f.list, f.listErr
}

var issuedAt = time.Date(2025, 2, 3, 4, 5, 6, 7000, time.UTC)

func newTestServer(us *fakeUsers, ps *fakePasses) *GRPCServer {
	if us == nil {
		us = &fakeUsers{}
	}
	if ps == nil {
		ps = &fakePasses{}
	}
	return NewGRPCServer("127.0.0.1:0", logging.Nop(), us, ps, testSecret)
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, role, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return tok
}
