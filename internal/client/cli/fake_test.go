package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/client/models"
	"github.com/dmitrijs2005/gateguard/internal/client/services"
	"github.com/dmitrijs2005/gateguard/internal/client/verify"
	"github.com/dmitrijs2005/gateguard/internal/logging"
	"github.com/dmitrijs2005/gateguard/internal/passrpc"
)

type fakeAuth struct {
	loginUser string
	loginPass []byte
	session   services.Session
	loginErr  error

	saved      *services.Session
	logoutCall int
	logoutErr  error
}

func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) (services.Session, error) {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	if f.loginErr != nil {
		return services.Session{}, f.loginErr
	}
	return f.session, nil
}
func (f *fakeAuth) CurrentSession(context.Context) (*services.Session, error) { return f.saved, nil }
func (f *fakeAuth) Restore(context.Context) (*services.Session, error)        { return f.saved, nil }
func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCall++
	return f.logoutErr
}
func (f *fakeAuth) Ping(context.Context) error  { return nil }
func (f *fakeAuth) Close(context.Context) error { return nil }

type fakeSyncer struct {
	online bool
	res    services.SyncResult
	err    error
	calls  int
}

func (f *fakeSyncer) SyncNow(context.Context) (services.SyncResult, error) {
	f.calls++
	return f.res, f.err
}
func (f *fakeSyncer) IsOnline() bool { return f.online }

type fakeSyncService struct {
	count    int
	countErr error
	last     *time.Time
	lastErr  error
}

func (f *fakeSyncService) SyncNow(context.Context) services.SyncResult { return services.SyncResult{} }
func (f *fakeSyncService) HasLocalData(context.Context) bool           { return f.count > 0 }
func (f *fakeSyncService) LastSyncTime(context.Context) (*time.Time, error) {
	return f.last, f.lastErr
}
func (f *fakeSyncService) PassCount(context.Context) (int, error) { return f.count, f.countErr }

type fakeVerifier struct {
	byPlate map[string]models.VerifiedPass
	byID    map[string]models.VerifiedPass
	qr      verify.QRResult
	qrErr   error

	lastAlpha, lastNum, lastID, lastQR string
}

func (f *fakeVerifier) ByPlate(_ context.Context, alpha, num string) (models.VerifiedPass, bool) {
	f.lastAlpha, f.lastNum = alpha, num
	v, ok := f.byPlate[alpha+" "+num]
	return v, ok
}
func (f *fakeVerifier) ByID(_ context.Context, id string) (models.VerifiedPass, bool) {
	f.lastID = id
	v, ok := f.byID[id]
	return v, ok
}
func (f *fakeVerifier) ByQR(_ context.Context, text string) (verify.QRResult, error) {
	f.lastQR = text
	return f.qr, f.qrErr
}

type fakeAdmin struct {
	draft    services.PassDraft
	issueErr error
	revoked  string
	user     string
	pass     []byte
	role     string
	userErr  error
}

func (f *fakeAdmin) Issue(_ context.Context, d services.PassDraft) (*passrpc.Document, error) {
	f.draft = d
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	return &passrpc.Document{ID: "new-1", Type: string(d.Type), PlateAlpha: d.PlateAlpha, PlateNum: d.PlateNum, QR: `{"v":1}`}, nil
}
func (f *fakeAdmin) Revoke(_ context.Context, id string) error {
	f.revoked = id
	return nil
}
func (f *fakeAdmin) CreateUser(_ context.Context, u string, p []byte, role string) error {
	f.user, f.pass, f.role = u, append([]byte(nil), p...), role
	return f.userErr
}

var now = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func newTestApp(input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		log:          logging.Nop(),
		authService:  &fakeAuth{},
		adminService: &fakeAdmin{},
		syncService:  &fakeSyncService{},
		syncer:       &fakeSyncer{},
		verifier:     &fakeVerifier{},
		reader:       rdr(input),
		out:          &out,
		location:     time.UTC,
	}, &out
}

func verified(decisionStatus models.Status, expired bool) models.VerifiedPass {
	return models.VerifiedPass{
		Pass: models.Pass{
			ID:         "p1",
			Type:       models.PassTypeStandard,
			PlateAlpha: "ABC",
			PlateNum:   "1234",
			Status:     decisionStatus,
			ExpiresAt:  now.Add(24 * time.Hour),
			Location:   "SEC 02",
			Details:    models.StandardDetails{OwnerName: "Ali", OwnerCompany: "ACME", Serial: "S-9"},
		},
		Expired: expired,
	}
}
