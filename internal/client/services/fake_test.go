package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/client/client"
	"github.com/dmitrijs2005/gateguard/internal/passrpc"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	mu sync.Mutex

	docs    []*structpb.Struct
	listErr error
	delay   time.Duration

	inFlight    int
	maxInFlight int
	listCalls   int
	lastStatus  string

	loginRole string
	token     string
	loginErr  error
	lastUser  string
	lastPass  string

	issued    *passrpc.Document
	issueErr  error
	revoked   string
	newUser   passrpc.NewUser
	pingErr   error
	closeErr  error
	closeCall int
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error {
	f.closeCall++
	return f.closeErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeClient) Login(ctx context.Context, username, password string) (string, error) {
	f.lastUser, f.lastPass = username, password
	if f.loginErr == nil {
		f.token = "tok-" + username
	}
	return f.loginRole, f.loginErr
}

func (f *fakeClient) AccessToken() string { return f.token }

func (f *fakeClient) SetAccessToken(token string) { f.token = token }

func (f *fakeClient) ListPasses(ctx context.Context, status string) ([]*structpb.Struct, error) {
	f.mu.Lock()
	f.listCalls++
	f.lastStatus = status
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	docs, err, delay := f.docs, f.listErr, f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return docs, err
}

func (f *fakeClient) IssuePass(ctx context.Context, draft *passrpc.Document) (*passrpc.Document, error) {
	f.issued = draft
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	out := *draft
	out.ID = "issued-1"
	return &out, nil
}

func (f *fakeClient) RevokePass(ctx context.Context, id string) error {
	f.revoked = id
	return nil
}

func (f *fakeClient) CreateUser(ctx context.Context, user passrpc.NewUser) error {
	f.newUser = user
	return nil
}

func openRepos(t *testing.T) *client.Repositories {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "gate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return client.NewRepositories(db)
}

var testNow = time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC)

func doc(t *testing.T, d passrpc.Document) *structpb.Struct {
	t.Helper()
	s, err := passrpc.Encode(d)
	require.NoError(t, err)
	return s
}

func activeStandard(id, alpha, num string) passrpc.Document {
	return passrpc.Document{
		ID:         id,
		Type:       "standard",
		PlateAlpha: alpha,
		PlateNum:   num,
		Location:   "SEC 02",
		Status:     "active",
		ExpiresAt:  passrpc.FromTime(testNow.Add(72 * time.Hour)),
		CreatedAt:  passrpc.FromTime(testNow.Add(-time.Hour)),
		OwnerName:  "Ali",
		Serial:     "S-1",
	}
}
