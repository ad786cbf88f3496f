package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/dbx"
	"github.com/dmitrijs2005/gateguard/internal/server/models"
	"github.com/dmitrijs2005/gateguard/internal/server/repositories/passes"
	"github.com/dmitrijs2005/gateguard/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	mu     sync.Mutex
	byName map[string]*models.User

	getErr    error
	createErr error
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	r := &fakeUsersRepo{byName: map[string]*models.User{}}
	for _, u := range users {
		r.byName[u.UserName] = u
	}
	return r
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = "id-" + u.UserName
	u.CreatedAt = time.Now()
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, name string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakePassesRepo struct {
	mu      sync.Mutex
	passes  map[string]*models.Pass
	creator map[string]string

	createErr error
	listErr   error
	lastList  string
	lastNow   time.Time
}

func newFakePassesRepo() *fakePassesRepo {
	return &fakePassesRepo{passes: map[string]*models.Pass{}, creator: map[string]string{}}
}

func (f *fakePassesRepo) Create(ctx context.Context, p *models.Pass) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *p
	cp.Status = models.StatusActive
	f.passes[p.ID] = &cp
	p.Status = models.StatusActive
	return nil
}

func (f *fakePassesRepo) GetByID(ctx context.Context, id string) (*models.Pass, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.passes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	cp.CreatedByName = f.creator[p.CreatedBy]
	return &cp, nil
}

func (f *fakePassesRepo) List(ctx context.Context, status string, now time.Time) ([]*models.Pass, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastList, f.lastNow = status, now
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Pass
	for _, p := range f.passes {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePassesRepo) Revoke(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.passes[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Status = models.StatusRevoked
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakePassesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Passes(db dbx.DBTX) passes.Repository         { return m.p }
