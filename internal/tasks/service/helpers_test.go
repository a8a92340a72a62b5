package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/internal/tasks/store/drivers/sqlite"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

var testNow = time.Unix(1700000000, 0).UTC()

func fixedClock() Clock { return func() time.Time { return testNow } }

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "tasks.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestHasher() *cryptox.PasswordHasher {
	return cryptox.NewPasswordHasher("service-test-pepper")
}

func createUser(t *testing.T, svc *UserService, username, password string) domain.User {
	t.Helper()
	d, err := svc.CreateUser(context.Background(), domain.NewUser{
		Name:     "User " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: password,
	})
	require.NoError(t, err)
	return d.User
}

func createRoles(t *testing.T, st store.Store, names ...string) map[string]domain.Role {
	t.Helper()
	out := make(map[string]domain.Role, len(names))
	for _, n := range names {
		id, err := st.Roles().CreateRole(context.Background(), n)
		require.NoError(t, err)
		out[n] = domain.Role{ID: id, Name: n}
	}
	return out
}
