package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories so a Tx-scoped Store can hand
// out the same repos bound to the transaction, and so nested transactions
// are refused rather than silently opened.
type Store interface {
	Users() Users
	Profiles() Profiles
	Roles() Roles
	UserRoles() UserRoles
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users together with Profiles form the credential store.
type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail resolves a token subject back to its user.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns users ordered by id.
	ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.User, error)

	// CreateUser inserts u and returns the assigned id. Returns
	// ErrAlreadyExists when username or email is taken.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// UpdateUser overwrites name, username, email, password_hash and
	// updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser cascades to profile, roles and tasks (per schema).
	DeleteUser(ctx context.Context, id int64) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Profiles interface {
	CreateProfile(ctx context.Context, p domain.UserProfile) error
	GetProfile(ctx context.Context, userID int64) (domain.UserProfile, error)
	UpdateProfile(ctx context.Context, p domain.UserProfile) error
}

// Roles together with UserRoles form the role store.
type Roles interface {
	GetRoleByID(ctx context.Context, id int64) (domain.Role, error)

	// GetRolesByNames returns the roles whose names appear in names. Names
	// with no match are simply absent from the result.
	GetRolesByNames(ctx context.Context, names []string) ([]domain.Role, error)

	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole returns ErrAlreadyExists when the name is taken.
	CreateRole(ctx context.Context, name string) (int64, error)

	IsEmpty(ctx context.Context) (bool, error)
}

type UserRoles interface {
	// ListRolesForUser returns the roles held by userID ordered by name.
	ListRolesForUser(ctx context.Context, userID int64) ([]domain.Role, error)

	// AddUserRoles grants roleIDs to userID in a single statement. Pairs
	// that already exist are skipped; the returned ids are the ones this
	// call actually inserted.
	AddUserRoles(ctx context.Context, userID int64, roleIDs []int64) ([]int64, error)
}

type Tasks interface {
	GetTask(ctx context.Context, id int64) (domain.Task, error)
	ListTasks(ctx context.Context, f domain.TaskFilter) ([]domain.Task, error)

	// CreateTask returns ErrNotFound when the owning user does not exist.
	CreateTask(ctx context.Context, t domain.Task) (int64, error)
	UpdateTask(ctx context.Context, t domain.Task) error
	DeleteTask(ctx context.Context, id int64) error
}
