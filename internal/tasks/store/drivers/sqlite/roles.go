package sqlite

import (
	"context"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
)

type rolesRepo struct {
	db dbtx
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id int64) (domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM roles WHERE id = ?`, id).
		Scan(&role.ID, &role.Name)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) GetRolesByNames(ctx context.Context, names []string) ([]domain.Role, error) {
	if len(names) == 0 {
		return []domain.Role{}, nil
	}

	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	return queryRoles(ctx, r.db, `SELECT id, name FROM roles WHERE name IN (`+placeholders(len(names))+`) ORDER BY name`, args...)
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	return queryRoles(ctx, r.db, `SELECT id, name FROM roles ORDER BY name`)
}

func (r *rolesRepo) CreateRole(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO roles (name) VALUES (?)`, name)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *rolesRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func queryRoles(ctx context.Context, db dbtx, query string, args ...any) ([]domain.Role, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	roles := []domain.Role{}
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
