package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
)

type userRolesRepo struct {
	db dbtx
}

func (r *userRolesRepo) ListRolesForUser(ctx context.Context, userID int64) ([]domain.Role, error) {
	return queryRoles(ctx, r.db,
		`SELECT r.id, r.name
		   FROM user_roles ur
		   JOIN roles r ON r.id = ur.role_id
		  WHERE ur.user_id = ?
		  ORDER BY r.name`, userID)
}

// AddUserRoles writes every pair in one statement, so the batch lands or
// fails as a whole. ON CONFLICT makes a pair that a concurrent request
// already inserted a skip instead of an error, and RETURNING reports only
// the rows this statement created.
func (r *userRolesRepo) AddUserRoles(ctx context.Context, userID int64, roleIDs []int64) ([]int64, error) {
	if len(roleIDs) == 0 {
		return []int64{}, nil
	}

	values := make([]string, len(roleIDs))
	args := make([]any, 0, 2*len(roleIDs))
	for i, id := range roleIDs {
		values[i] = "(?, ?)"
		args = append(args, userID, id)
	}

	rows, err := r.db.QueryContext(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES `+strings.Join(values, ", ")+`
		 ON CONFLICT (user_id, role_id) DO NOTHING
		 RETURNING role_id`, args...)
	if err != nil {
		return nil, mapConstraint(err)
	}
	defer func() { _ = rows.Close() }()

	inserted := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		inserted = append(inserted, id)
	}
	if err := rows.Err(); err != nil {
		return nil, mapConstraint(err)
	}
	return inserted, nil
}
