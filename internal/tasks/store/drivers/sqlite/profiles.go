package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
)

type profilesRepo struct {
	db dbtx
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.UserProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, address, mobile) VALUES (?, ?, ?)`,
		p.UserID, mapOptionalString(p.Address), mapOptionalString(p.Mobile),
	)
	return mapConstraint(err)
}

func (r *profilesRepo) GetProfile(ctx context.Context, userID int64) (domain.UserProfile, error) {
	var address, mobile sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT address, mobile FROM user_profiles WHERE user_id = ?`, userID,
	).Scan(&address, &mobile)
	if err != nil {
		return domain.UserProfile{}, mapNotFound(err)
	}
	return domain.UserProfile{
		UserID:  userID,
		Address: mapNullString(address),
		Mobile:  mapNullString(mobile),
	}, nil
}

func (r *profilesRepo) UpdateProfile(ctx context.Context, p domain.UserProfile) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE user_profiles SET address = ?, mobile = ? WHERE user_id = ?`,
		mapOptionalString(p.Address), mapOptionalString(p.Mobile), p.UserID,
	))
}
