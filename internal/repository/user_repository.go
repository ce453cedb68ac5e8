package repository

import (
	"context"
	"time"

	"github.com/segyhp/lending-engine/internal/domain"
)

const userColumns = `id, email, full_name, document_id, phone, points, level, created_at, updated_at`

type userRepository struct {
	db dbtx
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		user.ID,
		user.Email,
		user.FullName,
		user.DocumentID,
		user.Phone,
		user.Points,
		user.Level,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return classify(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, r.db.Rebind(query), id); err != nil {
		return nil, classify(err)
	}

	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET full_name = ?, document_id = ?, phone = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		user.FullName,
		user.DocumentID,
		user.Phone,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return classify(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return classify(err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) SetPoints(ctx context.Context, id string, expected, points int64, level int) (bool, error) {
	query := `
		UPDATE users
		SET points = ?, level = ?, updated_at = ?
		WHERE id = ? AND points = ?
	`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), points, level, time.Now().UTC(), id, expected)
	if err != nil {
		return false, classify(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, classify(err)
	}

	return rows == 1, nil
}
