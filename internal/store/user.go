package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"treatment-booking-api/internal/model"
)

func (s *Store) CreateUser(ctx context.Context, u *model.UserAccount) error {
	u.ID = uuid.New().String()
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, name, role) VALUES ($1,$2,$3,$4)
		 RETURNING created_at`,
		u.ID, u.Email, u.Name, string(u.Role),
	).Scan(&u.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.UserAccount, error) {
	u := &model.UserAccount{}
	var role string
	err := s.pool.QueryRow(ctx,
		`SELECT id, COALESCE(email, ''), name, role, created_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.Name, &role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]model.UserAccount, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, COALESCE(email, ''), name, role, created_at
		 FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.UserAccount
	for rows.Next() {
		var u model.UserAccount
		var role string
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &role, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = model.Role(role)
		out = append(out, u)
	}
	return out, rows.Err()
}

// PromoteToAdmin upserts: an unknown id is inserted as a bare admin row with
// no email. prev is read from the pre-insert snapshot, so a NULL means the
// row was created.
func (s *Store) PromoteToAdmin(ctx context.Context, id string) (PromoteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PromoteResult{}, ErrInvalidID
	}

	var prev *string
	err := s.pool.QueryRow(ctx,
		`WITH prev AS (SELECT role FROM users WHERE id = $1)
		 INSERT INTO users (id, role) VALUES ($1, 'admin')
		 ON CONFLICT (id) DO UPDATE SET role = 'admin', updated_at = NOW()
		 RETURNING (SELECT role FROM prev)`, id,
	).Scan(&prev)
	if err != nil {
		return PromoteResult{}, err
	}

	switch {
	case prev == nil:
		return PromoteResult{UpsertedID: id}, nil
	case model.Role(*prev) == model.RoleAdmin:
		return PromoteResult{MatchedCount: 1}, nil
	default:
		return PromoteResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
}
