package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HafsaFatima26/hospital-management-system/internal/model"
	"github.com/HafsaFatima26/hospital-management-system/internal/repository"
	"github.com/HafsaFatima26/hospital-management-system/pkg/security"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Role); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	query := `SELECT username, password_hash, role FROM users WHERE username = ?`
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// SeedUsers loads the demo accounts on an empty credential store. The
// accounts mirror the documented demo deployment and never change at
// runtime.
func SeedUsers(ctx context.Context, repo repository.UserRepository, hasher security.PasswordHasher) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := []struct {
		username string
		password string
		role     model.Role
	}{
		{"admin", "admin123", model.RoleAdmin},
		{"dr_bob", "doc123", model.RoleDoctor},
		{"alice_recep", "rec123", model.RoleReceptionist},
	}

	for _, s := range seeds {
		hash, err := hasher.Hash(s.password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password for %s: %w", s.username, err)
		}
		if err := repo.Create(ctx, &model.User{
			Username:     s.username,
			PasswordHash: hash,
			Role:         s.role,
		}); err != nil {
			return err
		}
	}

	return nil
}
