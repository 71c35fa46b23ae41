package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"citysafe/internal/domain"
	"citysafe/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	external_id TEXT UNIQUE,
	phone TEXT UNIQUE,
	profile_pic TEXT,
	created_at DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	user.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (email, name, password_hash, external_id, phone, profile_pic, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Email,
		user.Name,
		user.PasswordHash,
		nullIfEmpty(user.ExternalID),
		nullIfEmpty(user.Phone),
		nullIfEmpty(user.ProfilePic),
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user: %w", repository.ErrConflict)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, name, password_hash, external_id, phone, profile_pic, created_at
FROM users
WHERE email = ?`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, name, password_hash, external_id, phone, profile_pic, created_at
FROM users
WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, name, email, phone string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users SET name = ?, email = ?, phone = ?
WHERE id = ?`,
		name,
		email,
		nullIfEmpty(phone),
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update profile: %w", repository.ErrConflict)
		}
		return fmt.Errorf("update profile: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update profile: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) SetProfilePicture(ctx context.Context, id int64, location string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users SET profile_pic = ?
WHERE id = ?`,
		nullIfEmpty(location),
		id,
	)
	if err != nil {
		return fmt.Errorf("set profile picture: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set profile picture rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set profile picture: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.inUse(ctx, "email", email, excludeID)
}

func (r *UserRepository) PhoneInUse(ctx context.Context, phone string, excludeID int64) (bool, error) {
	return r.inUse(ctx, "phone", phone, excludeID)
}

func (r *UserRepository) inUse(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(1) FROM users WHERE %s = ? AND id != ?`, column)
	if err := r.db.QueryRowContext(ctx, query, value, excludeID).Scan(&count); err != nil {
		return false, fmt.Errorf("check %s in use: %w", column, err)
	}
	return count > 0, nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user       domain.User
		externalID sql.NullString
		phone      sql.NullString
		profilePic sql.NullString
	)
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&externalID,
		&phone,
		&profilePic,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.ExternalID = externalID.String
	user.Phone = phone.String
	user.ProfilePic = profilePic.String
	return &user, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
