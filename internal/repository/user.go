package repository

import (
	"context"

	"citysafe/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// UpdateProfile rewrites name, email and phone in a single statement so a
	// constraint violation leaves the row untouched.
	UpdateProfile(ctx context.Context, id int64, name, email, phone string) error
	SetProfilePicture(ctx context.Context, id int64, location string) error
	EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)
	PhoneInUse(ctx context.Context, phone string, excludeID int64) (bool, error)
}
