package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"citysafe/internal/auth"
	"citysafe/internal/domain"
	"citysafe/internal/repository"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; callers cannot tell which, so login failures leak nothing
	// about which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPhoneTaken is returned when the phone number belongs to another user.
	ErrPhoneTaken = errors.New("phone number already in use")
)

// AuthResult carries the issued token after a successful signup or login.
type AuthResult struct {
	AccessToken string
	TokenType   string
	User        *domain.User
}

// UserService implements the signup, login and profile flows.
type UserService interface {
	Signup(ctx context.Context, email, name, password, externalID string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, email, phone string) (*domain.User, error)
	SetProfilePicture(ctx context.Context, userID int64, location string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *userService) Signup(ctx context.Context, email, name, password, externalID string) (*AuthResult, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	if email == "" {
		return nil, errors.New("email is required")
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		ExternalID:   strings.TrimSpace(externalID),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		// the unique constraint is the final arbiter under concurrent signups
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issueFor(user)
}

func (s *userService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueFor(user)
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, name, email, phone string) (*domain.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if email == "" {
		return nil, errors.New("email is required")
	}
	if name == "" {
		return nil, errors.New("name is required")
	}

	taken, err := s.users.EmailInUse(ctx, email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	if phone != "" {
		taken, err := s.users.PhoneInUse(ctx, phone, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrPhoneTaken
		}
	}

	if err := s.users.UpdateProfile(ctx, userID, name, email, phone); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) SetProfilePicture(ctx context.Context, userID int64, location string) (*domain.User, error) {
	if err := s.users.SetProfilePicture(ctx, userID, location); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) issueFor(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{
		AccessToken: token,
		TokenType:   "bearer",
		User:        sanitizeUser(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
