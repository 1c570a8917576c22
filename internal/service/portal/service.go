package portal

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"homesteadhub/internal/domain"
	tokenrepo "homesteadhub/internal/repository/token"
)

type userRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Service authenticates users and manages their sessions.
type Service struct {
	users     userRepo
	tokens    *tokenManager
	accessTTL time.Duration
}

// New creates a Service with sane defaults.
func New(users userRepo, tokens tokenrepo.Repository) *Service {
	return &Service{
		users:     users,
		tokens:    newTokenManager(tokens),
		accessTTL: 48 * time.Hour,
	}
}

// Login validates credentials and returns the user plus an issued access
// token. An unknown username and a wrong password are distinct failures so
// the caller can report them separately; neither is ever retried here.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	username = strings.TrimSpace(username)
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUserNotFound
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return u, access, nil
}

// LookupByToken returns the user bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	userID, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return u, nil
}

// Logout revokes the given token. Revoking an unknown token is a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	err := s.tokens.Revoke(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}
