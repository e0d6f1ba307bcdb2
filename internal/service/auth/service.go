package auth

import (
	"context"

	"github.com/HafsaFatima26/hospital-management-system/internal/model"
	"github.com/HafsaFatima26/hospital-management-system/internal/repository"
	apperrors "github.com/HafsaFatima26/hospital-management-system/pkg/errors"
	"github.com/HafsaFatima26/hospital-management-system/pkg/security"
)

type Service struct {
	users    repository.UserRepository
	hasher   security.PasswordHasher
	sessions *SessionStore
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, sessions *SessionStore) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
	}
}

// Authenticate validates a credential pair against the store. It fails
// closed: unknown user and wrong password are indistinguishable to the
// caller. No lockout, no audit side effect; callers log successes.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid username or password", nil)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized("invalid username or password", nil)
	}

	return user, nil
}

// Login authenticates and opens a session for the user.
func (s *Service) Login(ctx context.Context, username, password string) (*model.Session, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.sessions.Create(*user), nil
}

// Logout destroys the session; the token is unusable afterwards.
func (s *Service) Logout(token string) {
	s.sessions.Destroy(token)
}

// Session resolves a bearer token to its live session.
func (s *Service) Session(token string) (*model.Session, bool) {
	return s.sessions.Get(token)
}
