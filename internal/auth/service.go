package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Service verifies credentials and registers credential records. An unknown
// login and a wrong password both come back as a nil user so callers cannot
// enumerate accounts; the distinction is only logged server-side.
type Service struct {
	store Store
	log   zerolog.Logger
}

func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) VerifyCredentials(ctx context.Context, login, password string) (*User, error) {
	user, err := s.store.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.log.Warn().Str("login", login).Msg("login attempt for unknown user")
			return nil, nil
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !CheckPassword(user.Password, password) {
		s.log.Warn().Str("login", login).Msg("login attempt with wrong password")
		return nil, nil
	}

	return user, nil
}

// RegisterUser creates a credential record. A duplicate login yields a nil
// user, not an error. The returned record has its password redacted.
func (s *Service) RegisterUser(ctx context.Context, u *User) (*User, error) {
	users, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for _, existing := range users {
		if existing.Login == u.Login {
			s.log.Warn().Str("login", u.Login).Msg("registration with duplicate login")
			return nil, nil
		}
	}

	hash, err := HashPassword(u.Password)
	if err != nil {
		return nil, err
	}
	u.Password = hash

	if err := s.store.Add(ctx, u); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.log.Info().Str("login", u.Login).Msg("user registered")

	out := *u
	out.Password = ""
	return &out, nil
}

// ListUsers returns all credential records with passwords redacted.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}
