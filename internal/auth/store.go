package auth

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// Store contains the credential-record DB interactions the service needs.
type Store interface {
	GetAll(ctx context.Context) ([]User, error)
	GetByLogin(ctx context.Context, login string) (*User, error)
	Add(ctx context.Context, u *User) error
}
