package auth

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory credential store for the service tests.
type memStore struct {
	users  []User
	nextID int64
}

func (s *memStore) GetAll(ctx context.Context) ([]User, error) {
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *memStore) GetByLogin(ctx context.Context, login string) (*User, error) {
	for i := range s.users {
		if s.users[i].Login == login {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *memStore) Add(ctx context.Context, u *User) error {
	s.nextID++
	u.ID = s.nextID
	s.users = append(s.users, *u)
	return nil
}

func TestRegisterUserHashesAndRedacts(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := NewService(store, zerolog.Nop())

	created, err := svc.RegisterUser(ctx, &User{Login: "ana", Password: "s3cret", Name: "Ana Ruiz", Role: RolePhysician})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Empty(t, created.Password)
	require.NotZero(t, created.ID)

	stored, err := store.GetByLogin(ctx, "ana")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", stored.Password)
	require.True(t, CheckPassword(stored.Password, "s3cret"))
}

func TestRegisterUserDuplicateLoginIsNilNotError(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := NewService(store, zerolog.Nop())

	_, err := svc.RegisterUser(ctx, &User{Login: "ana", Password: "s3cret", Role: RolePhysician})
	require.NoError(t, err)

	dup, err := svc.RegisterUser(ctx, &User{Login: "ana", Password: "other", Role: RolePatient})
	require.NoError(t, err)
	require.Nil(t, dup)
}

func TestVerifyCredentials(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := NewService(store, zerolog.Nop())

	_, err := svc.RegisterUser(ctx, &User{Login: "ana", Password: "s3cret", Name: "Ana Ruiz", Role: RolePhysician})
	require.NoError(t, err)

	user, err := svc.VerifyCredentials(ctx, "ana", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, RolePhysician, user.Role)

	// Wrong password and unknown login are indistinguishable to the caller.
	user, err = svc.VerifyCredentials(ctx, "ana", "wrong")
	require.NoError(t, err)
	require.Nil(t, user)

	user, err = svc.VerifyCredentials(ctx, "ghost", "s3cret")
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestListUsersRedactsPasswords(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := NewService(store, zerolog.Nop())

	_, err := svc.RegisterUser(ctx, &User{Login: "ana", Password: "s3cret", Role: RolePhysician})
	require.NoError(t, err)
	_, err = svc.RegisterUser(ctx, &User{Login: "luis", Password: "hunter2", Role: RolePatient})
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		require.Empty(t, u.Password)
	}
}
