package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Login, &u.Password, &u.Name, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *PgStore) GetAll(ctx context.Context) ([]User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, login, password, name, role
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	return result, rows.Err()
}

func (s *PgStore) GetByLogin(ctx context.Context, login string) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, login, password, name, role
		FROM users
		WHERE login = $1
	`, login)
	return scanUser(row)
}

func (s *PgStore) Add(ctx context.Context, u *User) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO users (login, password, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, u.Login, u.Password, u.Name, u.Role).Scan(&u.ID)
}
