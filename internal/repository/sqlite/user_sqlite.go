package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cookbook/internal/model"
	"cookbook/internal/repository"
)

const timeFormat = time.RFC3339Nano

// UserSQLite is a SQLite implementation of repository.UserRepository.
// Timestamps are stored as RFC 3339 text.
type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

var _ repository.UserRepository = (*UserSQLite)(nil)

func (r *UserSQLite) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `INSERT INTO users (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		u.ID, u.Name, u.CreatedAt.UTC().Format(timeFormat), u.UpdatedAt.UTC().Format(timeFormat),
	); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, u.ID)
}

func (r *UserSQLite) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT id, name, created_at, updated_at FROM users WHERE id = ?`
	u, err := scan(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserSQLite) List(ctx context.Context) ([]model.User, error) {
	const q = `SELECT id, name, created_at, updated_at FROM users ORDER BY created_at ASC, rowid ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

func (r *UserSQLite) Update(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `UPDATE users SET name = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, u.Name, u.UpdatedAt.UTC().Format(timeFormat), u.ID)
	if err != nil {
		return nil, err
	}
	if err := requireOne(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, u.ID)
}

func (r *UserSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireOne(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*model.User, error) {
	var (
		u                  model.User
		created, updated string
	)
	if err := s.Scan(&u.ID, &u.Name, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if u.CreatedAt, err = time.Parse(timeFormat, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if u.UpdatedAt, err = time.Parse(timeFormat, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &u, nil
}

func requireOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
