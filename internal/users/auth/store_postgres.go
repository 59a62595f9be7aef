// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on users.account.
type PostgresUserRepository struct {
	db postgres.DB
}

// NewUserRepository creates a new Postgres-backed UserRepository.
func NewUserRepository(db postgres.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var userColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Name, schema.UserAccount.Password,
	schema.UserAccount.Role, schema.UserAccount.IsActive, schema.UserAccount.LastLoginAt,
	schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
)

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.UserAccount.Table, schema.UserAccount.ID)
	return scanUser(repository.db.QueryRow(context, query, id))
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1)`, userColumns, schema.UserAccount.Table, schema.UserAccount.Email)
	return scanUser(repository.db.QueryRow(context, query, email))
}

func (repository *PostgresUserRepository) List(context context.Context) ([]*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`, userColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "list_users")
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, dberr.Wrap(rows.Err(), "User", "list_users")
}

func (repository *PostgresUserRepository) Count(context context.Context) (int, error) {
	var count int
	err := repository.db.QueryRow(context, fmt.Sprintf(`SELECT count(*) FROM %s`, schema.UserAccount.Table)).Scan(&count)
	return count, dberr.Wrap(err, "User", "count_users")
}

func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Name, schema.UserAccount.Password,
		schema.UserAccount.Role, schema.UserAccount.IsActive, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Email, user.Name, user.PasswordHash, string(user.Role), user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "User", "create_user")
}

func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Email, schema.UserAccount.Name, schema.UserAccount.Password,
		schema.UserAccount.Role, schema.UserAccount.IsActive, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Email, user.Name, user.PasswordHash, string(user.Role), user.IsActive,
	).Scan(&user.UpdatedAt)

	return dberr.Wrap(err, "User", "update_user")
}

func (repository *PostgresUserRepository) TouchLogin(context context.Context, userID string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID,
	)

	tag, err := repository.db.Exec(context, query, userID, at)
	if err != nil {
		return dberr.Wrap(err, "User", "touch_login")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var role string

	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&role, &user.IsActive, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "scan_user")
	}

	user.Role = sec.UserRole(role)
	return user, nil
}
