// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"fmt"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

// Repository persists activity records.
type Repository interface {
	Insert(context context.Context, item *Activity) error
	List(context context.Context, filter Filter) ([]*Activity, error)
}

// PostgresRepository implements [Repository] on system.activity.
type PostgresRepository struct {
	db postgres.DB
}

func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Insert(context context.Context, item *Activity) error {
	table := schema.SystemActivity
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, NOW())
		RETURNING %s
	`,
		table.Table, table.ID, table.UserID, table.Action, table.EntityType, table.EntityID, table.Summary, table.CreatedAt,
		table.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		item.ID, item.UserID, string(item.Action), item.EntityType, item.EntityID, item.Summary,
	).Scan(&item.CreatedAt)
	return dberr.Wrap(err, "Activity", "insert_activity")
}

func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Activity, error) {
	table := schema.SystemActivity

	query := fmt.Sprintf(`SELECT %s, COALESCE(%s::text, ''), %s, %s, %s, %s, %s FROM %s`,
		table.ID, table.UserID, table.Action, table.EntityType, table.EntityID, table.Summary, table.CreatedAt, table.Table,
	)
	args := []any{}

	if len(filter.EntityTypes) > 0 {
		args = append(args, filter.EntityTypes)
		query += fmt.Sprintf(` WHERE %s = ANY($1)`, table.EntityType)
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` ORDER BY %s DESC LIMIT $%d`, table.CreatedAt, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Activity", "list_activity")
	}
	defer rows.Close()

	items := []*Activity{}
	for rows.Next() {
		item := &Activity{}
		var action string
		if err := rows.Scan(&item.ID, &item.UserID, &action, &item.EntityType, &item.EntityID, &item.Summary, &item.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "Activity", "scan_activity")
		}
		item.Action = Action(action)
		items = append(items, item)
	}

	return items, dberr.Wrap(rows.Err(), "Activity", "list_activity")
}
