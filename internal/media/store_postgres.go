// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

// PostgresRepository implements [Repository] on media.item.
type PostgresRepository struct {
	db postgres.DB
}

func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var itemColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, COALESCE(%s::text, ''), %s",
	schema.MediaItem.ID, schema.MediaItem.FileName, schema.MediaItem.OriginalName, schema.MediaItem.MimeType,
	schema.MediaItem.Size, schema.MediaItem.Width, schema.MediaItem.Height, schema.MediaItem.AltText,
	schema.MediaItem.Folder, schema.MediaItem.StorageKey, schema.MediaItem.URL, schema.MediaItem.UploadedBy,
	schema.MediaItem.CreatedAt,
)

func (repository *PostgresRepository) List(context context.Context, folder string) ([]*Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, itemColumns, schema.MediaItem.Table)
	args := []any{}

	if folder != "" {
		args = append(args, folder)
		query += fmt.Sprintf(` WHERE %s = $1`, schema.MediaItem.Folder)
	}
	query += fmt.Sprintf(` ORDER BY %s DESC`, schema.MediaItem.CreatedAt)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Media", "list_media")
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, dberr.Wrap(rows.Err(), "Media", "list_media")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, itemColumns, schema.MediaItem.Table, schema.MediaItem.ID)
	return scanItem(repository.db.QueryRow(context, query, id))
}

func (repository *PostgresRepository) Create(context context.Context, item *Item) error {
	table := schema.MediaItem
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, '')::uuid, NOW())
		RETURNING %s
	`,
		table.Table,
		table.ID, table.FileName, table.OriginalName, table.MimeType, table.Size, table.Width, table.Height,
		table.AltText, table.Folder, table.StorageKey, table.URL, table.UploadedBy, table.CreatedAt,
		table.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		item.ID, item.FileName, item.OriginalName, item.MimeType, item.Size, item.Width, item.Height,
		item.AltText, item.Folder, item.StorageKey, item.URL, item.UploadedBy,
	).Scan(&item.CreatedAt)

	return dberr.Wrap(err, "Media", "create_media")
}

func (repository *PostgresRepository) Update(context context.Context, item *Item) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.MediaItem.Table, schema.MediaItem.AltText, schema.MediaItem.Folder, schema.MediaItem.ID,
	)

	tag, err := repository.db.Exec(context, query, item.ID, item.AltText, item.Folder)
	if err != nil {
		return dberr.Wrap(err, "Media", "update_media")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Media")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.MediaItem.Table, schema.MediaItem.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Media", "delete_media")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Media")
	}
	return nil
}

func scanItem(row pgx.Row) (*Item, error) {
	item := &Item{}
	err := row.Scan(
		&item.ID, &item.FileName, &item.OriginalName, &item.MimeType, &item.Size, &item.Width, &item.Height,
		&item.AltText, &item.Folder, &item.StorageKey, &item.URL, &item.UploadedBy, &item.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Media", "scan_media")
	}
	return item, nil
}
