// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
	"github.com/taibuivan/folio/pkg/uuid"
)

// PostgresRepository implements [Repository] on PostgreSQL. Entry data is
// stored as jsonb and never interpreted by SQL.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository constructs a repository over a pool or a mock.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var entryColumns = fmt.Sprintf(
	"%s, %s, COALESCE(%s, ''), %s, %s, %s, COALESCE(%s::text, ''), COALESCE(%s::text, ''), %s, %s",
	schema.ContentEntry.ID, schema.ContentEntry.ContentType, schema.ContentEntry.Slug,
	schema.ContentEntry.Status, schema.ContentEntry.Data, schema.ContentEntry.SortOrder,
	schema.ContentEntry.CreatedBy, schema.ContentEntry.UpdatedBy,
	schema.ContentEntry.CreatedAt, schema.ContentEntry.UpdatedAt,
)

var versionColumns = fmt.Sprintf(
	"%s, %s, %s, COALESCE(%s, ''), %s, %s, %s, COALESCE(%s::text, ''), %s",
	schema.ContentVersion.ID, schema.ContentVersion.EntryID, schema.ContentVersion.Version,
	schema.ContentVersion.Slug, schema.ContentVersion.Status, schema.ContentVersion.Data,
	schema.ContentVersion.SortOrder, schema.ContentVersion.CreatedBy, schema.ContentVersion.CreatedAt,
)

// # Reads

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Entry, int, error) {
	var conditions []string
	var args []any

	if filter.ContentType != "" {
		args = append(args, filter.ContentType)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.ContentEntry.ContentType, len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.ContentEntry.Status, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s%s`, schema.ContentEntry.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Entry", "count_entries")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s ASC, %s DESC LIMIT $%s OFFSET $%s`,
		entryColumns, schema.ContentEntry.Table, where,
		schema.ContentEntry.SortOrder, schema.ContentEntry.CreatedAt,
		strconv.Itoa(len(args)+1), strconv.Itoa(len(args)+2),
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Entry", "list_entries")
	}
	defer rows.Close()

	entries := make([]*Entry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Entry", "list_entries")
	}

	return entries, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		entryColumns, schema.ContentEntry.Table, schema.ContentEntry.ID,
	)
	return scanEntry(repository.db.QueryRow(context, query, id))
}

func (repository *PostgresRepository) FindBySlug(context context.Context, contentType, slug string) (*Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		entryColumns, schema.ContentEntry.Table, schema.ContentEntry.ContentType, schema.ContentEntry.Slug,
	)
	return scanEntry(repository.db.QueryRow(context, query, contentType, slug))
}

// # Writes

func (repository *PostgresRepository) Create(context context.Context, entry *Entry) error {
	payload, err := json.Marshal(entry.Data)
	if err != nil {
		return apperr.Internal(fmt.Errorf("encode_entry_data: %w", err))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, '')::uuid, NULLIF($7, '')::uuid, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.ContentEntry.Table,
		schema.ContentEntry.ID, schema.ContentEntry.ContentType, schema.ContentEntry.Slug,
		schema.ContentEntry.Status, schema.ContentEntry.Data, schema.ContentEntry.SortOrder,
		schema.ContentEntry.CreatedBy, schema.ContentEntry.UpdatedBy,
		schema.ContentEntry.CreatedAt, schema.ContentEntry.UpdatedAt,
		schema.ContentEntry.CreatedAt, schema.ContentEntry.UpdatedAt,
	)

	err = repository.db.QueryRow(context, query,
		entry.ID, entry.ContentType, entry.Slug, string(entry.Status), payload, entry.SortOrder, entry.CreatedBy,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	return dberr.Wrap(err, "Entry", "create_entry")
}

func (repository *PostgresRepository) Update(context context.Context, entry *Entry, actorID string) error {
	payload, err := json.Marshal(entry.Data)
	if err != nil {
		return apperr.Internal(fmt.Errorf("encode_entry_data: %w", err))
	}

	entries, versions := schema.ContentEntry, schema.ContentVersion

	// Concurrent updates of one entry queue on this row lock, so each one
	// sees the previous snapshot when numbering its own.
	lock := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 FOR UPDATE`, entries.Table, entries.ID)

	snapshot := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		SELECT $1, %s,
			COALESCE((SELECT MAX(%s) FROM %s WHERE %s = $2), 0) + 1,
			%s, %s, %s, %s, NULLIF($3, '')::uuid, NOW()
		FROM %s WHERE %s = $2
	`,
		versions.Table, versions.ID, versions.EntryID, versions.Version, versions.Slug, versions.Status,
		versions.Data, versions.SortOrder, versions.CreatedBy, versions.CreatedAt,
		entries.ID,
		versions.Version, versions.Table, versions.EntryID,
		entries.Slug, entries.Status, entries.Data, entries.SortOrder,
		entries.Table, entries.ID,
	)

	update := fmt.Sprintf(`
		UPDATE %s
		SET %s = NULLIF($2, ''), %s = $3, %s = $4, %s = $5, %s = NULLIF($6, '')::uuid, %s = NOW()
		WHERE %s = $1
		RETURNING %s, COALESCE(%s::text, ''), %s, %s
	`,
		entries.Table,
		entries.Slug, entries.Status, entries.Data, entries.SortOrder, entries.UpdatedBy, entries.UpdatedAt,
		entries.ID,
		entries.ContentType, entries.CreatedBy, entries.CreatedAt, entries.UpdatedAt,
	)

	return postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		var locked int
		if err := tx.QueryRow(context, lock, entry.ID).Scan(&locked); err != nil {
			return dberr.Wrap(err, "Entry", "lock_entry")
		}

		tag, err := tx.Exec(context, snapshot, uuid.New(), entry.ID, actorID)
		if err != nil {
			return dberr.Wrap(err, "Entry", "snapshot_entry")
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Entry")
		}

		err = tx.QueryRow(context, update,
			entry.ID, entry.Slug, string(entry.Status), payload, entry.SortOrder, actorID,
		).Scan(&entry.ContentType, &entry.CreatedBy, &entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "Entry", "update_entry")
		}

		entry.UpdatedBy = actorID
		return nil
	})
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ContentEntry.Table, schema.ContentEntry.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Entry", "delete_entry")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Entry")
	}
	return nil
}

// # Versions

func (repository *PostgresRepository) ListVersions(context context.Context, entryID string) ([]*Version, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		versionColumns, schema.ContentVersion.Table, schema.ContentVersion.EntryID, schema.ContentVersion.Version,
	)

	rows, err := repository.db.Query(context, query, entryID)
	if err != nil {
		return nil, dberr.Wrap(err, "Version", "list_versions")
	}
	defer rows.Close()

	versions := []*Version{}
	for rows.Next() {
		version, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Version", "list_versions")
	}

	return versions, nil
}

func (repository *PostgresRepository) FindVersion(context context.Context, id string) (*Version, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		versionColumns, schema.ContentVersion.Table, schema.ContentVersion.ID,
	)
	return scanVersion(repository.db.QueryRow(context, query, id))
}

// # Scanning

func scanEntry(row pgx.Row) (*Entry, error) {
	entry := &Entry{}
	var status string
	var payload []byte

	err := row.Scan(
		&entry.ID, &entry.ContentType, &entry.Slug, &status, &payload, &entry.SortOrder,
		&entry.CreatedBy, &entry.UpdatedBy, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Entry", "scan_entry")
	}

	entry.Status = Status(status)
	if entry.Data, err = decodeData(payload); err != nil {
		return nil, err
	}
	return entry, nil
}

func scanVersion(row pgx.Row) (*Version, error) {
	version := &Version{}
	var status string
	var payload []byte

	err := row.Scan(
		&version.ID, &version.EntryID, &version.Version, &version.Slug, &status,
		&payload, &version.SortOrder, &version.CreatedBy, &version.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Version", "scan_version")
	}

	version.Status = Status(status)
	if version.Data, err = decodeData(payload); err != nil {
		return nil, err
	}
	return version, nil
}

func decodeData(payload []byte) (map[string]any, error) {
	data := map[string]any{}
	if len(payload) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, apperr.Internal(fmt.Errorf("decode_entry_data: %w", err))
	}
	return data, nil
}
