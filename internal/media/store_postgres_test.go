// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/media"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

const mediaID = "0190a8a0-0000-7000-8000-0000000000bb"

func newMockRepository(t *testing.T) (*media.PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	mock.MatchExpectationsInOrder(true)
	return media.NewPostgresRepository(mock), mock
}

/*
TestPostgres_ListByFolder filters on folder and keeps nullable dimensions.
*/
func TestPostgres_ListByFolder(t *testing.T) {
	repository, mock := newMockRepository(t)
	now := time.Now()
	width, height := 640, 480

	columns := []string{
		"id", "filename", "originalname", "mimetype", "size", "width", "height",
		"alttext", "folder", "storagekey", "url", "uploadedby", "createdat",
	}
	mock.ExpectQuery(`SELECT .+ FROM media.item WHERE folder = \$1 ORDER BY createdat DESC`).
		WithArgs("brand").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(mediaID, "x-logo.png", "logo.png", "image/png", int64(10), &width, &height,
				"Logo", "brand", "brand/x-logo.png", "/uploads/brand/x-logo.png", "", now).
			AddRow("other", "x-doc.pdf", "doc.pdf", "application/pdf", int64(20), (*int)(nil), (*int)(nil),
				"", "brand", "brand/x-doc.pdf", "/uploads/brand/x-doc.pdf", "", now),
		)

	items, err := repository.List(context.Background(), "brand")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Width)
	assert.Equal(t, 640, *items[0].Width)
	assert.Nil(t, items[1].Width)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgres_Create passes the uploader through NULLIF.
*/
func TestPostgres_Create(t *testing.T) {
	repository, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO media.item`).
		WithArgs(mediaID, "f.png", "f.png", "image/png", int64(3), pgxmock.AnyArg(), pgxmock.AnyArg(),
			"", "general", "general/f.png", "/uploads/general/f.png", "").
		WillReturnRows(pgxmock.NewRows([]string{"createdat"}).AddRow(now))

	item := &media.Item{
		ID: mediaID, FileName: "f.png", OriginalName: "f.png", MimeType: "image/png", Size: 3,
		Folder: "general", StorageKey: "general/f.png", URL: "/uploads/general/f.png",
	}
	require.NoError(t, repository.Create(context.Background(), item))
	assert.Equal(t, now, item.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgres_UpdateMissing maps zero affected rows to NOT_FOUND.
*/
func TestPostgres_UpdateMissing(t *testing.T) {
	repository, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE media.item SET alttext = \$2, folder = \$3 WHERE id = \$1`).
		WithArgs(mediaID, "Alt", "general").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repository.Update(context.Background(), &media.Item{ID: mediaID, AltText: "Alt", Folder: "general"})
	assert.True(t, apperr.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
