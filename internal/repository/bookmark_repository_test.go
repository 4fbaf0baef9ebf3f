package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkAddIgnoresDuplicates(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookmarkRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, program_id) DO NOTHING")).
		WithArgs(sqlmock.AnyArg(), "u1", 7, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Add(context.Background(), "u1", 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkRemove(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookmarkRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookmarks WHERE user_id = $1 AND program_id = $2")).
		WithArgs("u1", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Remove(context.Background(), "u1", 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkListIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookmarkRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT program_id FROM bookmarks WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"program_id"}).AddRow(3).AddRow(1))

	ids, err := repo.ListIDs(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkListIDsError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookmarkRepository(db)

	mock.ExpectQuery("FROM bookmarks").WillReturnError(errors.New("connection reset"))

	_, err := repo.ListIDs(context.Background(), "u1")
	assert.ErrorContains(t, err, "list bookmarks")
}
