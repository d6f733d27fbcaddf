package submissions

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*Repo, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewRepo(db), mock, db
}

var submissionColumns = []string{"id", "url", "contributor_name", "status", "created_at"}

func TestRepo_Create(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("stores a pending submission", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO project_submissions`).
			WithArgs(
				sqlmock.AnyArg(), // id (UUID)
				"https://example.org/printed-house",
				"Ada",
				StatusPending,
			).
			WillReturnRows(sqlmock.NewRows(submissionColumns).
				AddRow("id-1", "https://example.org/printed-house", "Ada", StatusPending, now))

		s, err := repo.Create(ctx, "  https://example.org/printed-house ", " Ada ")
		require.NoError(t, err)
		assert.Equal(t, "id-1", s.ID)
		assert.Equal(t, StatusPending, s.Status)
		assert.Equal(t, "Ada", s.ContributorName)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate url", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO project_submissions`).
			WithArgs(sqlmock.AnyArg(), "https://example.org/dup", "", StatusPending).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(ctx, "https://example.org/dup", "")
		assert.ErrorIs(t, err, ErrDuplicateSubmission)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid url never reaches the database", func(t *testing.T) {
		_, err := repo.Create(ctx, "ftp://example.org/file", "")
		assert.ErrorIs(t, err, ErrInvalidSubmission)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other database errors are wrapped", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO project_submissions`).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Create(ctx, "https://example.org/x", "")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateSubmission)
		assert.Contains(t, err.Error(), "insert submission")
	})
}

func TestRepo_List(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("returns rows newest first", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT id, url, contributor_name, status, created_at\s+FROM project_submissions`).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows(submissionColumns).
				AddRow("b", "https://example.org/b", "", StatusPending, now).
				AddRow("a", "https://example.org/a", "Lin", StatusPending, now.Add(-time.Hour)))

		items, err := repo.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "b", items[0].ID)
		assert.Equal(t, "Lin", items[1].ContributorName)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("out of range limit falls back to default", func(t *testing.T) {
		mock.ExpectQuery(`FROM project_submissions`).
			WithArgs(defaultListLimit).
			WillReturnRows(sqlmock.NewRows(submissionColumns))

		items, err := repo.List(ctx, 10000)
		require.NoError(t, err)
		assert.Empty(t, items)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepo_EnsureSchema(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS project_submissions`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
