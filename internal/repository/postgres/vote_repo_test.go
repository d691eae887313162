package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/manan0209/gitroaster/internal/errs"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestVoteRepo_CastVote_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewVoteRepo(db)

	ctx := context.Background()
	voteID := uuid.Must(uuid.NewV4())
	roastID := uuid.Must(uuid.NewV4())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO votes \(id, roast_id, fingerprint\) VALUES \(\$1,\$2,\$3\)`).
		WithArgs(voteID, roastID, "fp1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`UPDATE roasts SET votes = votes \+ 1 WHERE id=\$1 RETURNING votes`).
		WithArgs(roastID).
		WillReturnRows(pgxmock.NewRows([]string{"votes"}).AddRow(int64(6)))
	mock.ExpectCommit()

	total, err := r.CastVote(ctx, voteID, roastID, "fp1")
	require.NoError(t, err)
	require.Equal(t, int64(6), total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepo_CastVote_Duplicate(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewVoteRepo(db)

	voteID := uuid.Must(uuid.NewV4())
	roastID := uuid.Must(uuid.NewV4())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO votes`).
		WithArgs(voteID, roastID, "fp1").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := r.CastVote(context.Background(), voteID, roastID, "fp1")
	require.ErrorIs(t, err, errs.ErrAlreadyVoted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepo_CastVote_UnknownRoast(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewVoteRepo(db)

	voteID := uuid.Must(uuid.NewV4())
	roastID := uuid.Must(uuid.NewV4())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO votes`).
		WithArgs(voteID, roastID, "fp1").
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := r.CastVote(context.Background(), voteID, roastID, "fp1")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestVoteRepo_CastVote_IncrementErrorRollsBack(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewVoteRepo(db)

	voteID := uuid.Must(uuid.NewV4())
	roastID := uuid.Must(uuid.NewV4())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO votes`).
		WithArgs(voteID, roastID, "fp1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`UPDATE roasts SET votes = votes \+ 1`).
		WithArgs(roastID).
		WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	_, err := r.CastVote(context.Background(), voteID, roastID, "fp1")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepo_HasVoted(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewVoteRepo(db)

	roastID := uuid.Must(uuid.NewV4())
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(roastID, "fp1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	voted, err := r.HasVoted(context.Background(), roastID, "fp1")
	require.NoError(t, err)
	require.True(t, voted)
}

func TestVoteRepo_CountSince(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewVoteRepo(db)

	since := time.Now().Add(-time.Hour)
	mock.ExpectQuery(`SELECT count\(\*\) FROM votes WHERE fingerprint=\$1 AND created_at >= \$2`).
		WithArgs("fp1", since).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(19))

	n, err := r.CountSince(context.Background(), "fp1", since)
	require.NoError(t, err)
	require.Equal(t, 19, n)
}
