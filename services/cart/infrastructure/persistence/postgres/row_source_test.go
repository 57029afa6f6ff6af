package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/reactiveshop/services/cart/domain/repositories"
)

func TestSQLRowSource_YieldsRowsByColumnName(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectQuery("SELECT id, name FROM item WHERE id > \\$1").
		WithArgs(int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "Sesame chicken").
			AddRow(int64(2), "Sweet & sour beef"))

	var got []repositories.Row
	for row, err := range NewSQLRowSource(sqlDB).Query(context.Background(), "SELECT id, name FROM item WHERE id > $1", int64(0)) {
		require.NoError(t, err)
		got = append(got, row)
	}
	require.Len(t, got, 2)
	require.Equal(t, int64(2), got[1]["id"])
	require.Equal(t, "Sweet & sour beef", got[1]["name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRowSource_IsLazy(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	seq := NewSQLRowSource(sqlDB).Query(context.Background(), "SELECT 1")
	require.NoError(t, mock.ExpectationsWereMet(), "no query runs before iteration")
	_ = seq
}

func TestSQLRowSource_QueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	boom := errors.New("relation does not exist")
	mock.ExpectQuery("SELECT").WillReturnError(boom)

	n := 0
	for row, err := range NewSQLRowSource(sqlDB).Query(context.Background(), "SELECT * FROM nowhere") {
		n++
		require.Nil(t, row)
		require.ErrorIs(t, err, boom)
	}
	require.Equal(t, 1, n)
}

func TestSQLRowSource_RowError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).
		AddRow(int64(1)).
		AddRow(int64(2)).
		RowError(1, boom))

	var rows, errs int
	for _, err := range NewSQLRowSource(sqlDB).Query(context.Background(), "SELECT id FROM item") {
		if err != nil {
			errs++
			require.ErrorIs(t, err, boom)
			continue
		}
		rows++
	}
	require.Equal(t, 1, rows)
	require.Equal(t, 1, errs)
}

func TestSQLRowSource_BreakClosesRows(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).
		AddRow(int64(1)).
		AddRow(int64(2)).
		AddRow(int64(3))).
		RowsWillBeClosed()

	for row, err := range NewSQLRowSource(sqlDB).Query(context.Background(), "SELECT id FROM item") {
		require.NoError(t, err)
		require.Equal(t, int64(1), row["id"])
		break
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
