package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY AUTOINCREMENT, code TEXT UNIQUE NOT NULL)`)
	require.NoError(t, err)
	return db
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	d, err = DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, "pgx", d.Driver)

	_, err = DialectFor("oracle")
	assert.Error(t, err)
}

func TestBuilder_Placeholders(t *testing.T) {
	q, _, err := Postgres.Builder().Select("id").From("items").Where("code = ?", "a").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM items WHERE code = $1", q)

	q, _, err = SQLite.Builder().Select("id").From("items").Where("code = ?", "a").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM items WHERE code = ?", q)
}

func TestIsUniqueViolation(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO items (code) VALUES ('a')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO items (code) VALUES ('a')`)
	require.Error(t, err)

	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO items (code) VALUES ('x')`); err != nil {
			return err
		}
		return errors.New("abort")
	})
	assert.EqualError(t, err, "abort")

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n))
	assert.Equal(t, 0, n)

	require.NoError(t, WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO items (code) VALUES ('y')`)
		return err
	}))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n))
	assert.Equal(t, 1, n)
}
