package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pins several pool connections open at once so each is a distinct sqlite
// connection, then checks that the DSN pragmas took effect on all of them.
func TestOpen_PragmasApplyToAllConnections(t *testing.T) {
	const poolSize = 4

	db, err := Open(filepath.Join(t.TempDir(), "test.db"), Options{
		MaxOpenConns: poolSize,
		MaxIdleConns: poolSize,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	conns := make([]*sql.Conn, 0, poolSize)
	for i := 0; i < poolSize; i++ {
		conn, err := db.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, conn)
	}
	t.Cleanup(func() {
		for _, conn := range conns {
			_ = conn.Close()
		}
	})

	for i, conn := range conns {
		var foreignKeys int
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&foreignKeys))
		assert.Equal(t, 1, foreignKeys, "connection %d must enforce foreign keys", i)

		var busyTimeout int
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&busyTimeout))
		assert.Equal(t, 5000, busyTimeout, "connection %d must wait on a locked database", i)
	}
}

func TestOpen_ForeignKeysEnforcedAcrossPool(t *testing.T) {
	const poolSize = 4

	db, err := Open(filepath.Join(t.TempDir(), "test.db"), Options{
		MaxOpenConns: poolSize,
		MaxIdleConns: poolSize,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewChoiceRepository(db).Init(ctx))

	conns := make([]*sql.Conn, 0, poolSize)
	for i := 0; i < poolSize; i++ {
		conn, err := db.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, conn)
	}
	t.Cleanup(func() {
		for _, conn := range conns {
			_ = conn.Close()
		}
	})

	// no user 999 exists; the orphan insert must fail on every connection
	for i, conn := range conns {
		_, err := conn.ExecContext(ctx, `
INSERT INTO choices (user_id, period, question, selected_answer, score, created_at)
VALUES (999, 'Medieval', 'q', 'A) x', 0, ?)`,
			time.Now().UTC(),
		)
		assert.Error(t, err, "connection %d accepted an orphaned choice", i)
	}
}
