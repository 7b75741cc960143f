package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/momeni/catways/pkg/core/repo"
	"gorm.io/gorm"
)

// Conn represents a single database connection which is taken from
// a Pool. It embeds the *gorm.DB, so repository packages may use it
// like GORM.
type Conn struct {
	*gorm.DB
}

type TxHandler = repo.TxHandler

// Tx begins a READ-COMMITTED transaction (the PostgreSQL default),
// runs f, and commits the transaction if f returns nil.
// Otherwise, or if f panics, the transaction is rolled back.
func (c *Conn) Tx(ctx context.Context, f TxHandler) error {
	return c.TxWithIsolation(ctx, repo.DefaultIsolation, f)
}

// TxWithIsolation is like Tx, but begins the transaction with the
// given isolation level. The PostgreSQL errors of f or the commit
// operation are classified using the MapError function, so a
// serialization failure is reported as a cerr.Conflict error which
// wraps the model.ErrConcurrentUpdate.
func (c *Conn) TxWithIsolation(
	ctx context.Context, level repo.IsolationLevel, f TxHandler,
) (err error) {
	var opts *sql.TxOptions
	if l, ok := isolationLevels[level]; ok {
		opts = &sql.TxOptions{Isolation: l}
	}
	tx := c.DB.WithContext(ctx).Begin(opts)
	if err = tx.Error; err != nil {
		return fmt.Errorf("begin %v tx: %w", level, err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = tx.Rollback().Error
			if err == nil {
				err = fmt.Errorf("panicked: %v", r)
				return
			}
			err = fmt.Errorf("panicked: %v, rollback: %w", r, err)
			return
		}
		if err != nil {
			if err2 := tx.Rollback().Error; err2 != nil {
				err = fmt.Errorf(
					"handler: %w, rollback: %w", MapError(err), err2,
				)
				return
			}
			err = fmt.Errorf("handler: %w", MapError(err))
			return
		}
		err = tx.Commit().Error
		if err != nil {
			err = fmt.Errorf("commit: %w", MapError(err))
		}
	}()
	tt := &Tx{DB: tx}
	return f(ctx, tt)
}

var isolationLevels = map[repo.IsolationLevel]sql.IsolationLevel{
	repo.ReadCommitted:  sql.LevelReadCommitted,
	repo.RepeatableRead: sql.LevelRepeatableRead,
	repo.Serializable:   sql.LevelSerializable,
}

func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tt := c.DB.WithContext(ctx).Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, MapError(err)
	}
	return tt.RowsAffected, nil
}

func (c *Conn) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	rows, err := c.DB.WithContext(ctx).Raw(sql, args...).Rows()
	return rowsAdapter{rows}, MapError(err)
}

func (c *Conn) IsConn() {
}

// GORM returns the embedded *gorm.DB instance, configuring it
// to operate on the given ctx context (in a gorm.Session).
func (c *Conn) GORM(ctx context.Context) *gorm.DB {
	return c.DB.WithContext(ctx)
}
