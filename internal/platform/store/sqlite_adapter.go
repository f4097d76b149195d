package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"prenoms/internal/platform/store/sqlite"
)

// sqliteAdapter wraps sqlite.DB and implements RowQuerier + TxRunner
// repos write postgres-style placeholders; rebind rewrites them to the
// sqlite ?NNN ordinal form before execution
type sqliteAdapter struct {
	d *sqlite.DB
}

func newSQLiteAdapter(d *sqlite.DB) *sqliteAdapter { return &sqliteAdapter{d: d} }

func (a *sqliteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.d == nil || a.d.SQL == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.d.SQL.PingContext(ctx)
}

func (a *sqliteAdapter) Close() error { return a.d.Close() }

func (a *sqliteAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := a.d.SQL.ExecContext(ctx, rebind(q), args...)
	a.emit(ctx, q, args, start, err)
	return sqlTag{res: res}, err
}

func (a *sqliteAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.d.SQL.QueryContext(ctx, rebind(q), args...)
	a.emit(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return &sqlRows{r: rs}, nil
}

func (a *sqliteAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	start := time.Now()
	r := a.d.SQL.QueryRowContext(ctx, rebind(q), args...)
	return sqlRow{
		r: r,
		after: func(scanErr error) {
			a.emit(ctx, q, args, start, scanErr)
		},
	}
}

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	q := sqliteTxQuerier{
		tx:     tx,
		tracer: a.d.Tracer,
		slowUS: int64(a.d.SlowMs) * 1000,
	}
	if err := fn(q); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (a *sqliteAdapter) emit(ctx context.Context, q string, args []any, start time.Time, err error) {
	if a == nil || a.d == nil || a.d.Tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	slow := a.d.SlowMs >= 0 && elapsedUS >= int64(a.d.SlowMs)*1000
	a.d.Tracer.OnQuery(ctx, sqlite.QueryEvent{
		SQL:       q,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      slow,
	})
}

// rebind rewrites $N placeholders to the ?N ordinal form sqlite accepts.
// The numbered form keeps argument reuse ($1 ... $1) working unchanged.
// Dollar signs inside single-quoted literals are left alone
func rebind(q string) string {
	if !strings.ContainsRune(q, '$') {
		return q
	}
	var b strings.Builder
	b.Grow(len(q))
	inLit := false
	for i := 0; i < len(q); i++ {
		c := q[i]
		switch {
		case c == '\'':
			inLit = !inLit
			b.WriteByte(c)
		case c == '$' && !inLit && i+1 < len(q) && q[i+1] >= '0' && q[i+1] <= '9':
			b.WriteByte('?')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// adapters for database/sql to our tiny Row/Rows/CommandTag

type sqlRow struct {
	r     *sql.Row
	after func(error)
}

func (x sqlRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type sqlRows struct{ r *sql.Rows }

func (x *sqlRows) Next() bool            { return x.r.Next() }
func (x *sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *sqlRows) Err() error            { return x.r.Err() }
func (x *sqlRows) Close()                { _ = x.r.Close() }
func (x *sqlRows) Columns() []string {
	cols, err := x.r.Columns()
	if err != nil {
		return nil
	}
	return cols
}

// sqlTag wraps sql.Result so we satisfy our CommandTag interface
type sqlTag struct{ res sql.Result }

func (t sqlTag) RowsAffected() int64 {
	if t.res == nil {
		return 0
	}
	n, err := t.res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

func (t sqlTag) String() string { return fmt.Sprintf("EXEC %d", t.RowsAffected()) }

// sqliteTxQuerier satisfies RowQuerier inside a Tx
// it mirrors sqliteAdapter emit behavior so queries inside transactions are also traced
type sqliteTxQuerier struct {
	tx     *sql.Tx
	tracer sqlite.QueryTracer
	slowUS int64
}

func (t sqliteTxQuerier) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, rebind(q), args...)
	t.emit(ctx, q, args, start, err)
	return sqlTag{res: res}, err
}

func (t sqliteTxQuerier) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.tx.QueryContext(ctx, rebind(q), args...)
	t.emit(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return &sqlRows{r: rs}, nil
}

func (t sqliteTxQuerier) QueryRow(ctx context.Context, q string, args ...any) Row {
	start := time.Now()
	r := t.tx.QueryRowContext(ctx, rebind(q), args...)
	return sqlRow{
		r: r,
		after: func(scanErr error) {
			t.emit(ctx, q, args, start, scanErr)
		},
	}
}

func (t sqliteTxQuerier) emit(ctx context.Context, q string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	slow := t.slowUS >= 0 && elapsedUS >= t.slowUS
	t.tracer.OnQuery(ctx, sqlite.QueryEvent{
		SQL:       q,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      slow,
	})
}
