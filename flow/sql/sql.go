// Package sql adapts database/sql queries into lazy sources for flow
// pipelines and recursive traversals.
package sql

import (
	"context"
	"database/sql"
	"iter"

	"github.com/lguimbarda/treeflow/flow/core"
)

// DefaultBufferSize is re-exported from core for convenience.
const DefaultBufferSize = core.DefaultBufferSize

// Scanner converts the current row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Query creates a Stream that runs query each time it is emitted. Scan
// errors are emitted as error Results and the stream continues.
func Query[T any](db *sql.DB, query string, scanner Scanner[T], args ...any) core.Stream[T] {
	return QueryBuffered(db, query, scanner, DefaultBufferSize, args...)
}

// QueryBuffered is Query with an explicit output buffer.
func QueryBuffered[T any](db *sql.DB, query string, scanner Scanner[T], bufferSize int, args ...any) core.Stream[T] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[T] {
		out := make(chan core.Result[T], bufferSize)
		go func() {
			defer close(out)
			send := func(res core.Result[T]) bool {
				select {
				case <-ctx.Done():
					return false
				case out <- res:
					return true
				}
			}

			rows, err := db.QueryContext(ctx, query, args...)
			if err != nil {
				send(core.Err[T](err))
				return
			}
			defer rows.Close()

			for rows.Next() {
				value, err := scanner(rows)
				if err != nil {
					if !send(core.Err[T](err)) {
						return
					}
					continue
				}
				if !send(core.Ok(value)) {
					return
				}
			}
			if err := rows.Err(); err != nil {
				send(core.Err[T](err))
			}
		}()
		return out
	})
}

// Rows returns a fallible sequence over the rows of query. The query runs
// when the sequence is first pulled, not when Rows is called, and the rows
// are closed as soon as iteration stops. The sequence ends after the first
// error, whether from the query, a scan or the driver.
func Rows[T any](ctx context.Context, db *sql.DB, query string, scanner Scanner[T], args ...any) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(zero, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			value, err := scanner(rows)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(value, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, err)
		}
	}
}

// Exec runs a statement once per emission and emits its result.
func Exec(db *sql.DB, query string, args ...any) core.Stream[ExecResult] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[ExecResult] {
		out := make(chan core.Result[ExecResult], 1)
		defer close(out)

		result, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			out <- core.Err[ExecResult](err)
			return out
		}
		lastID, _ := result.LastInsertId()
		affected, _ := result.RowsAffected()
		out <- core.Ok(ExecResult{LastInsertId: lastID, RowsAffected: affected})
		return out
	})
}

// ExecResult is the outcome of Exec.
type ExecResult struct {
	LastInsertId int64
	RowsAffected int64
}
