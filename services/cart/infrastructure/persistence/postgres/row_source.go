// Package postgres implements the cart context's storage ports on
// database/sql with the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"iter"

	"github.com/ghuser/reactiveshop/services/cart/domain/repositories"
)

// Querier is the subset of *sql.DB and *sql.Tx the cart storage needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SQLRowSource implements repositories.RowSource.
type SQLRowSource struct {
	conn Querier
}

// NewSQLRowSource returns a row source reading through conn.
func NewSQLRowSource(conn Querier) *SQLRowSource {
	return &SQLRowSource{conn: conn}
}

// Query runs query with args bound as parameters when the sequence is first
// ranged over. Each row is scanned into a Row keyed by result column name.
func (s *SQLRowSource) Query(ctx context.Context, query string, args ...any) iter.Seq2[repositories.Row, error] {
	return func(yield func(repositories.Row, error) bool) {
		rows, err := s.conn.QueryContext(ctx, query, args...)
		if err != nil {
			yield(nil, fmt.Errorf("query rows: %w", err))
			return
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			yield(nil, fmt.Errorf("read columns: %w", err))
			return
		}

		for rows.Next() {
			vals := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range vals {
				ptrs[i] = &vals[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				yield(nil, fmt.Errorf("scan row: %w", err))
				return
			}

			row := make(repositories.Row, len(cols))
			for i, c := range cols {
				row[c] = vals[i]
			}
			if !yield(row, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("iterate rows: %w", err))
		}
	}
}
