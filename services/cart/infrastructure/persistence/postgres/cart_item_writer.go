package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	cartdomain "github.com/ghuser/reactiveshop/services/cart/domain"
	"github.com/ghuser/reactiveshop/services/cart/domain/models"
)

const (
	cartItemTable        = "cart_item"
	uniqueLineConstraint = "cart_item_cart_id_item_id_key"
	pgUniqueViolation    = "23505"
)

const insertCartItem = `INSERT INTO cart_item (quantity, cart_id, item_id) VALUES ($1, $2, $3) RETURNING id`

// CartItemWriter implements repositories.EntityWriter.
type CartItemWriter struct {
	conn Querier
}

// NewCartItemWriter returns a writer issuing statements through conn.
func NewCartItemWriter(conn Querier) *CartItemWriter {
	return &CartItemWriter{conn: conn}
}

// Insert stores line and returns a copy carrying the new id. A unique
// violation on (cart_id, item_id) is reported as ErrDuplicateLine.
func (w *CartItemWriter) Insert(ctx context.Context, line *models.CartItem) (*models.CartItem, error) {
	var id int64
	err := w.conn.QueryRowContext(ctx, insertCartItem, line.Quantity, line.CartID, line.ItemID).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == uniqueLineConstraint {
			return nil, fmt.Errorf("%w: cart %d item %d", cartdomain.ErrDuplicateLine, line.CartID, line.ItemID)
		}
		return nil, fmt.Errorf("insert cart item: %w", err)
	}

	stored := *line
	stored.ID = id
	return &stored, nil
}

// UpdateColumns issues a single UPDATE of the named columns keyed by id.
// Identifiers are quoted; values are bound as parameters.
func (w *CartItemWriter) UpdateColumns(ctx context.Context, table string, id int64, columns map[string]any) error {
	query, args, err := buildUpdate(table, id, columns)
	if err != nil {
		return err
	}

	res, err := w.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: rows affected: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", cartdomain.ErrCartItemNotFound, table, id)
	}
	return nil
}

func buildUpdate(table string, id int64, columns map[string]any) (string, []any, error) {
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("update %s: no columns", table)
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	args := make([]any, 0, len(names)+1)
	b.WriteString("UPDATE ")
	b.WriteString(pgx.Identifier{table}.Sanitize())
	b.WriteString(" SET ")
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		args = append(args, columns[name])
		b.WriteString(pgx.Identifier{name}.Sanitize())
		b.WriteString(" = $")
		b.WriteString(strconv.Itoa(len(args)))
	}
	args = append(args, id)
	b.WriteString(` WHERE "id" = $`)
	b.WriteString(strconv.Itoa(len(args)))

	return b.String(), args, nil
}
