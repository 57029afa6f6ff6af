package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ghuser/reactiveshop/services/cart/domain/repositories"
)

// ErrMalformedRow is returned when a row lacks a column or holds a value of
// an unsupported type.
var ErrMalformedRow = errors.New("malformed row")

// Int64Column reads an integer column. It accepts the integer widths the pgx
// database/sql driver produces.
func Int64Column(row repositories.Row, name string) (int64, error) {
	v, err := column(row, name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	default:
		return 0, typeError(name, v)
	}
}

// StringColumn reads a text column.
func StringColumn(row repositories.Row, name string) (string, error) {
	v, err := column(row, name)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", typeError(name, v)
	}
}

// DecimalColumn reads a numeric column without going through float64 when
// the driver hands back text.
func DecimalColumn(row repositories.Row, name string) (decimal.Decimal, error) {
	v, err := column(row, name)
	if err != nil {
		return decimal.Zero, err
	}
	switch d := v.(type) {
	case decimal.Decimal:
		return d, nil
	case string:
		return parseDecimal(name, d)
	case []byte:
		return parseDecimal(name, string(d))
	case float64:
		return decimal.NewFromFloat(d), nil
	default:
		return decimal.Zero, typeError(name, v)
	}
}

func column(row repositories.Row, name string) (any, error) {
	v, ok := row[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing column %q", ErrMalformedRow, name)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: column %q is null", ErrMalformedRow, name)
	}
	return v, nil
}

func parseDecimal(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: column %q: %w", ErrMalformedRow, name, err)
	}
	return d, nil
}

func typeError(name string, v any) error {
	return fmt.Errorf("%w: column %q has unsupported type %T", ErrMalformedRow, name, v)
}
