// Package shop embeds the goose migrations for the item and cart tables.
// Both contexts share one migration stream because cart_item references item.
package shop

import "embed"

//go:embed *.sql
var MigrationsFS embed.FS
