// Package sales embeds the goose migrations of the sales schema.
package sales

import "embed"

//go:embed *.sql
var FS embed.FS
