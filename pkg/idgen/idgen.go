// Package idgen produces short, URL-safe identifiers for skus and line items.
package idgen

import (
	"io"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
)

// Generator returns a fresh identifier on every call.
type Generator interface {
	NewID() string
}

// Func adapts a plain function to Generator.
type Func func() string

// NewID calls f.
func (f Func) NewID() string { return f() }

// ShortUUID returns the default generator: a base57-encoded random UUIDv4
// from an alphabet without look-alike glyphs. The encoding is not padded, so
// an id is 22 characters or occasionally fewer.
func ShortUUID() Generator {
	return Func(shortuuid.New)
}

// FromReader encodes UUIDs built from bytes read from r. With a seeded r the
// sequence of identifiers is reproducible.
func FromReader(r io.Reader) Generator {
	return &readerGenerator{r: r}
}

type readerGenerator struct {
	r io.Reader
}

func (g *readerGenerator) NewID() string {
	u, err := uuid.NewRandomFromReader(g.r)
	if err != nil {
		// Only a broken reader ends up here.
		return shortuuid.New()
	}
	return shortuuid.DefaultEncoder.Encode(u)
}
