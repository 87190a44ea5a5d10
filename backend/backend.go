package backend

import (
	"context"

	"github.com/ardnew/ilc/il"
)

// Backend lowers IL into the source text of one target language.
//
// Compile must not modify b. It may read and clone reg, but declarations
// made while lowering b must never become visible through reg itself.
// An empty block lowers to the empty string.
type Backend interface {
	// Name identifies the target, e.g. "js".
	Name() string

	// Compile returns the generated text for b, or the first error
	// encountered while lowering it.
	Compile(ctx context.Context, b *il.Block, reg *NameRegistry) (string, error)
}
