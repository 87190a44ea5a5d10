// Package backend defines the contract implemented by every code generator
// that lowers an [il.Block] into target-language source text, together with
// the scoped symbol table the generators resolve names against.
//
// A [NameRegistry] maps identifiers to their declared [il.Type]. Generators
// descend into nested blocks by cloning the registry, so a declaration made
// inside a block is never visible after that block ends, and nothing a
// generator declares is visible to the registry the caller passed in.
//
// Lowering failures are reported with the typed errors [NamePresentError],
// [NameNotFoundError] and [UnsupportedConstructError]. Each matches its
// sentinel with [errors.Is] and implements [slog.LogValuer].
package backend
