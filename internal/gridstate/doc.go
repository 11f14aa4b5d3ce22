// Package gridstate persists and restores the layout of tabular views:
// column order, width, visibility, pinning, sort, group expansion, and
// per-column filter predicates.
//
// # Overview
//
// The live grid is always the source of truth for its own layout. This
// package is a one-directional bridge from the grid's API to durable
// storage and back, never an independent cache. Saves overwrite the whole
// entry (last write wins); restores apply the saved state wholesale.
//
// Column identity is the join key everywhere: defaults, saved state, and
// live state are all matched by column id, never by position, since column
// order itself is user-mutable. Saved columns with unknown ids are ignored
// on restore, which keeps old snapshots compatible with newer column sets.
//
// # Failure Model
//
// No operation in this package returns an error or panics into the caller.
// A grid that is not ready, a missing snapshot, or an unreadable snapshot
// all degrade to "do nothing" with a log line. The worst case is a view
// that comes up with default layout.
package gridstate
