// Package storage provides the key-value persistence adapter behind all
// claimdesk state snapshots.
//
// # Overview
//
// Two namespaces are exposed:
//
//   - Durable: survives restarts. One JSON file per key under the state
//     directory. Used for the auth token and per-view grid layouts.
//   - Session: in-process only, discarded on exit. Used for the in-progress
//     claim form aggregate.
//
// # Semantics
//
// The store is a best-effort mirror, never the owner of application state:
//
//   - Set with a nil value removes the key (explicit clear signal)
//   - Get treats a missing key and an unreadable value identically: absent
//   - A failed write is dropped and logged, never surfaced to the caller
//   - Terminate clears a whole namespace, or both when none is given
//
// No operation returns an error. The worst case is a snapshot that fails to
// persist, which the user recovers from by repeating the action.
package storage
