// Package formstate implements the multi-step claim intake state machine.
//
// # Overview
//
// The flow walks four sections in a fixed order:
//
//	customerDetails → tyreDetails → vehicleDetails → issuance → (complete)
//
// Forward transitions happen only through Advance; every section except the
// first can step backward through Back. Completing the final section exits
// the flow and resets the aggregate to defaults.
//
// # Advance Semantics
//
// Advance is the only operation with side effects beyond the store itself:
//
//  1. Required fields of the active section are validated. Failures block
//     the transition and are returned per field; nothing is submitted.
//  2. If the section's data equals the last successfully submitted snapshot
//     for that section, the submit is skipped (nothing changed).
//  3. Otherwise the section is posted to the per-section save endpoint.
//     A backend failure aborts the transition: the active section, the
//     aggregate, and the submitted snapshot are all left untouched, so the
//     user retries by advancing again.
//
// # Session Mirror
//
// The whole aggregate is mirrored to session-scoped storage after every
// successful mutation under a fixed key. Begin merges any existing mirror
// over fresh defaults, so a field added after the snapshot was written gets
// its default instead of going missing. Reset clears the mirror.
package formstate
