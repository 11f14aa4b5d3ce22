// Package state provides the thread-safe snapshot store shared between the
// background claims poller and the UI.
//
// # Overview
//
// The Store mediates between a single producer (the poller, which fetches
// the claim list on a fixed cadence) and the UI's read path. Updates replace
// the whole snapshot; on a poll failure the previous data is kept and the
// error recorded, so the UI always has the most recent successful data to
// display alongside the failure.
//
// Both Update and Snapshot copy the claim slice, so neither side can mutate
// data the other is holding. The zero-value Store is ready to use.
package state
