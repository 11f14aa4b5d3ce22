// Package app provides the orchestration layer for the claimdesk application.
//
// It is the composition root: configuration, logging, storage, API clients,
// the shared state stores, and the background poller are created here and
// handed to the UI. Business logic lives in the domain packages; this package
// only wires them together.
//
// The poller goroutine fetches the claim list at a configurable cadence
// (default 30 seconds) once an auth token is available, backing off
// exponentially while the backend is unreachable. The UI reads snapshots
// from the shared state store at its own refresh rate, so slow API calls
// never block input handling.
//
// Fatal errors (unreadable config, bad API base URL) are returned from Run;
// poll failures are recorded on the store and logged, and polling continues.
package app
