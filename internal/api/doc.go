// Package api provides the thin REST client pair for the claims backend.
//
// # Overview
//
// Two clients exist:
//
//   - Client: no credential injection. Serves the authentication lifecycle
//     (login, register, forgot-password, verify-otp).
//   - AuthClient: wraps Client and attaches the bearer token from a
//     TokenSource to every request. Serves claim and customer CRUD.
//
// The bearer token lives in durable storage under a fixed key, written by
// the login flow and read per request, so a restart keeps the session.
//
// # Request Model
//
// Every call takes a context and returns an explicit error. Requests are
// plain JSON over HTTP with a single client-wide timeout; there is no retry
// policy. Failures are surfaced once to the caller, which leaves prior
// state untouched and lets the user retry manually.
package api
