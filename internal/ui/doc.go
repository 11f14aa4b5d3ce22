// Package ui implements the claimdesk terminal interface on Bubble Tea.
//
// The Model is the single Bubble Tea root. It owns four views: the auth
// forms (sign in, register, forgot password, OTP), the claim list with a
// detail pane, the multi-step intake form (used for both new claims and
// editing fetched ones), and the customer browser. Modal overlays (help,
// filters, column layout) render on top of whichever view is active.
//
// Data flows one way: the background poller writes claim snapshots into
// the shared state store, and the UI reads a fresh snapshot on every tick.
// API calls triggered by the user (auth, section saves, manual refresh)
// run as Bubble Tea commands so the event loop never blocks, and report
// back through typed messages.
//
// The claims table implements gridstate.GridAPI. Layout edits made in the
// column picker are pushed to storage through a debounced autosaver, and
// the saved layout is overlaid onto the default columns at startup.
package ui
