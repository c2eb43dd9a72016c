// Package tracker ties acquisition, matching, notification and persistence
// together.
//
// A Tracker owns the stored state. Check runs one acquisition through the
// pipeline, replaces the stored day data, matches it against the registered
// tickets and notifies about wins that were not reported before. Only one
// check runs at a time; a concurrent call fails with ErrCheckInProgress.
// Member and group edits are applied to the stored state and may happen while
// a check is fetching.
package tracker
