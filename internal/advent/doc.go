// Package advent defines the data model of the advent calendar tracker.
//
// Members are ticket registrations grouped into named groups. DayData holds the
// win groups drawn on one calendar day, and WinEntry is the derived, display-only
// record of one registered ticket matching one drawn number. Ticket numbers are
// always compared as exact strings; leading zeros are significant.
package advent
