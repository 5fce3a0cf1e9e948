// Package preflight provides readiness checks for the drive, the disc, and
// the paths a rip writes to.
//
// These checks run in two contexts:
//   - The rip command calls RunAll before opening the drive and refuses to
//     start when a required check fails.
//   - The "audiorip check" command prints every result as a table.
package preflight
