// Package services defines shared utilities consumed by the rip pipeline and
// the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp rip session IDs, track numbers, and stage
//     names for logging.
//   - Sentinel error markers (device query, read, write) that the typed errors
//     of the toc, extract and container packages match through errors.Is, plus
//     the Wrap helper for everything else.
//   - FailureStatus, which translates a track failure into the status stored
//     in the rip catalog.
package services
