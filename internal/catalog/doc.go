// Package catalog persists rip history in SQLite.
//
// Each invocation of the rip command opens a session (identified by a UUID)
// and records one row per attempted track with its frame range, output path,
// byte count, and outcome. The history command reads these rows back. The
// store applies WAL pragmas and an embedded schema guarded by a version row;
// a mismatched version is reported instead of silently migrated.
package catalog
