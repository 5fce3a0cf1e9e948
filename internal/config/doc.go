// Package config loads, normalizes, and validates audiorip configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the AUDIORIP_DEVICE environment
// fallback. The Config type centralizes every knob the rip command needs:
// drive behaviour, output naming and format, extraction chunk size, and the
// optional rip catalog.
package config
