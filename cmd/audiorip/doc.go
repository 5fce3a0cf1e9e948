// Command audiorip rips audio CD tracks to raw PCM or WAVE files.
//
// Running audiorip without a subcommand rips every track of the disc in the
// configured drive. Subcommands inspect the disc (toc, status), control the
// drive (spindown, eject), check readiness (check), browse past rips
// (history), validate output files (verify), and manage the configuration
// file (config).
package main
