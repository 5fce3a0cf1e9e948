package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"audiorip/internal/disc"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

var statusStyles = map[statusKind]struct{ label, color string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

// renderStatusLine formats "  label: [KIND] message", padding the label to
// line results up and colouring the whole line when colorize is set.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	line := fmt.Sprintf("  %-18s [%s]", label+":", style.label)
	if message != "" {
		line += " " + message
	}
	if colorize {
		line = style.color + line + ansiReset
	}
	return line
}

// driveStatusKind classifies a CDROM_DRIVE_STATUS result for display.
func driveStatusKind(status disc.DriveStatus) statusKind {
	switch status {
	case disc.DriveStatusDiscOK:
		return statusOK
	case disc.DriveStatusTrayOpen, disc.DriveStatusNoDisc, disc.DriveStatusNotReady:
		return statusWarn
	default:
		return statusInfo
	}
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
