package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown at the start of an
// interactive run.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Subtle gradient, cool blues into teal
	lines := []struct {
		text  string
		color string
	}{
		{"        _       _       _               _    ", "#60a5fa"},
		{"  _ __ | | __ _| |_ ___| |__   ___  ___| | __", "#38bdf8"},
		{" | '_ \\| |/ _` | __/ __| '_ \\ / _ \\/ __| |/ /", "#22d3ee"},
		{" | |_) | | (_| | || (__| | | |  __/ (__|   < ", "#2dd4bf"},
		{" | .__/|_|\\__,_|\\__\\___|_| |_|\\___|\\___|_|\\_\\", "#34d399"},
		{" |_|", "#4ade80"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println(termenv.String("  round-trip harness for platform strings  " + version).Faint())
	fmt.Println()
}
