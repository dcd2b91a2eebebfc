package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how a command renders results.
type OutputMode int

const (
	// OutputModePlain is unstyled text, used for pipes and CI logs.
	OutputModePlain OutputMode = iota
	// OutputModeStyled adds lipgloss styling but no interactivity.
	OutputModeStyled
	// OutputModeInteractive runs a Bubble Tea program.
	OutputModeInteractive
)

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// DetectOutputMode picks a mode for stdout. plain wins over everything;
// NO_COLOR and CI disable styling; an interactive session also needs stdin
// to be a terminal.
func DetectOutputMode(plain, noColor, noInteractive bool) OutputMode {
	return detectOutputMode(plain, noColor, noInteractive, IsTTY(), term.IsTerminal(int(os.Stdin.Fd())), os.LookupEnv)
}

func detectOutputMode(
	plain, noColor, noInteractive, stdoutTTY, stdinTTY bool,
	lookupEnv func(string) (string, bool),
) OutputMode {
	if plain || !stdoutTTY {
		return OutputModePlain
	}
	if _, ok := lookupEnv("NO_COLOR"); ok || noColor {
		return OutputModePlain
	}
	if v, ok := lookupEnv("CI"); ok && v != "" && v != "false" {
		return OutputModePlain
	}
	if noInteractive || !stdinTTY {
		return OutputModeStyled
	}
	return OutputModeInteractive
}
