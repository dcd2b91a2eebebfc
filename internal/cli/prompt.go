package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rshade/footprint/internal/tui"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "Y")
	Accepted bool
	// Cancelled is true if reading the answer failed
	Cancelled bool
}

// ConfirmDonation asks the user to confirm a donation before it is sent.
// It returns immediately with Accepted=false in non-interactive (non-TTY)
// environments; callers pass --yes there instead.
//
// The prompt defaults to "No" when the user presses Enter without input.
// Valid inputs: "y", "Y", "yes", "Yes", "YES" for acceptance; anything else declines.
func ConfirmDonation(writer io.Writer, reader io.Reader, summary string) PromptResult {
	if !tui.IsTTY() {
		return PromptResult{Accepted: false}
	}
	return confirm(writer, reader, summary)
}

// confirm prints summary as a y/N question and reads one line of input.
func confirm(writer io.Writer, reader io.Reader, summary string) PromptResult {
	fmt.Fprintf(writer, "? %s [y/N] ", summary)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		// EOF or error - treat as cancelled
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error - treat as decline (user pressed Ctrl+D)
		return PromptResult{Accepted: false}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{Accepted: false}
	}
}
