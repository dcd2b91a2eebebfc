package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/logging"
	"github.com/rshade/footprint/internal/scenario"
	"github.com/rshade/footprint/internal/tui"
)

// ErrPartialFootprint is returned when some categories of a scenario could
// not be calculated. The remaining categories are still printed.
var ErrPartialFootprint = errors.New("footprint is incomplete")

// ExitCodePartialFootprint is the process exit code for ErrPartialFootprint.
const ExitCodePartialFootprint = 2

// NewTotalCmd creates the total command, which evaluates a scenario file.
func NewTotalCmd() *cobra.Command {
	var (
		file   string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Total footprint of every category in a scenario file",
		Long: `Reads a scenario file with one optional section per category (house, flight,
car, motorbike, bus_rail), calculates each section and prints the breakdown.

Sections that fail validation or calculation are skipped and listed below the
table; the remaining categories still count towards the total. Use --strict to
exit with status 2 when any section fails.`,
		Example: `  footprint total -f household.yaml
  footprint total -f household.yaml --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTotal(cmd, file, strict)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario file (YAML)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any category cannot be calculated")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runTotal(cmd *cobra.Command, file string, strict bool) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	sc, err := scenario.Load(file)
	if err != nil {
		return err
	}

	state, report, applyErr := sc.Evaluate(ctx)
	log.Debug().Ctx(ctx).
		Str("file", file).
		Int("recorded", len(report.Recorded)).
		Int("failed", len(report.Failed)).
		Msg("scenario evaluated")
	if errors.Is(applyErr, scenario.ErrEmptyScenario) {
		return applyErr
	}

	res := newTotalResult(sc.Name, state, report.Failed)
	if err = renderTotalOutput(cmd, res); err != nil {
		return err
	}

	if strict && !report.OK() {
		return fmt.Errorf("%w: %d of %d categories failed: %w",
			ErrPartialFootprint, len(report.Failed), len(report.Failed)+len(report.Recorded), applyErr)
	}
	return nil
}

// renderTotalOutput routes a total to JSON, a styled summary or a plain table.
func renderTotalOutput(cmd *cobra.Command, res totalResult) error {
	w := cmd.OutOrStdout()
	precision := config.GetOutputPrecision()
	format := outputFormat(cmd)
	if format == outputFormatJSON {
		return writeJSON(w, res)
	}

	switch tui.DetectOutputMode(false, false, true) {
	case tui.OutputModeStyled, tui.OutputModeInteractive:
		return renderStyledTotal(w, precision, res)
	default:
		return renderTotal(w, format, precision, res)
	}
}

const styledWidth = 80

func renderStyledTotal(w io.Writer, precision int, res totalResult) error {
	t := tui.NewBreakdownTable(res.Categories, precision)
	fmt.Fprintln(w, t.View())
	fmt.Fprintln(w, tui.RenderTotalSummary(res.Categories, precision, styledWidth))
	for _, c := range emissions.Categories() {
		if msg, ok := res.Failed[c.String()]; ok {
			fmt.Fprintln(w, tui.WarningStyle.Render(fmt.Sprintf("Skipped %s: %s", c.Label(), msg)))
		}
	}
	return nil
}
