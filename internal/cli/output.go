package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/footprint"
	"github.com/rshade/footprint/internal/greenops"
)

// Output formats accepted by --output.
const (
	outputFormatTable = "table"
	outputFormatJSON  = "json"
)

const tabPadding = 2

// validateOutputFlag rejects unknown --output values before any work is done.
func validateOutputFlag(cmd *cobra.Command) error {
	format, _ := cmd.Flags().GetString("output")
	switch format {
	case "", outputFormatTable, outputFormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use table or json)", format)
	}
}

// outputFormat returns --output when given, otherwise the configured default.
func outputFormat(cmd *cobra.Command) string {
	if format, _ := cmd.Flags().GetString("output"); format != "" {
		return format
	}
	return config.GetDefaultOutputFormat()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// categoryResult is the JSON shape of a single calculation.
type categoryResult struct {
	Category emissions.Category `json:"category"`
	Tonnes   float64            `json:"tonnes_co2e"`
	Input    emissions.Input    `json:"input"`
}

// renderCategoryResult prints the result of one calculator.
func renderCategoryResult(cmd *cobra.Command, in emissions.Input, tonnes float64) error {
	w := cmd.OutOrStdout()
	if outputFormat(cmd) == outputFormatJSON {
		return writeJSON(w, categoryResult{Category: in.Category(), Tonnes: tonnes, Input: in})
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", in.Category().Label(),
		greenops.FormatTonnes(tonnes, config.GetOutputPrecision()))
	return err
}

// totalResult is the JSON shape of a full footprint.
type totalResult struct {
	Categories   footprint.State             `json:"categories"`
	Total        float64                     `json:"total_tonnes_co2e"`
	Equivalency  *greenops.EquivalencyOutput `json:"equivalency,omitempty"`
	OffsetTrees  int64                       `json:"offset_seedlings"`
	Failed       map[string]string           `json:"failed,omitempty"`
	ScenarioName string                      `json:"scenario,omitempty"`
}

func newTotalResult(name string, state footprint.State, failed map[emissions.Category]error) totalResult {
	res := totalResult{
		Categories:   state,
		Total:        state.Total(),
		OffsetTrees:  greenops.OffsetSeedlings(state.Total()),
		ScenarioName: name,
	}
	if eq, err := greenops.FromTonnes(state.Total()); err == nil && !eq.IsEmpty {
		res.Equivalency = &eq
	}
	if len(failed) > 0 {
		res.Failed = make(map[string]string, len(failed))
		for c, err := range failed {
			res.Failed[c.String()] = err.Error()
		}
	}
	return res
}

// renderTotal prints the per-category breakdown and the total.
func renderTotal(w io.Writer, format string, precision int, res totalResult) error {
	if format == outputFormatJSON {
		return writeJSON(w, res)
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Category\tTonnes CO2e\tShare")
	fmt.Fprintln(tw, "--------\t-----------\t-----")
	for _, c := range emissions.Categories() {
		v := res.Categories.Get(c)
		share := "-"
		if res.Total > 0 {
			share = greenops.FormatFloat(v/res.Total*100, 1) + "%"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Label(), greenops.FormatFloat(v, precision), share)
	}
	compact := ""
	if res.Equivalency != nil {
		compact = res.Equivalency.CompactText
	}
	fmt.Fprintf(tw, "Total\t%s\t%s\n", greenops.FormatFloat(res.Total, precision), compact)
	if err := tw.Flush(); err != nil {
		return err
	}

	if res.Equivalency != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, res.Equivalency.DisplayText)
	}
	if res.OffsetTrees > 0 {
		fmt.Fprintf(w, "Offsetting this takes about %s tree seedlings grown for 10 years.\n",
			greenops.FormatNumber(res.OffsetTrees))
	}
	for _, c := range emissions.Categories() {
		if msg, ok := res.Failed[c.String()]; ok {
			fmt.Fprintf(w, "Skipped %s: %s\n", c.Label(), msg)
		}
	}
	return nil
}
