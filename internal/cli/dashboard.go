package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/footprint"
	"github.com/rshade/footprint/internal/logging"
	"github.com/rshade/footprint/internal/payment"
	"github.com/rshade/footprint/internal/scenario"
	"github.com/rshade/footprint/internal/tui"
)

// NewDashboardCmd creates the interactive dashboard command.
func NewDashboardCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive footprint dashboard with campaigns and donations",
		Long: `Opens the interactive dashboard: a per-category breakdown you can edit in
place, the total with its equivalencies, the offset campaigns, and a donation
form. Flight locations and car models are looked up online on demand.

When stdout is not a terminal the dashboard falls back to the same output as
"footprint total".`,
		Example: `  footprint dashboard
  footprint dashboard -f household.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "scenario file used to prefill the dashboard")
	return cmd
}

func runDashboard(cmd *cobra.Command, file string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	store := footprint.NewStore()
	inputs := make(map[emissions.Category]emissions.Input)
	name := ""
	var failed map[emissions.Category]error

	if file != "" {
		sc, err := scenario.Load(file)
		if err != nil {
			return err
		}
		name = sc.Name
		report, applyErr := sc.Apply(ctx, store)
		if applyErr != nil && !errors.Is(applyErr, scenario.ErrEmptyScenario) {
			log.Warn().Ctx(ctx).Err(applyErr).Str("file", file).Msg("some categories could not be calculated")
		}
		failed = report.Failed
		for _, in := range sc.Inputs() {
			inputs[in.Category()] = in
		}
	}

	if outputFormat(cmd) == outputFormatJSON || tui.DetectOutputMode(false, false, false) != tui.OutputModeInteractive {
		return renderTotalOutput(cmd, newTotalResult(name, store.Snapshot(), failed))
	}

	opts, err := dashboardOptions(cfg, store, inputs)
	if err != nil {
		return err
	}
	return runDashboardTUI(ctx, opts)
}

// dashboardOptions wires the store, the lookup clients and the donation
// simulator into the dashboard.
func dashboardOptions(
	cfg *config.Config,
	store *footprint.Store,
	inputs map[emissions.Category]emissions.Input,
) (tui.DashboardOptions, error) {
	vehicles, err := newVehicleClient(cfg)
	if err != nil {
		return tui.DashboardOptions{}, err
	}
	return tui.DashboardOptions{
		Store:     store,
		Inputs:    inputs,
		Suggest:   newSuggestFunc(vehicles, newGeocodeClient(cfg)),
		Donations: payment.NewSimulator(payment.WithDelay(time.Duration(cfg.Payment.DelayMS) * time.Millisecond)),
		Currency:  cfg.Payment.Currency,
		Precision: cfg.Output.Precision,
	}, nil
}

func runDashboardTUI(ctx context.Context, opts tui.DashboardOptions) error {
	p := tea.NewProgram(tui.NewDashboardModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
