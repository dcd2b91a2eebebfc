package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/geocode"
	"github.com/rshade/footprint/internal/greenops"
	"github.com/rshade/footprint/internal/units"
)

// ErrPlaceNotFound is returned when a location query has no match.
var ErrPlaceNotFound = errors.New("no matching place")

// NewLocateCmd creates the locate command, which searches for places used
// by the flight form. With --to it prints the great-circle distance between
// the best matches.
func NewLocateCmd() *cobra.Command {
	var (
		to    string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "locate <query>",
		Short: "Search for a location",
		Example: `  footprint locate London
  footprint locate "New York" --to London`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			client := newGeocodeClient(config.GetGlobalConfig())
			if to != "" {
				return runLocateDistance(cmd, client, query, to)
			}
			return runLocate(cmd, client, query, limit)
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "second location; prints the distance between the two")
	cmd.Flags().IntVar(&limit, "limit", 5, "maximum results to print (0 for all)")
	return cmd
}

func runLocate(cmd *cobra.Command, client *geocode.Client, query string, limit int) error {
	places, err := client.Search(cmd.Context(), query)
	if err != nil {
		return err
	}
	if limit > 0 && len(places) > limit {
		places = places[:limit]
	}

	if outputFormat(cmd) == outputFormatJSON {
		if places == nil {
			places = []geocode.Place{}
		}
		return writeJSON(cmd.OutOrStdout(), places)
	}
	if len(places) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No places found for %q (queries need at least %d characters).\n",
			query, geocode.MinQueryLength)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "Place\tLat\tLon")
	fmt.Fprintln(w, "-----\t---\t---")
	for _, p := range places {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", p.DisplayName, p.Lat, p.Lon)
	}
	return w.Flush()
}

// distanceResult is the JSON shape of "locate --to".
type distanceResult struct {
	From       geocode.Place `json:"from"`
	To         geocode.Place `json:"to"`
	Kilometres float64       `json:"km"`
	Miles      float64       `json:"miles"`
}

func runLocateDistance(cmd *cobra.Command, client *geocode.Client, fromQuery, toQuery string) error {
	ctx := cmd.Context()
	from, ok, err := client.First(ctx, fromQuery)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrPlaceNotFound, fromQuery)
	}
	dest, ok, err := client.First(ctx, toQuery)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrPlaceNotFound, toQuery)
	}

	km := geocode.DistanceKm(from, dest)
	miles, err := units.Normalize(units.Distance, km, units.Kilometres)
	if err != nil {
		return err
	}
	res := distanceResult{From: from, To: dest, Kilometres: km, Miles: miles}

	if outputFormat(cmd) == outputFormatJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %s km (%s miles)\n",
		from.DisplayName, dest.DisplayName, greenops.FormatFloat(km, 0), greenops.FormatFloat(miles, 0))
	return nil
}
