package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/campaign"
)

// ErrCampaignNotFound is returned by "campaigns show" for unknown titles.
var ErrCampaignNotFound = errors.New("campaign not found")

// NewCampaignsListCmd creates the "campaigns list" command.
func NewCampaignsListCmd() *cobra.Command {
	var featured bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List offset campaigns",
		Example: `  footprint campaigns list
  footprint campaigns list --featured --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCampaignsList(cmd, featured)
		},
	}
	cmd.Flags().BoolVar(&featured, "featured", false, "only the campaigns featured on the dashboard")
	return cmd
}

func runCampaignsList(cmd *cobra.Command, featured bool) error {
	campaigns := campaign.All()
	if featured {
		campaigns = campaign.Featured()
	}

	videos := campaign.Videos()

	if outputFormat(cmd) == outputFormatJSON {
		return writeJSON(cmd.OutOrStdout(), campaignList{Campaigns: campaigns, Videos: videos})
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "Title\tOrganizer\tDescription")
	fmt.Fprintln(w, "-----\t---------\t-----------")
	for _, c := range campaigns {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Title, c.Organizer, c.Description)
	}
	if len(videos) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Video\tLink\t")
		fmt.Fprintln(w, "-----\t----\t")
		for _, v := range videos {
			fmt.Fprintf(w, "%s\t%s\t\n", v.Title, v.URL)
		}
	}
	return w.Flush()
}

// campaignList is the JSON shape of "campaigns list".
type campaignList struct {
	Campaigns []campaign.Campaign `json:"campaigns"`
	Videos    []campaign.Video    `json:"videos"`
}

// campaignNotFound names the known titles so a typo is easy to fix.
func campaignNotFound(title string) error {
	return fmt.Errorf("%w: %q (available: %s)", ErrCampaignNotFound, title, strings.Join(campaign.Titles(), "; "))
}

// NewCampaignsShowCmd creates the "campaigns show" command.
func NewCampaignsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <title>",
		Short:   "Show the details of one campaign",
		Example: `  footprint campaigns show "Reforestation in the Amazon"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			c, ok := campaign.Find(title)
			if !ok {
				return campaignNotFound(title)
			}
			if outputFormat(cmd) == outputFormatJSON {
				return writeJSON(cmd.OutOrStdout(), c)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\nOrganized by %s\n\n%s\n", c.Title, c.Organizer, c.Description)
			if summary := c.Summary(); summary != "" {
				fmt.Fprintf(w, "\n%s\n", summary)
			}
			if c.VideoURL != "" {
				fmt.Fprintf(w, "\nVideo: %s\n", c.VideoURL)
			}
			return nil
		},
	}
}
