// Package campaign holds the catalogue of environmental campaigns users can
// donate to, and the short educational videos shown beside them.
package campaign

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FeaturedCount is how many campaigns the dashboard lists.
const FeaturedCount = 3

//go:embed campaigns.yaml
var catalogYAML []byte

// Campaign is one donation target.
type Campaign struct {
	Title       string `yaml:"title"       json:"title"`
	Description string `yaml:"description" json:"description"`

	// Details is the long-form text revealed when a featured campaign is
	// expanded. Empty for campaigns that are not featured.
	Details           string `yaml:"details,omitempty"  json:"details,omitempty"`
	InvestmentDetails string `yaml:"investment_details" json:"investment_details"`
	Organizer         string `yaml:"organizer"          json:"organizer"`
	ImageURL          string `yaml:"image_url,omitempty" json:"image_url,omitempty"`
	VideoURL          string `yaml:"video_url,omitempty" json:"video_url,omitempty"`

	// OffsetsByPlanting marks campaigns whose impact is shown as tree seedlings.
	OffsetsByPlanting bool `yaml:"offsets_by_planting,omitempty" json:"offsets_by_planting,omitempty"`
}

// Summary returns Details when present, otherwise InvestmentDetails.
func (c Campaign) Summary() string {
	if c.Details != "" {
		return c.Details
	}
	return c.InvestmentDetails
}

// Video is an educational clip.
type Video struct {
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url"   json:"url"`
}

type catalog struct {
	Campaigns []Campaign `yaml:"campaigns"`
	Videos    []Video    `yaml:"videos"`
}

//nolint:gochecknoglobals // Parsed once from the embedded catalogue.
var load = sync.OnceValue(func() catalog {
	var c catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		panic(fmt.Sprintf("campaign: embedded catalogue is invalid: %v", err))
	}
	return c
})

// All returns every campaign in catalogue order. The slice is a copy.
func All() []Campaign {
	return append([]Campaign(nil), load().Campaigns...)
}

// Featured returns the campaigns shown on the dashboard.
func Featured() []Campaign {
	all := All()
	return all[:min(FeaturedCount, len(all))]
}

// Videos returns the educational videos.
func Videos() []Video {
	return append([]Video(nil), load().Videos...)
}

// Find looks a campaign up by title, ignoring case and surrounding space.
func Find(title string) (Campaign, bool) {
	want := strings.TrimSpace(title)
	for _, c := range load().Campaigns {
		if strings.EqualFold(c.Title, want) {
			return c, true
		}
	}
	return Campaign{}, false
}

// Titles returns every campaign title in catalogue order.
func Titles() []string {
	cs := load().Campaigns
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Title
	}
	return out
}
