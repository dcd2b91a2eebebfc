package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/campaign"
	"github.com/rshade/footprint/internal/cli"
)

func TestCampaignsList(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "campaigns")
	require.NoError(t, err)
	for _, c := range campaign.All() {
		assert.Contains(t, out, c.Title)
	}
	assert.Contains(t, out, "The Story of Stuff")
	assert.Contains(t, out, "How Trees Communicate")

	out, _, err = execute(t, "campaigns", "list", "--featured", "--output", "json")
	require.NoError(t, err)
	var got struct {
		Campaigns []campaign.Campaign `json:"campaigns"`
		Videos    []campaign.Video    `json:"videos"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, campaign.Featured(), got.Campaigns)
	assert.Equal(t, campaign.Videos(), got.Videos)
}

func TestCampaignsShow(t *testing.T) {
	setupCLITest(t)
	first := campaign.Featured()[0]

	out, _, err := execute(t, "campaigns", "show", first.Title)
	require.NoError(t, err)
	assert.Contains(t, out, first.Title)
	assert.Contains(t, out, "Organized by "+first.Organizer)
	assert.Contains(t, out, first.Summary())

	_, _, err = execute(t, "campaigns", "show", "Save", "the", "Moon")
	require.ErrorIs(t, err, cli.ErrCampaignNotFound)
	assert.Contains(t, err.Error(), first.Title, "known titles are suggested")
}
