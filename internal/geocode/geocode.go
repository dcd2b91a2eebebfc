// Package geocode resolves free-text place names to coordinates through a
// Nominatim search endpoint. The flight form's From, To and Via fields use it.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rshade/footprint/internal/lookup"
)

const (
	// MinQueryLength is the shortest query that reaches the service.
	MinQueryLength = 3

	defaultCacheSize = 128
	earthRadiusKm    = 6371.0
)

// Place is one search hit.
type Place struct {
	PlaceID     int64   `json:"place_id"`
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat,string"`
	Lon         float64 `json:"lon,string"`
	Type        string  `json:"type,omitempty"`
	Importance  float64 `json:"importance,omitempty"`
}

// Client searches Nominatim and remembers recent answers.
type Client struct {
	baseURL string
	fetch   *lookup.Client
	recent  *lru.Cache[string, []Place]
}

// NewClient returns a client for the Nominatim instance at baseURL.
func NewClient(baseURL string, fetch *lookup.Client) *Client {
	recent, err := lru.New[string, []Place](defaultCacheSize)
	if err != nil {
		recent, _ = lru.New[string, []Place](16)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetch:   fetch,
		recent:  recent,
	}
}

// Search returns places matching query, best match first. Queries shorter
// than MinQueryLength return no results and send no request.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, nil
	}

	key := strings.ToLower(query)
	if places, ok := c.recent.Get(key); ok {
		return places, nil
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	body, err := c.fetch.Get(ctx, c.baseURL+"/search?"+q.Encode(), "application/json")
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	var places []Place
	if err = json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("decoding search results for %q: %w", query, err)
	}

	c.recent.Add(key, places)
	return places, nil
}

// First returns the best match for query, or false when nothing matched.
func (c *Client) First(ctx context.Context, query string) (Place, bool, error) {
	places, err := c.Search(ctx, query)
	if err != nil || len(places) == 0 {
		return Place{}, false, err
	}
	return places[0], true, nil
}

// DistanceKm is the great-circle (haversine) distance between two places.
func DistanceKm(a, b Place) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
