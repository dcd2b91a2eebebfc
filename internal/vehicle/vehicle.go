// Package vehicle looks up the model years, makes and models published by the
// fueleconomy.gov menu service, for the car form's vehicle selectors.
package vehicle

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/footprint/internal/cache"
	"github.com/rshade/footprint/internal/lookup"
)

// prefetchConcurrency bounds concurrent model lookups in Catalog.
const prefetchConcurrency = 4

// Field is a selectable vehicle attribute.
type Field int

const (
	FieldYear Field = iota
	FieldMake
	FieldModel
)

// String returns the field's menu name.
func (f Field) String() string {
	switch f {
	case FieldYear:
		return "year"
	case FieldMake:
		return "make"
	case FieldModel:
		return "model"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// ParseField accepts "year", "make" or "model" (and their plurals).
func ParseField(s string) (Field, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "year":
		return FieldYear, nil
	case "make":
		return FieldMake, nil
	case "model":
		return FieldModel, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

// Errors returned by lookups.
var (
	ErrUnknownField     = errors.New("unknown vehicle field")
	ErrMissingSelection = errors.New("missing vehicle selection")
	ErrMalformed        = errors.New("malformed vehicle menu")
)

// Option is one menu entry.
type Option struct {
	Text  string `json:"text"  xml:"text"`
	Value string `json:"value" xml:"value"`
}

// Selection is what the user has picked so far. Makes need Year; models need
// Year and Make.
type Selection struct {
	Year string
	Make string
}

type menu struct {
	XMLName xml.Name `xml:"menuItems"`
	Items   []Option `xml:"menuItem"`
}

// Client queries the menu service, caching results on disk.
type Client struct {
	baseURL string
	fetch   *lookup.Client
	cache   *cache.FileStore
}

// NewClient returns a client rooted at baseURL (".../ws/rest/vehicle/menu").
// A nil or disabled store skips caching.
func NewClient(baseURL string, fetch *lookup.Client, store *cache.FileStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetch:   fetch,
		cache:   store,
	}
}

// Years lists the available model years, newest first.
func (c *Client) Years(ctx context.Context) ([]Option, error) {
	return c.Options(ctx, FieldYear, Selection{})
}

// Makes lists manufacturers for a model year.
func (c *Client) Makes(ctx context.Context, year string) ([]Option, error) {
	return c.Options(ctx, FieldMake, Selection{Year: year})
}

// Models lists models for a year and make.
func (c *Client) Models(ctx context.Context, year, manufacturer string) ([]Option, error) {
	return c.Options(ctx, FieldModel, Selection{Year: year, Make: manufacturer})
}

// Options returns the menu for field given the earlier selections.
func (c *Client) Options(ctx context.Context, field Field, sel Selection) ([]Option, error) {
	endpoint, err := c.endpoint(field, sel)
	if err != nil {
		return nil, err
	}

	key := cache.Key("vehicle", field.String(), sel.Year, sel.Make)
	var opts []Option
	if c.cache.IsEnabled() {
		if cacheErr := c.cache.GetJSON(key, &opts); cacheErr == nil {
			return opts, nil
		}
	}

	body, err := c.fetch.Get(ctx, endpoint, "application/xml")
	if err != nil {
		return nil, fmt.Errorf("fetching vehicle %ss: %w", field, err)
	}

	opts, err = parseMenu(body)
	if err != nil {
		return nil, err
	}

	if c.cache.IsEnabled() {
		if cacheErr := c.cache.SetJSON(key, opts); cacheErr != nil {
			zerolog.Ctx(ctx).Debug().Err(cacheErr).Str("key", key).Msg("vehicle cache write failed")
		}
	}
	return opts, nil
}

// Catalog fetches the models of every make for year, at most
// prefetchConcurrency requests at a time. Any failure cancels the rest.
func (c *Client) Catalog(ctx context.Context, year string) (map[string][]Option, error) {
	makes, err := c.Makes(ctx, year)
	if err != nil {
		return nil, err
	}

	results := make([][]Option, len(makes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchConcurrency)
	for i, mk := range makes {
		g.Go(func() error {
			models, modelErr := c.Models(gctx, year, mk.Value)
			if modelErr != nil {
				return fmt.Errorf("make %s: %w", mk.Value, modelErr)
			}
			results[i] = models
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	catalog := make(map[string][]Option, len(makes))
	for i, mk := range makes {
		catalog[mk.Value] = results[i]
	}
	return catalog, nil
}

func (c *Client) endpoint(field Field, sel Selection) (string, error) {
	q := url.Values{}
	switch field {
	case FieldYear:
	case FieldMake:
		if sel.Year == "" {
			return "", fmt.Errorf("%w: makes need a year", ErrMissingSelection)
		}
		q.Set("year", sel.Year)
	case FieldModel:
		if sel.Year == "" || sel.Make == "" {
			return "", fmt.Errorf("%w: models need a year and a make", ErrMissingSelection)
		}
		q.Set("year", sel.Year)
		q.Set("make", sel.Make)
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownField, int(field))
	}

	u := c.baseURL + "/" + field.String()
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u, nil
}

// parseMenu decodes a menuItems document, dropping entries without a value.
func parseMenu(body []byte) ([]Option, error) {
	var m menu
	if err := xml.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	opts := make([]Option, 0, len(m.Items))
	for _, item := range m.Items {
		item.Text = strings.TrimSpace(item.Text)
		item.Value = strings.TrimSpace(item.Value)
		if item.Value == "" {
			continue
		}
		if item.Text == "" {
			item.Text = item.Value
		}
		opts = append(opts, item)
	}
	return opts, nil
}
