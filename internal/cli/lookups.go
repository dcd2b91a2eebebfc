package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rshade/footprint/internal/cache"
	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/geocode"
	"github.com/rshade/footprint/internal/lookup"
	"github.com/rshade/footprint/internal/tui"
	"github.com/rshade/footprint/internal/vehicle"
)

// Services named in lookup logs.
const (
	serviceVehicle = "vehicle"
	serviceGeocode = "geocode"
)

func newFetcher(cfg *config.Config, service string) *lookup.Client {
	return lookup.NewClient(lookup.Options{
		Service:           service,
		UserAgent:         cfg.Lookups.UserAgent,
		RequestsPerSecond: cfg.Lookups.RequestsPerSecond,
		Timeout:           time.Duration(cfg.Lookups.TimeoutSeconds) * time.Second,
	})
}

// openCache returns the on-disk lookup cache. A zero TTL yields a disabled store.
func openCache(cfg *config.Config) (*cache.FileStore, error) {
	dir, err := config.GetCacheDir()
	if err != nil {
		return nil, err
	}
	store, err := cache.NewFileStore(dir, cfg.Lookups.CacheTTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening lookup cache: %w", err)
	}
	return store, nil
}

func newVehicleClient(cfg *config.Config) (*vehicle.Client, error) {
	store, err := openCache(cfg)
	if err != nil {
		return nil, err
	}
	return vehicle.NewClient(cfg.Lookups.VehicleBaseURL, newFetcher(cfg, serviceVehicle), store), nil
}

func newGeocodeClient(cfg *config.Config) *geocode.Client {
	return geocode.NewClient(cfg.Lookups.GeocoderBaseURL, newFetcher(cfg, serviceGeocode))
}

// newSuggestFunc completes the lookup rows of the category forms: flight
// locations come from the geocoder and car rows from the vehicle menus.
func newSuggestFunc(vehicles *vehicle.Client, places *geocode.Client) tui.SuggestFunc {
	return func(ctx context.Context, key string, values map[string]string) ([]string, error) {
		switch key {
		case "from", "to", "via":
			found, err := places.Search(ctx, values[key])
			if err != nil {
				return nil, err
			}
			out := make([]string, len(found))
			for i, p := range found {
				out[i] = p.DisplayName
			}
			return out, nil
		case "year", "make", "model":
			field, err := vehicle.ParseField(key)
			if err != nil {
				return nil, err
			}
			opts, err := vehicles.Options(ctx, field, vehicle.Selection{Year: values["year"], Make: values["make"]})
			if err != nil {
				return nil, err
			}
			out := make([]string, len(opts))
			for i, o := range opts {
				out[i] = o.Text
			}
			return out, nil
		default:
			return nil, fmt.Errorf("no suggestions for %q", key)
		}
	}
}
