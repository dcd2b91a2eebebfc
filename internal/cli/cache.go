package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/cache"
	"github.com/rshade/footprint/internal/config"
)

// NewCacheInfoCmd creates the "cache info" command.
func NewCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		Short:   "Show lookup cache location and size",
		Example: `  footprint cache info`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if !store.IsEnabled() {
				cmd.Printf("Lookup cache is disabled (lookups.cache_ttl_seconds is 0)\n")
				return nil
			}
			count, size, err := store.Stats()
			if err != nil {
				return err
			}
			cmd.Printf("Directory: %s\n", store.Directory())
			cmd.Printf("TTL:       %s\n", cache.FormatDuration(store.TTL()))
			cmd.Printf("Entries:   %d (%d bytes)\n", count, size)
			return nil
		},
	}
}

// NewCacheClearCmd creates the "cache clear" command.
func NewCacheClearCmd() *cobra.Command {
	var expired bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached lookup results",
		Example: `  footprint cache clear
  footprint cache clear --expired`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if !store.IsEnabled() {
				cmd.Printf("Lookup cache is disabled (lookups.cache_ttl_seconds is 0)\n")
				return nil
			}

			var removed int
			if expired {
				removed, err = store.CleanupExpired()
			} else {
				removed, err = store.Clear()
			}
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			cmd.Printf("Removed %d cache entries\n", removed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&expired, "expired", false, "only remove expired entries")
	return cmd
}
