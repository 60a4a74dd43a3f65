package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/TactasRNG_Go/internal/catalog"
	"github.com/osse101/TactasRNG_Go/internal/config"
	"github.com/osse101/TactasRNG_Go/internal/domain"
)

// SeedCatalog inserts the default items into an empty catalog unless disabled
func SeedCatalog(ctx context.Context, cfg *config.Config, catalogSvc catalog.Service) error {
	if !cfg.SeedDefaultItems {
		slog.Info(LogMsgCatalogSeedSkipped)
		return nil
	}
	added, err := catalogSvc.SeedDefaults(ctx, domain.DefaultItems)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSeedCatalog, err)
	}
	if added > 0 {
		slog.Info(LogMsgCatalogSeeded, "count", added)
	}
	return nil
}
