package app

import (
	"context"
	"fmt"

	"github.com/mlegall/pokedeck/internal/collection"
	"github.com/mlegall/pokedeck/internal/config"
	"github.com/mlegall/pokedeck/internal/favorites"
	"github.com/mlegall/pokedeck/internal/logging"
	"github.com/mlegall/pokedeck/internal/pokeapi"
	"github.com/mlegall/pokedeck/internal/ui"
)

// Options configure the Pokédeck application.
type Options struct {
	ConfigPath string // empty uses default ~/.config/pokedeck/config.toml
	APIURL     string // overrides the configured API base URL
}

// Run boots the Pokédeck TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}

	// The TUI owns the terminal, so logs go to a file.
	log := logging.Open(cfg.LogPath())

	client, err := pokeapi.NewClient(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	favs := favorites.Open(cfg.FavoritesPath())

	engine := collection.New(client, log)
	if err := engine.SetPageSize(cfg.PageSize); err != nil {
		log.Warn().Int("page_size", cfg.PageSize).Msg("configured page size rejected, keeping default")
	}

	log.Info().Str("api_url", cfg.APIURL).Int("page_size", engine.PageSize()).Msg("starting")

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Engine:    engine,
		Favorites: favs,
		Log:       log,
	})
}
