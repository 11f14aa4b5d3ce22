package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rgodse/claimdesk/internal/api"
	"github.com/rgodse/claimdesk/internal/config"
	"github.com/rgodse/claimdesk/internal/filters"
	"github.com/rgodse/claimdesk/internal/formstate"
	"github.com/rgodse/claimdesk/internal/gridstate"
	"github.com/rgodse/claimdesk/internal/logging"
	"github.com/rgodse/claimdesk/internal/state"
	"github.com/rgodse/claimdesk/internal/storage"
	"github.com/rgodse/claimdesk/internal/ui"
)

// Options configure the claimdesk application.
type Options struct {
	ConfigPath string
	PollEvery  int // seconds; zero uses the config value
}

// Run boots the claimdesk TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog := logging.Open(cfg.LogPath())
	defer closeLog()

	store := storage.Open(cfg.StateDir, logger)
	// Session-scoped values never outlive the process.
	defer store.Terminate(storage.Session)

	client, err := api.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	tokens := api.NewTokenStore(store)
	auth := api.NewAuthClient(client, tokens)

	claimStore := &state.Store{}

	interval := cfg.PollEvery
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background poller; it idles until a token is available.
	StartPoller(ctx, claimStore, auth, tokens, interval, logger)

	// Populate the store before the UI starts when already signed in.
	if tokens.Token() != "" {
		refresh(ctx, claimStore, auth, logger)
	}

	uiOpts := ui.Options{
		Context:  ctx,
		Client:   client,
		Auth:     auth,
		Tokens:   tokens,
		Claims:   claimStore,
		Form:     formstate.New(store, logger),
		Filters:  filters.New(),
		Grid:     gridstate.NewService(store, logger),
		Storage:  store,
		Config:   &cfg,
		Logger:   logger,
		PollTick: interval,
	}
	return ui.Run(uiOpts)
}
