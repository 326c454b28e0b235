package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"newsdesk/internal/config"
	"newsdesk/internal/services"
	"newsdesk/internal/store"
	"newsdesk/internal/store/primary"
)

type App struct {
	Config *config.Config

	// Store interfaces, all backed by the primary Postgres store.
	ArticleStore       store.ArticleStore
	CategoryStore      store.CategoryStore
	SearchHistoryStore store.SearchHistoryStore
	JobClient          store.JobClient

	SearchService *services.SearchService
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	app := &App{Config: cfg}

	if err := app.initPrimaryStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initJobClient(); err != nil {
		// Analytics is best-effort; a missing Redis must not take
		// search down with it.
		log.Warnf("Search analytics disabled: %v", err)
	}
	app.initSearchService()

	log.Debug("Application initialization complete.")
	return app, nil
}

func (a *App) initPrimaryStore(ctx context.Context) error {
	ps, err := primary.NewPrimaryStore(ctx, a.Config.Database.Primary.DSN)
	if err != nil {
		return fmt.Errorf("init primary store: %w", err)
	}
	a.ArticleStore = ps
	a.CategoryStore = ps
	a.SearchHistoryStore = ps
	return nil
}

func (a *App) initJobClient() error {
	jc, err := store.NewAsynqJobClient(a.Config.Redis.Address, a.Config.Redis.Password, a.Config.Redis.DB)
	if err != nil {
		return fmt.Errorf("init job client: %w", err)
	}
	a.JobClient = jc
	return nil
}

func (a *App) initSearchService() {
	a.SearchService = services.NewSearchService(services.SearchServiceDeps{
		Articles:        a.ArticleStore,
		Categories:      a.CategoryStore,
		History:         a.SearchHistoryStore,
		Jobs:            a.JobClient,
		DefaultLimit:    a.Config.Search.DefaultLimit,
		SuggestCacheTTL: time.Duration(a.Config.Search.SuggestCacheTTL) * time.Second,
	})
}

// Close releases the app's long-lived resources.
func (a *App) Close() {
	if a.JobClient != nil {
		if err := a.JobClient.Close(); err != nil {
			log.Warnf("Error closing job client: %v", err)
		}
	}
	if ps, ok := a.ArticleStore.(*primary.StoreImpl); ok {
		ps.Close()
	}
}
