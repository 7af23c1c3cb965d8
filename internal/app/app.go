package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/five82/tote/internal/config"
	"github.com/five82/tote/internal/listapi"
	"github.com/five82/tote/internal/lists"
	"github.com/five82/tote/internal/logging"
	"github.com/five82/tote/internal/metrics"
	"github.com/five82/tote/internal/prefs"
	"github.com/five82/tote/internal/shopping"
	"github.com/five82/tote/internal/state"
	"github.com/five82/tote/internal/ui"
)

// Options configure the tote application.
type Options struct {
	ConfigPath   string
	PrefsPath    string        // empty uses default ~/.config/tote/prefs.toml
	RefreshEvery time.Duration // overrides refresh_interval when positive
}

// Run boots the tote TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	client, err := listapi.NewClient(listapi.Options{
		BaseURL:  cfg.APIURL,
		InitData: cfg.InitData,
		Timeout:  cfg.RequestTimeout,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("init list client: %w", err)
	}
	if cfg.InitData == "" {
		logger.Warn("no init_data configured; the service will reject requests", zap.String("api_url", client.BaseURL()))
	}

	recorder := metrics.New()
	store := state.NewStore(state.State{}, nil)
	manager := lists.New(lists.Options{
		Store:   store,
		API:     client,
		Logger:  logger,
		Metrics: recorder,
	})

	selection := &state.Selection{}
	defer selection.Follow(store)()
	defer selection.Subscribe(func(id shopping.ID) {
		rememberSelection(opts.PrefsPath, id, logger)
	})()

	if err := manager.RefreshLists(ctx); err != nil {
		logger.Warn("initial refresh failed", zap.Error(err))
	}
	if userPrefs.LastListID > 0 {
		if _, _, ok := store.State().Find(shopping.ID(userPrefs.LastListID)); ok {
			selection.Select(shopping.ID(userPrefs.LastListID))
		}
	}

	interval := cfg.RefreshInterval
	if opts.RefreshEvery > 0 {
		interval = opts.RefreshEvery
	}
	if interval > 0 {
		StartRefresher(ctx, manager, interval, logger)
	}

	if cfg.MetricsAddr != "" {
		stop := serveMetrics(ctx, cfg.MetricsAddr, recorder, logger)
		defer stop()
	}

	logger.Info("tote started",
		zap.String("api_url", client.BaseURL()),
		zap.Duration("refresh_interval", interval),
		zap.Int("lists", len(store.State().Lists)),
	)

	return ui.Run(ui.Options{
		Context:       ctx,
		Manager:       manager,
		Selection:     selection,
		ThemeName:     userPrefs.Theme,
		HideCompleted: userPrefs.HideCompleted,
		PrefsPath:     opts.PrefsPath,
		LogPath:       cfg.LogFile,
		APIURL:        client.BaseURL(),
	})
}

// rememberSelection stores the active list so the next launch reopens it.
// Unconfirmed lists are not remembered.
func rememberSelection(path string, id shopping.ID, logger *zap.Logger) {
	if id.Pending() {
		return
	}
	err := prefs.Update(path, func(p *prefs.Prefs) { p.LastListID = int64(id) })
	if err != nil {
		logger.Warn("save selection failed", zap.Error(err))
	}
}

// serveMetrics exposes Prometheus metrics and a health probe on addr. The
// returned function shuts the listener down.
func serveMetrics(ctx context.Context, addr string, recorder *metrics.Recorder, logger *zap.Logger) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metricsRouter(recorder),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
	logger.Info("metrics listening", zap.String("addr", addr))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

func metricsRouter(recorder *metrics.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", recorder.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}
