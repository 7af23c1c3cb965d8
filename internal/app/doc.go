// Package app is the composition root for tote.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        TOML + .env + TOTE_* overrides
//	       ├─────> logging.New()        zap JSON logger on the log file
//	       ├─────> prefs.Load()         theme, last list, hide completed
//	       ├─────> listapi.NewClient()  REST adapter
//	       ├─────> state.NewStore()     single source of truth
//	       ├─────> lists.New()          optimistic mutations
//	       ├─────> state.Selection      active list, persisted to prefs
//	       ├─────> RefreshLists()       first load, failure is not fatal
//	       ├─────> StartRefresher()     background re-fetch
//	       ├─────> serveMetrics()       optional /metrics and /healthz
//	       └─────> ui.Run()             blocks until quit
//
// # Background Refresh
//
// The refresher re-fetches the list collection every refresh_interval
// (default 15s, 0 disables it). After a failure the wait doubles per
// consecutive failure up to five minutes, and resets on the next success. A
// round is skipped while any mutation is waiting on the service.
//
// # Errors
//
// Config, prefs, logger and client construction errors are returned from Run.
// Failed refreshes are logged and surface in the UI through State.Error.
package app
