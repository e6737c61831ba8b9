// Package cli implements the interactive terminal client: a REPL over the
// application services, standing in for the mobile UI's pages and routing.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/ngcs-mobile/courtclient/internal/client/api"
	"github.com/ngcs-mobile/courtclient/internal/client/config"
	"github.com/ngcs-mobile/courtclient/internal/client/guard"
	"github.com/ngcs-mobile/courtclient/internal/client/prefs"
	"github.com/ngcs-mobile/courtclient/internal/client/services"
	"github.com/ngcs-mobile/courtclient/internal/client/session"
	"github.com/ngcs-mobile/courtclient/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	store    *prefs.SQLiteStore
	sessions *session.Manager
	auth     services.AuthService
	data     services.DataService
	policy   *services.PolicyService
	guard    *guard.Guard
	router   *Router
	log      logging.Logger

	in  *bufio.Reader
	out io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := prefs.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing preferences database", "error", err)
		return nil, err
	}

	out := os.Stdout
	sessions := session.NewManager(store, log)
	router := NewRouter(out)

	transport := api.NewAuthTransport(nil, sessions, router, log)
	apiClient, err := api.NewHTTPClient(cfg.BaseURL, transport, cfg.RequestTimeout, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	notifier := &printNotifier{out: out}

	return &App{
		config:   cfg,
		store:    store,
		sessions: sessions,
		auth:     services.NewAuthService(apiClient, sessions, store, notifier, router, cfg.AppVersion, log),
		data:     services.NewDataService(apiClient, cfg.CompatibleServerVersion, log),
		policy:   services.NewPolicyService(store, log),
		guard:    guard.New(sessions, router),
		router:   router,
		log:      log,
		in:       bufio.NewReader(os.Stdin),
		out:      out,
	}, nil
}

// Run restores the persisted session and enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	a.sessions.Restore(ctx)
	if a.sessions.Current().Authenticated {
		a.router.Goto("home")
	}
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current().Authenticated
}
