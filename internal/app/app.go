// Package app wires the console's components from configuration. Both the
// HTTP server and the terminal client start from here.
package app

import (
	"context"
	"fmt"
	"net/http"

	"dispatch-console/internal/core/cache"
	"dispatch-console/internal/core/config"
	"dispatch-console/internal/core/gateway"
	"dispatch-console/internal/core/httpclient"
	"dispatch-console/internal/core/logger"
	"dispatch-console/internal/core/metrics"
	"dispatch-console/internal/core/proxy"
	dispatchadapter "dispatch-console/internal/features/dispatch/adapters"
	dispatchservice "dispatch-console/internal/features/dispatch/service"
	postaladapter "dispatch-console/internal/features/postal/adapters"
	postalports "dispatch-console/internal/features/postal/ports"
	postalservice "dispatch-console/internal/features/postal/service"
	sessionadapter "dispatch-console/internal/features/session/adapters"
	sessionservice "dispatch-console/internal/features/session/service"

	"go.uber.org/zap"
)

// App holds the wired components.
type App struct {
	Config   *config.AppConfig
	Metrics  *metrics.Metrics
	Session  *sessionservice.SessionService
	Gateway  gateway.Gateway
	Consoles *dispatchservice.ConsoleManager
	Postal   *postalservice.PostalService

	cache       *cache.RedisAdapter
	unsubscribe func()
}

// New builds the application. Consoles live at most as long as ctx.
func New(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	l := logger.Get()
	m := metrics.New()
	client := httpclient.NewClient(cfg.Gateway.Timeout, proxy.FromConfig(cfg.Proxy))

	auth := sessionadapter.NewGoTrueAdapter(cfg.Gateway.URL, cfg.Gateway.Key, client)
	sessions := sessionservice.NewSessionService(auth, logger.Named("session"))

	gw, err := newGateway(ctx, cfg, client, sessions)
	if err != nil {
		return nil, err
	}
	gw = gateway.NewInstrumented(gw, m, logger.Named("gateway"))

	store := dispatchadapter.NewGatewayStore(gw)
	stores := dispatchservice.Stores{Deliveries: store, Couriers: store, People: store}
	consoles := dispatchservice.NewConsoleManager(ctx, func(userID string) *dispatchservice.Console {
		return dispatchservice.NewConsole(stores, userID, dispatchservice.Options{
			RefreshInterval: cfg.Sync.RefreshInterval,
			StrictDispatch:  cfg.Sync.StrictDispatch,
			Metrics:         m,
			Logger:          logger.Named("console"),
		})
	}, logger.Named("consoles"))

	a := &App{
		Config:   cfg,
		Metrics:  m,
		Session:  sessions,
		Gateway:  gw,
		Consoles: consoles,
	}
	a.unsubscribe = sessions.Subscribe(consoles.HandleSession)

	var provider postalports.AddressProvider = postaladapter.NewViaCEPAdapter(cfg.Postal.URL, client)
	if cfg.Postal.RedisURL != "" {
		rc, err := cache.NewRedisAdapter(cfg.Postal.RedisURL, "dispatch-console:")
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("postal cache: %w", err)
		}
		if err := rc.Ping(ctx); err != nil {
			l.Warn("Postal cache unreachable, lookups will go upstream", zap.Error(err))
		}
		a.cache = rc
		provider = postaladapter.NewCachedProvider(provider, rc, cfg.Postal.CacheTTL, logger.Named("postal"))
	}
	a.Postal = postalservice.NewPostalService(provider)

	l.Info("Application wired",
		zap.String("gateway_driver", cfg.Gateway.Driver),
		zap.Duration("refresh_interval", cfg.Sync.RefreshInterval),
		zap.Bool("strict_dispatch", cfg.Sync.StrictDispatch),
		zap.Bool("postal_cache", a.cache != nil),
	)
	return a, nil
}

func newGateway(ctx context.Context, cfg *config.AppConfig, client *http.Client, tokens gateway.TokenSource) (gateway.Gateway, error) {
	switch cfg.Gateway.Driver {
	case config.DriverPostgres:
		pg, err := gateway.NewPostgresGateway(ctx, cfg.Gateway.DatabaseURL, tokens)
		if err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return gateway.NewRESTGateway(cfg.Gateway.URL, cfg.Gateway.Key, client, tokens,
			gateway.WithTimeout(cfg.Gateway.Timeout)), nil
	}
}

// Close stops the active console and releases connections.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.Consoles.Shutdown()
	a.Gateway.Close()
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Get().Warn("Closing postal cache failed", zap.Error(err))
		}
	}
}
