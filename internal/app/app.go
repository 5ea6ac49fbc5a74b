// Package app builds the gconnect object graph from settings: stores,
// credential lifecycle, Google providers and the facade service.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/gconnect/internal/adapters/driven/auth"
	"github.com/custodia-labs/gconnect/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gconnect/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/gconnect/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gconnect/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gconnect/internal/connectors/google"
	"github.com/custodia-labs/gconnect/internal/connectors/google/calendar"
	"github.com/custodia-labs/gconnect/internal/connectors/google/drive"
	"github.com/custodia-labs/gconnect/internal/connectors/google/gmail"
	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
	"github.com/custodia-labs/gconnect/internal/core/services"
	"github.com/custodia-labs/gconnect/internal/logger"
)

// Options configures New.
type Options struct {
	// ConfigDir holds config.toml, credentials.json and token.json.
	// Empty uses ~/.gconnect.
	ConfigDir string

	// Out receives interactive consent prompts. Nil uses stderr.
	Out io.Writer

	// HTTPClient is used for token and API calls. Nil uses the default client.
	HTTPClient *http.Client

	// Endpoint overrides the Google API base URL.
	Endpoint string

	// LookupEnv overrides environment lookup for settings.
	LookupEnv func(string) (string, bool)
}

// App is the wired application.
type App struct {
	Settings    *services.SettingsService
	AppSettings *domain.AppSettings

	// Credentials serves the facade with the configured acquisition flow.
	Credentials *services.CredentialManager
	// Login always acquires through the browser consent flow.
	Login *services.CredentialManager

	Connector *services.ConnectorService

	tokenFile *jsonfile.CredentialStore
	closers   []func() error
}

// New resolves settings and wires every component.
func New(opts Options) (*App, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config store: %w", err)
	}

	dir := opts.ConfigDir
	if dir == "" {
		if dir, err = file.DefaultDir(); err != nil {
			return nil, err
		}
	}

	settingsSvc := services.NewSettingsService(configStore, dir)
	if opts.LookupEnv != nil {
		settingsSvc = settingsSvc.WithEnv(opts.LookupEnv)
	}
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	a := &App{
		Settings:    settingsSvc,
		AppSettings: settings,
	}

	store, err := a.credentialStore(settings.Auth)
	if err != nil {
		return nil, err
	}

	clientConfig := file.NewClientConfigSource(
		settings.Auth.ClientConfigPath, settings.Auth.ClientID, settings.Auth.ClientSecret)
	refresher := auth.NewOAuthRefresher(opts.HTTPClient)

	acqCfg := auth.AcquirerConfig{
		Flow:           settings.Auth.Flow,
		CallbackPort:   settings.Auth.CallbackPort,
		ConsentTimeout: settings.Auth.ConsentTimeout,
		OpenBrowser:    settings.Auth.OpenBrowser,
		Out:            opts.Out,
		AccessToken:    settings.Auth.StaticAccessToken,
		RefreshToken:   settings.Auth.StaticRefreshToken,
		HTTPClient:     opts.HTTPClient,
	}
	acquirer, err := auth.NewAcquirer(acqCfg, refresher)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	acqCfg.Flow = domain.AuthFlowInteractive
	interactive, err := auth.NewAcquirer(acqCfg, refresher)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	managerOpts := []services.CredentialManagerOption{
		services.WithRefreshBuffer(settings.Auth.RefreshBuffer),
		services.WithDefaultScopes(settings.Auth.Scopes),
	}
	a.Credentials = services.NewCredentialManager(store, clientConfig, acquirer, refresher, managerOpts...)
	a.Login = services.NewCredentialManager(store, clientConfig, interactive, refresher, managerOpts...)

	serviceOpts := google.ServiceOptions{
		HTTPClient: opts.HTTPClient,
		Endpoint:   opts.Endpoint,
		Timeout:    settings.Upstream.Timeout,
	}
	rps := settings.Upstream.RequestsPerSecond

	policy := services.FailFast
	if settings.Calendar.PartialResults {
		policy = services.BestEffort
	}

	a.Connector = services.NewConnectorService(
		a.Credentials,
		calendar.New(serviceOpts, google.NewRateLimiter(google.ServiceCalendar, rps)),
		gmail.New(serviceOpts, google.NewRateLimiter(google.ServiceGmail, rps)),
		drive.New(serviceOpts, google.NewRateLimiter(google.ServiceDrive, rps)),
		services.ConnectorConfig{
			CalendarIDs:    settings.Calendar.IDs,
			CalendarPolicy: policy,
			GmailLabels:    settings.Gmail.Labels,
			GmailQuery:     settings.Gmail.Query,
		},
	)

	logger.Debug("token store: %s, auth flow: %s", settings.Auth.TokenStore, settings.Auth.Flow)
	return a, nil
}

func (a *App) credentialStore(cfg domain.AuthSettings) (driven.CredentialStore, error) {
	switch cfg.TokenStore {
	case domain.TokenStoreSQLite:
		db, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite store: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return db.CredentialStore(), nil
	case domain.TokenStoreMemory:
		return memory.NewCredentialStore(), nil
	default:
		a.tokenFile = jsonfile.NewCredentialStore(cfg.TokenPath)
		return a.tokenFile, nil
	}
}

// Watch drops cached credentials whenever the token file changes on disk,
// until ctx is cancelled. It does nothing for other stores.
func (a *App) Watch(ctx context.Context) error {
	if a.tokenFile == nil {
		return nil
	}
	return a.tokenFile.Watch(ctx, func() {
		a.Credentials.Invalidate()
		a.Login.Invalidate()
	})
}

// Close releases stores.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
