package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	tomlcfg "github.com/avelezco/redbag-claimer/internal/adapters/config/toml"
	statusadapter "github.com/avelezco/redbag-claimer/internal/adapters/render/status"
	"github.com/avelezco/redbag-claimer/internal/adapters/rewardapi"
	chainstore "github.com/avelezco/redbag-claimer/internal/adapters/secrets/chain"
	"github.com/avelezco/redbag-claimer/internal/application"
	"github.com/avelezco/redbag-claimer/internal/domain"
	"github.com/avelezco/redbag-claimer/internal/observability"
	"github.com/avelezco/redbag-claimer/internal/ports"
)

type app struct {
	settings       tomlcfg.Settings
	pool           domain.Pool
	orchestrator   *application.Orchestrator
	logger         observability.Logger
	statusRenderer func([]application.AccountStatus, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

func wireApp() (*app, error) {
	// Optional: local development keeps secrets in a .env file.
	_ = godotenv.Load()

	settings, err := tomlcfg.LoadSettings(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err := observability.InitSentry(settings.SentryDSN, settings.Environment); err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}

	secretStore, err := chainstore.NewEnvFirstWithFileFallback(settings.SecretsRoot)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	source := tomlcfg.NewAccountSource(settings.AccountsPath, secretStore)
	pool, err := source.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load account pool: %w", err)
	}

	logger := observability.NewDefault()

	gateway := &rewardapi.Client{
		BaseURL:    settings.APIBaseURL,
		HTTPClient: http.DefaultClient,
		Lang:       settings.Lang,
	}

	store := application.NewSessionStore(pool, ports.SystemClock{}, settings.Cooldown)
	auth := application.NewAuthenticator(gateway, logger, settings.CountryCode, settings.MaxLoginAttempts, settings.RetryDelay)

	return &app{
		settings:       settings,
		pool:           pool,
		orchestrator:   application.NewOrchestrator(pool, store, auth, gateway, logger),
		logger:         logger,
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}
