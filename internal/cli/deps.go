package cli

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v2"
	"googlemaps.github.io/maps"

	"github.com/tmalloy/wayfarer/internal/assembler"
	"github.com/tmalloy/wayfarer/internal/auth"
	appconfig "github.com/tmalloy/wayfarer/internal/config"
	"github.com/tmalloy/wayfarer/internal/directions"
	"github.com/tmalloy/wayfarer/internal/models"
	"github.com/tmalloy/wayfarer/internal/models/anthropic"
	"github.com/tmalloy/wayfarer/internal/models/gemini"
	"github.com/tmalloy/wayfarer/internal/models/openai"
	"github.com/tmalloy/wayfarer/internal/storage"
	"github.com/tmalloy/wayfarer/internal/store"
	"github.com/tmalloy/wayfarer/internal/tasks"
	"github.com/tmalloy/wayfarer/pkg/logger"
	"github.com/tmalloy/wayfarer/pkg/metrics"
)

// application bundles the wired components every command works with.
type application struct {
	cfg      *appconfig.AppConfig
	log      logger.Logger
	metrics  *metrics.Metrics
	creds    *store.CredentialStore
	profiles *store.ProfileStore
	userData *store.UserDataStore
	auth     *auth.Authenticator
	runner   *tasks.Runner
}

// buildApplication wires configuration, storage, stores and the
// authenticator. Provider adapters are built lazily per command because
// only the commands that reach a provider need its key.
func buildApplication(ctx *cli.Context) (*application, error) {
	log := getLogger(ctx)

	cfg, err := appconfig.Load(ctx.String("config-file"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	m := metrics.New(log)
	if cfg.Monitoring.MetricsEnabled {
		m.Listen(cfg.Monitoring.MetricsPort)
	}

	provider, err := buildFileProvider(ctx.Context, cfg)
	if err != nil {
		return nil, err
	}

	creds := store.NewCredentialStore(provider, log)
	profiles := store.NewProfileStore(provider, log)
	userData := store.NewUserDataStore(provider, log)

	secret, err := cfg.OAuth.ReadClientSecret()
	if err != nil {
		return nil, err
	}
	authenticator, err := auth.New(secret, creds, profiles, log, m)
	if err != nil {
		return nil, err
	}

	return &application{
		cfg:      cfg,
		log:      log,
		metrics:  m,
		creds:    creds,
		profiles: profiles,
		userData: userData,
		auth:     authenticator,
		runner:   tasks.NewRunner(log),
	}, nil
}

func buildFileProvider(ctx context.Context, cfg *appconfig.AppConfig) (storage.FileProvider, error) {
	switch cfg.Storage.Backend {
	case "s3":
		opts := []func(*awsconfig.LoadOptions) error{}
		if cfg.Storage.S3Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Storage.S3Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		client := storage.NewAWSS3Client(s3.NewFromConfig(awsCfg))
		return storage.NewS3FileProvider(cfg.Storage.S3Bucket, cfg.Storage.S3Prefix, client), nil
	default:
		return storage.NewLocalFileProvider(cfg.Storage.LocalDir), nil
	}
}

// buildChatModel constructs the configured provider adapter, wrapped with
// logging and metrics.
func (a *application) buildChatModel(ctx context.Context) (models.ChatModel, error) {
	var (
		model models.ChatModel
		err   error
	)

	switch a.cfg.ChatProvider {
	case "gemini":
		var key string
		if key, err = a.cfg.Gemini.Require(); err == nil {
			model, err = gemini.New(ctx, key, a.cfg.Gemini.Model)
		}
	case "openai":
		var key string
		if key, err = a.cfg.OpenAI.Require(); err == nil {
			model, err = openai.New(key, a.cfg.OpenAI.Model)
		}
	case "anthropic":
		var key string
		if key, err = a.cfg.Anthropic.Require(); err == nil {
			model, err = anthropic.New(key, a.cfg.Anthropic.Model)
		}
	default:
		err = fmt.Errorf("unknown chat provider %q", a.cfg.ChatProvider)
	}
	if err != nil {
		return nil, err
	}

	return models.WithInstrumentation(model, a.log, a.metrics), nil
}

// buildDirectionsClient constructs the route lookup adapter.
func (a *application) buildDirectionsClient() (*directions.Client, error) {
	key, err := a.cfg.Maps.Require()
	if err != nil {
		return nil, err
	}
	mapsClient, err := maps.NewClient(maps.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return directions.NewClient(mapsClient, a.log, a.metrics), nil
}

// signedInUser returns the current identity, running the interactive login
// when no stored token can be made valid.
func (a *application) signedInUser(ctx context.Context) (store.UserIdentity, error) {
	token, err := a.auth.EnsureValid(ctx)
	if err == nil {
		return a.auth.Identity(ctx, token)
	}
	if !errors.Is(err, auth.ErrReauthRequired) {
		return store.UserIdentity{}, err
	}

	var identity store.UserIdentity
	task, err := a.runner.Go(ctx, tasks.KindAuth, func(taskCtx context.Context) error {
		var authErr error
		identity, _, authErr = a.auth.AuthenticateInteractively(taskCtx)
		return authErr
	})
	if err != nil {
		return store.UserIdentity{}, err
	}
	<-task.Done()
	if err := task.Err(); err != nil {
		return store.UserIdentity{}, err
	}
	return identity, nil
}

// buildPrompt assembles the chat prompt for one question. The most recent
// journey is the newest stored one, if any.
func (a *application) buildPrompt(ctx context.Context, email, question string, sessionHistory []string) string {
	data := a.userData.Load(ctx, email)

	var mostRecent *store.Journey
	if len(data.Journeys) > 0 {
		mostRecent = &data.Journeys[len(data.Journeys)-1].Data
	}

	return assembler.Build(question, sessionHistory, data, mostRecent)
}

func (a *application) shutdown(ctx context.Context) {
	a.runner.Shutdown()
	if a.cfg.Monitoring.MetricsEnabled {
		if err := a.metrics.Shutdown(ctx); err != nil {
			a.log.Error("Failed to stop metrics listener", logger.ErrorField(err))
		}
	}
}
