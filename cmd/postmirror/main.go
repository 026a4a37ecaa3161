package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/avoronova/postmirror/internal/api"
	"github.com/avoronova/postmirror/internal/config"
	"github.com/avoronova/postmirror/internal/loader"
	"github.com/avoronova/postmirror/internal/mirror"
	"github.com/avoronova/postmirror/internal/remote"
	"github.com/avoronova/postmirror/internal/storage"
)

type app struct {
	ctx    context.Context
	cancel context.CancelFunc

	logConf zap.Config
	logger  *zap.Logger

	config *config.Config

	storage *storage.Storage
	remote  *remote.Client
	syncer  *mirror.Syncer
	loader  *loader.Loader
	api     *api.API
}

func newApp(ctx context.Context, lcf zap.Config, log *zap.Logger) (*app, error) {
	ctx, cancel := context.WithCancel(ctx)
	a := &app{ctx: ctx, cancel: cancel, logConf: lcf, logger: log}
	var err error

	log.Debug("Loading configuration.")
	a.config, err = config.Read()
	if err != nil {
		return nil, fmt.Errorf("couldn't load configuration: %w", err)
	}

	log.Debug("Successfully loaded configuration (also switching log level.)")
	lcf.Level.SetLevel(a.config.Logging.Level)

	log.Debug("Initializing Storage struct.")
	a.storage = storage.NewStorage(ctx, log)

	log.Debug("Initializing remote Client struct.")
	a.remote = remote.NewClient(log.Sugar(), remote.NewConfig(a.config.Remote.UsersURL, a.config.Remote.PostsURL))

	a.syncer = mirror.NewSyncer(log.Sugar(), a.storage)
	a.loader = loader.NewLoader(log.Sugar(), a.remote, a.syncer, a.storage)

	log.Debug("Initializing API struct.")
	a.api = api.NewAPI(ctx, log.Sugar(), a.storage, a.loader, api.NewConfig(a.config.Api.Port, a.config.Api.Templates))

	return a, nil
}

func (a *app) Run() error {
	a.logger.Debug("Connecting to PostgreSQL storage.")
	if err := a.storage.Connect(a.config.Storage.PostgresDSN); err != nil {
		return fmt.Errorf("couldn't connect to storage: %w", err)
	}
	defer func() {
		a.logger.Debug("Closing PostgreSQL storage.")
		if err := a.storage.Close(); err != nil {
			a.logger.Sugar().Errorf("Couldn't close storage: %s.", err)
		}
		a.logger.Debug("Closed PostgreSQL storage.")
	}()
	a.logger.Debug("Successfully connected to PostgreSQL storage.")

	if a.config.Mode == config.ModeLoad {
		a.logger.Info("Running one-shot load.")
		rep, err := a.loader.LoadAll(a.ctx)
		if err != nil {
			return fmt.Errorf("load failed: %w", err)
		}
		a.logger.Sugar().Infof("Loaded %d users and %d posts.", rep.Users, rep.Posts)
		return nil
	}

	a.logger.Debug("Ensuring database schema.")
	if err := a.storage.CreateTables(a.ctx); err != nil {
		return fmt.Errorf("couldn't create tables: %w", err)
	}

	a.logger.Debug("Starting HTTP server.")
	a.api.Listen()
	defer func() {
		a.logger.Debug("Closing HTTP server.")
		if err := a.api.Close(); err != nil {
			a.logger.Sugar().Errorf("Couldn't close HTTP server: %s.", err)
		}
		a.logger.Debug("Closed HTTP server.")
	}()

	a.logger.Info("Launch complete. Send SIGINT to gracefully terminate.")
	<-a.ctx.Done()
	a.logger.Info("SIGINT received, terminating.")

	return a.ctx.Err()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	lcf := zap.NewDevelopmentConfig() // to later switch level without reallocation
	lcf.Level.SetLevel(zapcore.DebugLevel)
	lcf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	lcf.DisableCaller = true
	log, _ := lcf.Build()

	log.Info("Initializing application.")
	a, err := newApp(ctx, lcf, log)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Sugar().Fatalf("Couldn't initialize application: %s.", err)
		}

		return
	}

	log.Debug("Initialization tasks complete, continuing with launch.")
	if err := a.Run(); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Sugar().Fatalf("Application crashed: %s.", err)
		}
	}
}
