package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gauthierbraillon/bragboard/internal/bragboard"
	"github.com/gauthierbraillon/bragboard/internal/config"
	"github.com/gauthierbraillon/bragboard/internal/display"
	"github.com/gauthierbraillon/bragboard/internal/feed"
	"github.com/gauthierbraillon/bragboard/internal/insights"
	"github.com/gauthierbraillon/bragboard/internal/logging"
	"github.com/gauthierbraillon/bragboard/internal/model"
	"github.com/gauthierbraillon/bragboard/internal/notify"
	"github.com/gauthierbraillon/bragboard/pkg/session"
)

// app bundles what every command needs: settings, logger, session and client.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	storage   *session.Storage
	holder    *session.Holder
	client    *bragboard.Client
	formatter *display.TerminalFormatter
}

// loadApp resolves configuration and the stored session. A missing session
// is not an error here; API calls report it as an auth failure.
func loadApp() (*app, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.Dir())
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return nil, err
	}

	storage := session.NewStorage(cfg.Dir())
	sess, err := storage.Load()
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		logger.Warn("ignoring unreadable session", zap.Error(err))
	}
	holder := session.NewHolder(sess)

	client := bragboard.NewClient(holder,
		bragboard.WithBaseURL(cfg.APIURL),
		bragboard.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}),
		bragboard.WithLogger(logger),
	)

	return &app{
		cfg:       cfg,
		logger:    logger,
		storage:   storage,
		holder:    holder,
		client:    client,
		formatter: display.NewTerminalFormatter(),
	}, nil
}

// run loads the app, hands it to fn and flushes the logger afterwards.
func run(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.logger.Sync() }()
		return fn(cmd, a, args)
	}
}

// identity is who the stored session belongs to.
func (a *app) identity() model.Identity {
	sess := a.holder.Session()
	if sess == nil {
		return model.Identity{}
	}
	return model.Identity{ID: model.ID(sess.UserID), Name: sess.UserName}
}

func (a *app) insightsOptions() insights.Options {
	return insights.Options{TopK: a.cfg.Insights.TopK, WindowDays: a.cfg.Insights.WindowDays}
}

// loadedStore returns a feed store that already holds the current feed.
func (a *app) loadedStore(ctx context.Context) (*feed.Store, error) {
	store := feed.NewStore(a.client, feed.WithIdentity(a.identity()), feed.WithLogger(a.logger))
	if err := store.Refresh(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// seenStore opens the configured notification snapshot store. The returned
// closer releases any connection it holds.
func (a *app) seenStore(ctx context.Context) (notify.SeenStore, func(), error) {
	if a.cfg.Notifications.Store != config.StoreRedis {
		return notify.NewFileStore(a.cfg.Dir()), func() {}, nil
	}

	redisCfg := a.cfg.Notifications.Redis
	client, err := notify.DialRedis(ctx, redisCfg.Addr, redisCfg.Password, redisCfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("notification store unavailable: %w", err)
	}
	user := a.identity().ID.String()
	if user == "" {
		user = "anonymous"
	}
	store := notify.NewRedisStore(notify.NewRedisAdapter(client), user, a.cfg.RedisTTL())
	return store, func() { _ = client.Close() }, nil
}
