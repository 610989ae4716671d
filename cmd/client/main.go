package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fastygo/storefront/internal/config"
	"github.com/fastygo/storefront/internal/services"
	"github.com/fastygo/storefront/internal/services/lifecycle"
	"github.com/fastygo/storefront/internal/token"
	"github.com/fastygo/storefront/pkg/httpcontext"
	"github.com/fastygo/storefront/pkg/logger"
	"github.com/fastygo/storefront/repository/boltdb"
	"github.com/fastygo/storefront/repository/httpapi"
	"github.com/fastygo/storefront/usecase"
	cartUC "github.com/fastygo/storefront/usecase/cart"
	"github.com/fastygo/storefront/usecase/notifications"
	sessionUC "github.com/fastygo/storefront/usecase/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)

	db, err := boltdb.Open(cfg.Store.Path, cfg.Store.SessionBucket, cfg.Store.CartBucket)
	if err != nil {
		zapLogger.Fatal("failed to open local store", zap.Error(err))
	}
	manager.Register("local_store", func(ctx context.Context) error {
		return db.Close()
	})

	codec := token.NewCodec()
	events := usecase.NewEmitter(zapLogger)

	sessionRepo := boltdb.NewSessionRepository(db, cfg.Store.SessionBucket)
	cartRepo := boltdb.NewCartRepository(db, cfg.Store.CartBucket)

	sessions := sessionUC.New(sessionRepo, codec, events, zapLogger)
	if err := sessions.Restore(appCtx); err != nil {
		zapLogger.Warn("session rehydration failed, starting logged out", zap.Error(err))
	}

	carts := cartUC.New(cartRepo, zapLogger)
	events.Subscribe(usecase.EventLoggedOut, "cart", func(ctx context.Context) error {
		return carts.Clear(ctx)
	})

	apiClient := httpapi.NewClient(cfg.API.BaseURL, sessions.AccessToken, cfg.API.RequestTimeout, zapLogger)
	feed := httpapi.NewNotificationRepository(apiClient)

	ctxs := httpcontext.NewBuilder(cfg.API.RequestTimeout)

	channel := notifications.New(feed, ctxs, cfg.Notify.PollInterval, zapLogger)
	channel.Start()
	manager.Register("notification_channel", func(ctx context.Context) error {
		channel.Stop()
		return nil
	})

	if cfg.Watcher.Enabled {
		watcher := services.NewExpiryWatcher(sessions, codec, zapLogger, services.WatcherConfig{
			Interval: cfg.Watcher.Interval,
		})
		watcher.Start()
		manager.Register("expiry_watcher", func(ctx context.Context) error {
			watcher.Stop(ctx)
			return nil
		})
	}

	zapLogger.Info("storefront client started",
		zap.String("api", cfg.API.BaseURL),
		zap.Bool("authenticated", sessions.IsAuthenticated()))

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
