package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/davitk/account-console/internal/accountapi"
	"github.com/davitk/account-console/internal/api/http/httpctx"
	"github.com/davitk/account-console/internal/api/http/router"
	"github.com/davitk/account-console/internal/config"
	"github.com/davitk/account-console/internal/logger"
	"github.com/davitk/account-console/internal/model"
	"github.com/davitk/account-console/internal/repository/memory"
	redisrepo "github.com/davitk/account-console/internal/repository/redis"
	"github.com/davitk/account-console/internal/server"
	"github.com/davitk/account-console/internal/service"
	"github.com/davitk/account-console/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize session store", "error", err)
	}

	apiClient := accountapi.NewClient(cfg.AccountAPI.Endpoint, cfg.AccountAPI.Timeout)
	verificationService := service.NewVerification(store, apiClient, logger)
	accountService := service.NewAccount(apiClient, logger)

	inspector := token.NewInspector()
	ctxMgr := httpctx.NewManager()

	r := router.New(verificationService, accountService, inspector, ctxMgr, cfg.HTTP.AllowedOrigins, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newSessionStore(ctx context.Context, cfg *config.Config) (model.VerificationStore, error) {
	if cfg.Session.Store == config.SessionStoreMemory {
		return memory.NewSessionStore(), nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return redisrepo.NewSessionStore(client, cfg.Session.TTL), nil
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
