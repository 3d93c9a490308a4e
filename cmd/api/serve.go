package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nannyhub/babysitter-api/internal/audit"
	"github.com/nannyhub/babysitter-api/internal/auth"
	"github.com/nannyhub/babysitter-api/internal/clock"
	dbpkg "github.com/nannyhub/babysitter-api/internal/db"
	"github.com/nannyhub/babysitter-api/internal/infra/storage"
	"github.com/nannyhub/babysitter-api/internal/routes"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = time.Minute
	shutdownTimeout = 20 * time.Second
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}
}

func (a *app) serve() error {
	cfg, log := a.cfg, a.log

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return err
	}
	defer dbpkg.Close(db)

	if cfg.DBAutoMigrate {
		if err := dbpkg.Migrate(db); err != nil {
			return err
		}
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	var revocations auth.RevocationStore = auth.NoopRevocationStore{}
	if cfg.RevocationEnabled() {
		rdb := auth.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisAuthDB)
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable, revocation checks will fail open", zap.Error(err))
		}
		cancel()

		revocations = auth.NewRedisRevocationStore(rdb)
	} else {
		log.Info("REDIS_ADDR not set, logout will not revoke tokens")
	}

	deps := routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         log,
		Audit:       auditDispatcher,
		Revocations: revocations,
		Now:         clock.Now,
	}
	if photos := storage.NewS3PhotoStore(cfg); photos != nil {
		deps.Photos = photos
	} else {
		log.Info("S3_BUCKET not set, photo uploads disabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		log.Warn("audit queue not fully drained", zap.Error(err))
	}

	log.Info("stopped")
	return nil
}
