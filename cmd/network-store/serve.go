package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridstore/network-store/internal/config"
	"github.com/gridstore/network-store/internal/handlers"
	"github.com/gridstore/network-store/internal/migration"
	"github.com/gridstore/network-store/internal/server"
	"github.com/gridstore/network-store/internal/services"
	"github.com/gridstore/network-store/internal/store"
	"github.com/gridstore/network-store/internal/store/migrations"
	"github.com/gridstore/network-store/pkg/scheduler"
)

func addStoreFlags(cmd *cobra.Command, cfg *config.Configuration) {
	cmd.Flags().StringVar(&cfg.Store.DSN, "store-dsn", cfg.Store.DSN, "DuckDB path, :memory:, or postgres:// url")
	cmd.Flags().IntVar(&cfg.Store.MaxInListSize, "store-max-in-list-size", cfg.Store.MaxInListSize, "maximum number of values in one IN list")
	cmd.Flags().IntVar(&cfg.Migration.NumWorkers, "migration-workers", cfg.Migration.NumWorkers, "number of variants migrated concurrently")
}

// openStore connects to the backing store and applies the pending schema versions.
func openStore(ctx context.Context, cfg *config.Configuration) (*sql.DB, *store.Store, error) {
	db, err := store.NewDB(cfg.Store.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Run(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, store.NewStore(db, store.WithMaxInListSize(cfg.Store.MaxInListSize)), nil
}

func newServeCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the network store over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			log := zap.S().Named("serve")
			log.Infow("starting network store", "config", cfg.DebugMap())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			sched := scheduler.NewScheduler(cfg.Migration.NumWorkers)
			defer sched.Close()

			h := handlers.New(
				services.NewNetworkService(st),
				services.NewMigrationService(st, migration.NewEngine(st), sched),
			)

			var admin []gin.HandlerFunc
			if cfg.Auth.Enabled {
				admin = append(admin, handlers.JWTAuth([]byte(cfg.Auth.Secret)))
			} else {
				log.Warn("admin routes are not authenticated")
			}

			srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
				handlers.RegisterHandlers(router, h, admin...)
			})
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start(ctx)
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "server mode: dev or prod")
	cmd.Flags().IntVar(&cfg.Server.HTTPPort, "http-port", cfg.Server.HTTPPort, "HTTP listening port")
	cmd.Flags().BoolVar(&cfg.Auth.Enabled, "auth-enabled", cfg.Auth.Enabled, "require a bearer token on admin routes")
	cmd.Flags().StringVar(&cfg.Auth.Secret, "auth-secret", cfg.Auth.Secret, "HS256 secret of admin tokens")
	addStoreFlags(cmd, cfg)
	return cmd
}
