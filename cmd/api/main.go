package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/app"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "clinic",
		Short:        "Clinic appointment scheduling service",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(notifierCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.Env), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// ======================================================
// serve
// ======================================================

func serveCmd() *cobra.Command {
	var reminders bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(reminders)
		},
	}
	cmd.Flags().BoolVar(&reminders, "reminders", true, "Run the daily reminder job in this process")
	return cmd
}

func runServer(reminders bool) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signalContext()
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	if reminders {
		job := ucAppointment.NewSendReminders(a.Repo, a.Clock, a.Outbox, log)
		scheduler := app.NewScheduler(job, a.Clock, log)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, a.RouteDeps())

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// ======================================================
// notifier
// ======================================================

func notifierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifier",
		Short: "Move queued notifications from redis into the in-app inbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			if cfg.Store != config.StorePostgres {
				return fmt.Errorf("notifier needs STORE=%s", config.StorePostgres)
			}

			ctx, stop := signalContext()
			defer stop()

			database, err := db.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			client, err := app.OpenRedis(ctx, cfg.RedisURL)
			if err != nil {
				return err
			}
			defer client.Close()

			queue := notification.NewRedisQueue(client, cfg.NotifyQueue)
			inbox := notification.NewGormInbox(database.Gorm)

			log.Info("notifier consuming", zap.String("queue", cfg.NotifyQueue))
			return queue.Consume(ctx, inbox, log)
		},
	}
}

// ======================================================
// migrate
// ======================================================

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	withMigrator := func(fn func(ctx context.Context, mg *db.Migrator) error) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := context.Background()
		database, err := db.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		mg, err := db.NewMigrator(database.SQL, log)
		if err != nil {
			return err
		}
		return fn(ctx, mg)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(ctx context.Context, mg *db.Migrator) error {
				return mg.Up(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(ctx context.Context, mg *db.Migrator) error {
				return mg.Down(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(ctx context.Context, mg *db.Migrator) error {
				v, err := mg.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("schema version: %d\n", v)
				return nil
			})
		},
	})

	return cmd
}
