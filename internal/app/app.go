package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/db"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
)

// App owns the long-lived resources of one process.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Location *time.Location
	Clock    calendar.Clock

	Repo   domain.Repository
	Inbox  notification.Inbox
	Outbox *notification.Outbox
	Audit  *audit.Dispatcher

	DB    *db.DB
	Redis *redis.Client
}

// New connects the store and the notification transport chosen by cfg.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	loc := calendar.Location(cfg.ClinicTimezone)

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Location: loc,
		Clock:    calendar.SystemClock(loc),
	}

	switch cfg.Store {
	case config.StoreMemory:
		mem := infraRepo.NewMemoryRepository()
		seedDemo(mem)
		a.Repo = mem
		a.Inbox = notification.NewMemoryInbox()

	default:
		database, err := db.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, logger); err != nil {
			database.Close()
			return nil, err
		}

		a.DB = database
		a.Repo = infraRepo.NewAppointmentGormRepository(database.Gorm, loc)
		a.Inbox = notification.NewGormInbox(database.Gorm)
		a.Audit = audit.NewDispatcher(audit.New(database.Gorm), logger)
	}

	var sink notification.Sink = a.Inbox
	if cfg.NotifyTransport == config.TransportRedis {
		client, err := OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Redis = client
		sink = notification.NewRedisQueue(client, cfg.NotifyQueue)
	}

	a.Outbox = notification.NewOutbox(sink, cfg.NotifyBuffer, logger)

	logger.Info("application ready",
		zap.String("store", cfg.Store),
		zap.String("notify_transport", cfg.NotifyTransport),
		zap.String("timezone", loc.String()),
	)
	return a, nil
}

func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (a *App) gorm() *gorm.DB {
	if a.DB == nil {
		return nil
	}
	return a.DB.Gorm
}

func (a *App) RouteDeps() routes.Deps {
	return routes.Deps{
		Config:    a.Config,
		Logger:    a.Logger,
		Repo:      a.Repo,
		Inbox:     a.Inbox,
		Publisher: a.Outbox,
		Audit:     a.Audit,
		DB:        a.gorm(),
		Location:  a.Location,
		Clock:     a.Clock,
	}
}

// Close drains the outbox before dropping connections.
func (a *App) Close() {
	if a.Outbox != nil {
		a.Outbox.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

// seedDemo gives a memory-backed process one bookable doctor (user 1) and
// one patient (user 2).
func seedDemo(r *infraRepo.MemoryRepository) {
	r.AddUser(models.User{ID: 1, Name: "Ana Costa", Email: "ana.costa@clinic.test"})
	r.AddUser(models.User{ID: 2, Name: "John Doe", Email: "john.doe@example.com"})
	r.AddDoctor(models.Doctor{
		ID:             1,
		UserID:         1,
		FirstName:      "Ana",
		LastName:       "Costa",
		Specialization: "General Practice",
		Status:         "approved",
	})
}
