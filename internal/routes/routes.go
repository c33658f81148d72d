package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// Deps is what the HTTP surface needs from the process. DB is nil when the
// service runs on the in-memory store.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Repo      domain.Repository
	Inbox     notification.Inbox
	Publisher notification.Publisher
	Audit     *audit.Dispatcher
	DB        *gorm.DB
	Location  *time.Location
	Clock     calendar.Clock
}

func (d Deps) suggestDefaults() ucAppointment.SuggestDefaults {
	return ucAppointment.SuggestDefaults{
		SlotMinutes:    d.Config.SuggestSlotMinutes,
		MaxSuggestions: d.Config.SuggestMax,
		MaxDays:        d.Config.SuggestMaxDays,
	}
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	// ======================================================
	// DOMAIN SERVICES
	// ======================================================
	checker := domain.NewChecker(d.Repo, d.Location, d.Clock)
	suggester := domain.NewSuggester(d.Repo)

	// ======================================================
	// USE CASES
	// ======================================================
	checkAvailabilityUC := ucAppointment.NewCheckAvailability(
		checker,
		suggester,
		d.suggestDefaults(),
	)

	bookUC := ucAppointment.NewBookAppointment(
		d.Repo,
		checker,
		d.Audit,
		d.Publisher,
		d.Logger,
	)

	suggestUC := ucAppointment.NewSuggestSlots(
		suggester,
		d.Location,
		d.Clock,
		d.suggestDefaults(),
	)

	listForPatientUC := ucAppointment.NewListPatientAppointments(d.Repo)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(d.Repo, d.Location)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		d.Repo,
		d.Clock,
		d.Audit,
		d.Publisher,
		d.Logger,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		checkAvailabilityUC,
		bookUC,
		suggestUC,
		listForPatientUC,
		d.Logger,
	)

	doctorHandler := handlers.NewDoctorAppointmentHandler(
		listByDateUC,
		updateStatusUC,
		d.Logger,
	)

	notificationHandler := handlers.NewNotificationHandler(d.Inbox, d.Logger)
	meHandler := handlers.NewMeHandler(d.Repo, d.Logger)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
	{
		api.GET("/me", meHandler.GetMe)
		api.GET("/me/appointments", appointmentHandler.ListMine)

		api.POST("/appointments/availability", appointmentHandler.CheckAvailability)
		api.GET("/appointments/suggestions", appointmentHandler.Suggestions)
		api.POST("/appointments", appointmentHandler.Book)

		api.GET("/notifications", notificationHandler.List)
		api.POST("/notifications/seen", notificationHandler.MarkAllSeen)

		doctor := api.Group("/doctor")
		doctor.Use(middleware.RequireRole(middleware.RoleDoctor))
		{
			doctor.GET("/appointments", doctorHandler.ListByDate)
			doctor.PATCH("/appointments/:id/status", doctorHandler.UpdateStatus)

			if d.DB != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Repo, d.Location, d.Logger)
				doctor.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
