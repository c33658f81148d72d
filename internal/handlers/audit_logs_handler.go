package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db     *gorm.DB
	repo   domain.Repository
	loc    *time.Location
	logger *zap.Logger
}

func NewAuditLogsHandler(
	db *gorm.DB,
	repo domain.Repository,
	loc *time.Location,
	logger *zap.Logger,
) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, repo: repo, loc: loc, logger: logger}
}

// List returns the calling doctor's audit trail, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	doctor, err := h.repo.GetDoctorByUserID(c.Request.Context(), middleware.UserID(c))
	if errors.Is(err, domain.ErrRecordNotFound) {
		err = domain.ErrDoctorNotFound
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Base query, always scoped to the doctor
	// --------------------------------------------------

	q := h.db.
		WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("doctor_id = ?", doctor.ID)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if from, err := calendar.ParseDate(c.Query("from"), h.loc); err == nil {
		q = q.Where("created_at >= ?", from)
	}

	if to, err := calendar.ParseDate(c.Query("to"), h.loc); err == nil {
		q = q.Where("created_at < ?", calendar.AddDays(to, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		h.logger.Error("count audit logs", zap.Error(err))
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		h.logger.Error("list audit logs", zap.Error(err))
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
