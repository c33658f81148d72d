package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

type DoctorAppointmentHandler struct {
	listByDate   *ucAppointment.ListAppointmentsByDate
	updateStatus *ucAppointment.UpdateStatus
	logger       *zap.Logger
}

func NewDoctorAppointmentHandler(
	listByDate *ucAppointment.ListAppointmentsByDate,
	updateStatus *ucAppointment.UpdateStatus,
	logger *zap.Logger,
) *DoctorAppointmentHandler {
	return &DoctorAppointmentHandler{
		listByDate:   listByDate,
		updateStatus: updateStatus,
		logger:       logger,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListByDate: GET /api/doctor/appointments?date=YYYY-MM-DD
func (h *DoctorAppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required (YYYY-MM-DD).")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), middleware.UserID(c), date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List(c, list)
}

func (h *DoctorAppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), ucAppointment.UpdateStatusInput{
		DoctorUserID:  middleware.UserID(c),
		AppointmentID: uint(id),
		Status:        req.Status,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, ap)
}
