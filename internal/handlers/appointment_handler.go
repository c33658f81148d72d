package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	checkAvailability *ucAppointment.CheckAvailability
	book              *ucAppointment.BookAppointment
	suggest           *ucAppointment.SuggestSlots
	listForPatient    *ucAppointment.ListPatientAppointments
	logger            *zap.Logger
}

func NewAppointmentHandler(
	checkAvailability *ucAppointment.CheckAvailability,
	book *ucAppointment.BookAppointment,
	suggest *ucAppointment.SuggestSlots,
	listForPatient *ucAppointment.ListPatientAppointments,
	logger *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		checkAvailability: checkAvailability,
		book:              book,
		suggest:           suggest,
		listForPatient:    listForPatient,
		logger:            logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SlotRequest struct {
	DoctorID  uint   `json:"doctor_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SuggestQuery struct {
	DoctorID       uint   `form:"doctor_id"`
	Date           string `form:"date"`
	Time           string `form:"time"`
	SlotMinutes    int    `form:"slot_minutes"`
	MaxSuggestions int    `form:"max"`
	MaxDays        int    `form:"max_days"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) CheckAvailability(c *gin.Context) {
	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid JSON body.")
		return
	}

	out, err := h.checkAvailability.Execute(c.Request.Context(), domain.Request{
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid JSON body.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookInput{
		DoctorID:  req.DoctorID,
		PatientID: middleware.UserID(c),
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// SUGGESTIONS
// ======================================================

func (h *AppointmentHandler) Suggestions(c *gin.Context) {
	var q SuggestQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid query parameters.")
		return
	}

	slots, err := h.suggest.Execute(c.Request.Context(), ucAppointment.SuggestSlotsInput{
		DoctorID:       q.DoctorID,
		Date:           q.Date,
		Time:           q.Time,
		SlotMinutes:    q.SlotMinutes,
		MaxSuggestions: q.MaxSuggestions,
		MaxDays:        q.MaxDays,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// PATIENT LISTING
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	list, err := h.listForPatient.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.List(c, list)
}
