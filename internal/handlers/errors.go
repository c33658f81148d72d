package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

var businessStatus = map[string]int{
	"invalid_time_format":   http.StatusBadRequest,
	"invalid_status":        http.StatusBadRequest,
	"slot_conflict":         http.StatusConflict,
	"invalid_state":         http.StatusConflict,
	"not_appointment_owner": http.StatusForbidden,
}

var businessMessage = map[string]string{
	"invalid_time_format":   "Date must be YYYY-MM-DD and times HH:mm.",
	"invalid_status":        "Status must be approved or rejected.",
	"slot_conflict":         "The slot is already booked.",
	"invalid_state":         "Only pending appointments can be decided.",
	"not_appointment_owner": "The appointment belongs to another doctor.",
	"doctor_not_found":      "Doctor not found.",
	"patient_not_found":     "Patient not found.",
	"appointment_not_found": "Appointment not found.",
}

// writeError maps the domain error taxonomy onto HTTP. Anything it does not
// recognise is a 500 and gets logged.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		ve domain.ValidationError
		rv domain.RuleViolation
	)

	switch {
	case errors.As(err, &ve):
		httperr.Write(c, http.StatusBadRequest, "validation_error", ve.Field+" "+ve.Problem)
		return

	case errors.As(err, &rv):
		httperr.WriteReason(c, http.StatusUnprocessableEntity, "rule_violation",
			"The requested slot breaks a clinic rule.", string(rv.Reason))
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		status, known := businessStatus[code]
		if !known && strings.HasSuffix(code, "_not_found") {
			status, known = http.StatusNotFound, true
		}
		if known {
			if code == "slot_conflict" {
				httperr.WriteReason(c, status, code, businessMessage[code], string(domain.ReasonAlreadyBooked))
				return
			}
			httperr.Write(c, status, code, businessMessage[code])
			return
		}
	}

	logger.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	httperr.Internal(c, "internal_error", "Something went wrong, please try again.")
}
