package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
)

type MeHandler struct {
	repo   domain.Repository
	logger *zap.Logger
}

func NewMeHandler(repo domain.Repository, logger *zap.Logger) *MeHandler {
	return &MeHandler{repo: repo, logger: logger}
}

// GetMe returns the caller and, for doctors, their profile.
func (h *MeHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	user, err := h.repo.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		err = domain.ErrPatientNotFound
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := gin.H{
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"is_admin": user.IsAdmin,
			"role":     c.GetString(middleware.ContextUserRole),
		},
	}

	doctor, err := h.repo.GetDoctorByUserID(ctx, userID)
	switch {
	case err == nil:
		out["doctor"] = doctor
	case !errors.Is(err, domain.ErrRecordNotFound):
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
