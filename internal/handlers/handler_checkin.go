package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fittrack/gym_backoffice/internal/core/ports/services"
	"github.com/fittrack/gym_backoffice/internal/dto"
	"github.com/fittrack/gym_backoffice/internal/middleware"
)

// checkInHandler handles the kiosk check-in endpoint.
type checkInHandler struct {
	attendanceService portssvc.AttendanceSvcFacade
}

func newCheckInHandler(as portssvc.AttendanceSvcFacade) *checkInHandler {
	return &checkInHandler{attendanceService: as}
}

// registerCheckInRoutes registers the kiosk check-in route.
func registerCheckInRoutes(rg *gin.RouterGroup, attendanceService portssvc.AttendanceSvcFacade, rateLimit gin.HandlerFunc) {
	h := newCheckInHandler(attendanceService)
	rg.POST("/checkin", rateLimit, h.checkIn)
}

// checkIn godoc
// @Summary Member check-in
// @Description Registers a check-in by DNI and returns the membership verdict. The verdict is advisory; entry is never blocked.
// @Tags attendance
// @Accept json
// @Produce json
// @Param checkin body dto.CheckInRequest true "Member DNI"
// @Success 200 {object} dto.CheckInResponse
// @Failure 400 {object} map[string]string "Missing DNI"
// @Failure 404 {object} map[string]string "Member not found"
// @Router /checkin [post]
func (h *checkInHandler) checkIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for checkIn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.attendanceService.CheckIn(c.Request.Context(), req.NationalID)
	if err != nil {
		respondLedgerError(c, err, "Failed to register check-in")
		return
	}

	c.JSON(http.StatusOK, dto.ToCheckInResponse(result))
}
