package checkin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/wosler/kiosk-api/internal/handler"
	"github.com/wosler/kiosk-api/internal/model"
	checkinService "github.com/wosler/kiosk-api/internal/service/checkin"
	"github.com/wosler/kiosk-api/pkg/errors"
)

var validate = validator.New()

type Handler struct {
	service *checkinService.Service

	// now is swappable so tests can pin the clock.
	now func() time.Time
}

func NewHandler(service *checkinService.Service) *Handler {
	return &Handler{
		service: service,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CheckIn records a single arrival and echoes the identifier back.
func (h *Handler) CheckIn(c *gin.Context) {
	var req model.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("booking_id is required"))
		return
	}

	if err := h.service.CheckIn(c.Request.Context(), req.BookingID, h.now()); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.CheckInResponse{
		BookingID: req.BookingID,
		Message:   "patient checked in successfully",
	}))
}

// Verify compares a second identifying field (phone or health card) against
// the matched booking. A mismatch is a 400 and the kiosk lets the patient
// retry or switch methods; it never locks out.
func (h *Handler) Verify(c *gin.Context) {
	var req model.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if req.Method == model.VerifyByHealthCard {
		if err := validate.Var(req.Value, "alphanum,min=8,max=12"); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("health card number must be 8-12 alphanumeric characters"))
			return
		}
	}

	if err := h.service.VerifyIdentity(c.Request.Context(), &req); err != nil {
		status := http.StatusInternalServerError
		if appErr, ok := err.(*errors.AppError); ok {
			status = appErr.StatusCode()
		}
		c.JSON(status, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"verified": true}))
}

// CheckInAll runs the batch flow over the kiosk's current booking set.
// Partial completion is a valid terminal outcome, so the partial result is
// returned alongside the failure.
func (h *Handler) CheckInAll(c *gin.Context) {
	var req model.BatchCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result, err := h.service.CheckInAll(c.Request.Context(), req.ClinicID, req.BookingIDs, h.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, &handler.Response{
			Status:  "error",
			Message: err.Error(),
			Data:    result,
		})
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	checkins := r.Group("/checkins")
	{
		checkins.POST("", h.CheckIn)
		checkins.POST("/verify", h.Verify)
		checkins.POST("/batch", h.CheckInAll)
	}
}
