package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wosler/kiosk-api/internal/handler"
	"github.com/wosler/kiosk-api/internal/model"
	"github.com/wosler/kiosk-api/internal/service/directory"
	"github.com/wosler/kiosk-api/pkg/errors"
)

type Handler struct {
	service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{service: service}
}

// SearchBookings answers the kiosk lookup. Query parameters: clinic_id
// (required), exactly one of reference | health_card | the personal-details
// tuple (first_name, last_name, birth_date, phone), plus an optional date.
func (h *Handler) SearchBookings(c *gin.Context) {
	q := &model.BookingQuery{
		ClinicID:      c.Query("clinic_id"),
		ReferenceCode: c.Query("reference"),
		HealthCardID:  c.Query("health_card"),
		FirstName:     c.Query("first_name"),
		LastName:      c.Query("last_name"),
		BirthDate:     c.Query("birth_date"),
		Phone:         c.Query("phone"),
		Date:          c.Query("date"),
	}

	bookings, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		// The simulated outage goes out as a raw 5xx with no structured
		// body; kiosk flows must survive unstructured failures.
		if errors.IsCode(err, errors.ErrTransientService) {
			c.String(http.StatusInternalServerError, "Internal Server Error")
			return
		}
		status := http.StatusInternalServerError
		if appErr, ok := err.(*errors.AppError); ok {
			status = appErr.StatusCode()
		}
		c.JSON(status, handler.NewErrorResponse(err.Error()))
		return
	}

	// Zero matches is a success with an empty array, never an error.
	c.JSON(http.StatusOK, handler.NewSuccessResponse(bookings))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.GET("", h.SearchBookings)
	}
}
