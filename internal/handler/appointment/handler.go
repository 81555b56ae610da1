package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicagenda/clinic-api/internal/handler"
	"github.com/clinicagenda/clinic-api/internal/model"
	appointmentService "github.com/clinicagenda/clinic-api/internal/service/appointment"
	"github.com/clinicagenda/clinic-api/pkg/event"
)

type Handler struct {
	service appointmentService.AppointmentServicer
	events  *event.Recorder
}

func NewHandler(service appointmentService.AppointmentServicer, events *event.Recorder) *Handler {
	return &Handler{service: service, events: events}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	session := handler.SessionFromContext(c)

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appointment, err := h.service.CreateAppointment(c.Request.Context(), session, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.events.Record(c.Request.Context(), event.TypeAppointmentBooked, appointment)

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	session := handler.SessionFromContext(c)

	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), session, filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	session := handler.SessionFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	appointment, err := h.service.GetAppointment(c.Request.Context(), session, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	session := handler.SessionFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), session, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	h.events.Record(c.Request.Context(), event.TypeAppointmentCancel, gin.H{"id": id})

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func parseFilters(c *gin.Context) (*model.AppointmentFilters, error) {
	filters := &model.AppointmentFilters{}

	if v := c.Query("doctor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		filters.DoctorID = &id
	}
	if v := c.Query("patient_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		filters.PatientID = &id
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		filters.StartDate = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		filters.EndDate = &t
	}

	return filters, nil
}
