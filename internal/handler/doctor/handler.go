package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicagenda/clinic-api/internal/handler"
	"github.com/clinicagenda/clinic-api/internal/model"
	doctorService "github.com/clinicagenda/clinic-api/internal/service/doctor"
	"github.com/clinicagenda/clinic-api/pkg/event"
)

type Handler struct {
	service doctorService.DoctorServicer
	events  *event.Recorder
}

func NewHandler(service doctorService.DoctorServicer, events *event.Recorder) *Handler {
	return &Handler{service: service, events: events}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.UpsertDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
		doctors.DELETE("/:id", h.DeleteDoctor)
		doctors.GET("/:id/availability", h.GetAvailability)
	}
}

// UpsertDoctor creates or, when the body carries an id, overwrites a doctor.
// The clinic scope comes from the session token.
func (h *Handler) UpsertDoctor(c *gin.Context) {
	session := handler.SessionFromContext(c)

	var req model.UpsertDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor, err := h.service.UpsertDoctor(c.Request.Context(), session, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.events.Record(c.Request.Context(), event.TypeDoctorUpsert, doctor)

	status := http.StatusCreated
	if req.ID != nil {
		status = http.StatusOK
	}
	c.JSON(status, handler.NewSuccessResponse(doctor))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	session := handler.SessionFromContext(c)

	doctors, err := h.service.ListDoctors(c.Request.Context(), session)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	session := handler.SessionFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	doctor, err := h.service.GetDoctor(c.Request.Context(), session, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	session := handler.SessionFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	if err := h.service.DeleteDoctor(c.Request.Context(), session, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	h.events.Record(c.Request.Context(), event.TypeDoctorDeleted, gin.H{"id": id})

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// GetAvailability returns the doctor's concrete from/to window for the
// current calendar week.
func (h *Handler) GetAvailability(c *gin.Context) {
	session := handler.SessionFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	window, err := h.service.GetAvailability(c.Request.Context(), session, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(window))
}
