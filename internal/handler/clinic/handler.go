package clinic

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicagenda/clinic-api/internal/handler"
	"github.com/clinicagenda/clinic-api/internal/model"
	authService "github.com/clinicagenda/clinic-api/internal/service/auth"
	clinicService "github.com/clinicagenda/clinic-api/internal/service/clinic"
	"github.com/clinicagenda/clinic-api/pkg/event"
)

type Handler struct {
	service clinicService.ClinicServicer
	authSvc authService.AuthServicer
	events  *event.Recorder
}

func NewHandler(service clinicService.ClinicServicer, authSvc authService.AuthServicer, events *event.Recorder) *Handler {
	return &Handler{service: service, authSvc: authSvc, events: events}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clinics := r.Group("/clinics")
	{
		clinics.POST("", h.CreateClinic)
		clinics.GET("/:id", h.GetClinic)
		clinics.PUT("/:id", h.UpdateClinic)
		clinics.DELETE("/:id", h.DeleteClinic)
		clinics.GET("/:id/members", h.ListMembers)
		clinics.POST("/:id/members", h.AddMember)
	}
}

func (h *Handler) CreateClinic(c *gin.Context) {
	session := handler.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	var req model.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	clinic, err := h.service.CreateClinic(c.Request.Context(), session.UserID, req.Name)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.events.Record(c.Request.Context(), event.TypeClinicCreated, clinic)

	// Reissue the session so the new clinic becomes the tenant scope without
	// a fresh login.
	tokens, err := h.authSvc.RefreshSession(c.Request.Context(), session.UserID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(tokens))
}

func (h *Handler) GetClinic(c *gin.Context) {
	session := handler.SessionFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	clinic, err := h.service.GetClinic(c.Request.Context(), session, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(clinic))
}

func (h *Handler) UpdateClinic(c *gin.Context) {
	session := handler.SessionFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	var req model.UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	clinic, err := h.service.UpdateClinic(c.Request.Context(), session, id, req.Name)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(clinic))
}

// AddMember grants another user membership in the clinic. The new member's
// next token reissue picks up the clinic claim.
func (h *Handler) AddMember(c *gin.Context) {
	session := handler.SessionFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	var req model.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.AddMember(c.Request.Context(), session, id, req.UserID); err != nil {
		handler.RespondError(c, err)
		return
	}

	h.events.Record(c.Request.Context(), event.TypeClinicMemberAdded, gin.H{
		"clinic_id": id,
		"user_id":   req.UserID,
	})

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(nil))
}

func (h *Handler) DeleteClinic(c *gin.Context) {
	session := handler.SessionFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	if err := h.service.DeleteClinic(c.Request.Context(), session, id); err != nil {
		handler.RespondError(c, err)
		return
	}

	h.events.Record(c.Request.Context(), event.TypeClinicDeleted, gin.H{"id": id})

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListMembers(c *gin.Context) {
	session := handler.SessionFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), session, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(members))
}
