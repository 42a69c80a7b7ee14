package handlers

import (
	"net/http"

	"eventomir_backend/internal/middleware"
	"eventomir_backend/internal/models"
	"eventomir_backend/internal/services"
	"eventomir_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PartnerHandler struct {
	*BaseHandler
	partnerService services.PartnerService
}

func NewPartnerHandler(base *BaseHandler, partnerService services.PartnerService) *PartnerHandler {
	return &PartnerHandler{
		BaseHandler:    base,
		partnerService: partnerService,
	}
}

func (h *PartnerHandler) RegisterRoutes(r *gin.RouterGroup) {
	partners := r.Group("/partners")
	partners.Use(middleware.AuthMiddleware())
	{
		partners.POST("/apply", h.Apply)
		partners.GET("/me", h.GetOwn)
	}

	admin := r.Group("/admin/partners")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.List)
		admin.PUT("/:applicationId/decide", h.Decide)
	}
}

func (h *PartnerHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PartnerApplyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.partnerService.Apply(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *PartnerHandler) GetOwn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.partnerService.GetOwn(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *PartnerHandler) List(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	status := models.PartnerStatus(c.DefaultQuery("status", string(models.PartnerStatusPending)))

	responses, err := h.partnerService.ListByStatus(status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": responses, "total": len(responses)})
}

func (h *PartnerHandler) Decide(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.DecidePartnerRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.partnerService.Decide(c.Param("applicationId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
