package handlers

import (
	"net/http"

	"eventomir_backend/internal/middleware"
	"eventomir_backend/internal/models"
	"eventomir_backend/internal/repositories"
	"eventomir_backend/internal/services"
	"eventomir_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	*BaseHandler
	listingService services.ListingService
}

func NewListingHandler(base *BaseHandler, listingService services.ListingService) *ListingHandler {
	return &ListingHandler{
		BaseHandler:    base,
		listingService: listingService,
	}
}

func (h *ListingHandler) RegisterRoutes(r *gin.RouterGroup) {
	listings := r.Group("/listings")
	listings.Use(middleware.AuthMiddleware())
	{
		listings.GET("", h.ListPublic)
		listings.POST("", h.CreateListing)
		listings.GET("/mine", h.ListMine)
		listings.GET("/:listingId", h.GetListing)
		listings.PUT("/:listingId", h.UpdateListing)
	}

	admin := r.Group("/admin/listings")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.ListForModeration)
		admin.PUT("/:listingId/moderate", h.Moderate)
	}
}

func (h *ListingHandler) ListPublic(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	criteria := repositories.ListingCriteria{
		Category: c.Query("category"),
		City:     c.Query("city"),
		Page:     page,
		PageSize: pageSize,
	}

	response, err := h.listingService.ListPublic(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ListingHandler) CreateListing(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.listingService.CreateListing(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *ListingHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.listingService.ListMine(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ListingHandler) GetListing(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.listingService.GetListing(userID, c.Param("listingId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ListingHandler) UpdateListing(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateListingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.listingService.UpdateListing(userID, c.Param("listingId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ListingHandler) ListForModeration(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	criteria := repositories.ListingCriteria{
		Status:   models.ModerationStatus(c.DefaultQuery("status", string(models.ModerationStatusPending))),
		Page:     page,
		PageSize: pageSize,
	}

	response, err := h.listingService.ListPending(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ListingHandler) Moderate(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.ModerateListingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.listingService.Moderate(c.Param("listingId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
