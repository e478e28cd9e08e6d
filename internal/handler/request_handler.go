package handler

import (
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/application"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/response"
	"github.com/gin-gonic/gin"
)

// RequestHandler handles HTTP requests for item requests.
type RequestHandler struct {
	requests *application.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requests *application.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// RegisterRoutes registers all item request routes.
func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/api/v1/requests")
	requests.Use(middleware.IdentityMiddleware())
	{
		requests.POST("", h.AddRequest)
		requests.GET("", h.ListOwnRequests)
		requests.GET("/all", h.ListOtherRequests)
		requests.GET("/:id", h.GetRequest)
	}
}

// AddRequest handles POST /api/v1/requests.
func (h *RequestHandler) AddRequest(c *gin.Context) {
	requesterID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateItemRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.requests.AddRequest(c.Request.Context(), requesterID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListOwnRequests handles GET /api/v1/requests.
func (h *RequestHandler) ListOwnRequests(c *gin.Context) {
	requesterID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.requests.GetOwnRequests(c.Request.Context(), requesterID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListOtherRequests handles GET /api/v1/requests/all.
func (h *RequestHandler) ListOtherRequests(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := h.requests.GetOtherRequests(c.Request.Context(), userID, page.From, page.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetRequest handles GET /api/v1/requests/:id.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	requestID, ok := pathID(c, "request")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.requests.GetRequest(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
