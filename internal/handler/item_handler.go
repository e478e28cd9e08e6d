package handler

import (
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/application"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/response"
	"github.com/gin-gonic/gin"
)

// ItemHandler handles HTTP requests for items and their comments.
type ItemHandler struct {
	items    *application.ItemService
	comments *application.CommentService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(items *application.ItemService, comments *application.CommentService) *ItemHandler {
	return &ItemHandler{items: items, comments: comments}
}

// RegisterRoutes registers all item routes.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/api/v1/items")
	items.Use(middleware.IdentityMiddleware())
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListOwnerItems)
		items.GET("/search", h.SearchItems)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
		items.POST("/:id/comment", h.AddComment)
	}
}

// CreateItem handles POST /api/v1/items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.items.CreateItem(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateItem handles PATCH /api/v1/items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	itemID, ok := pathID(c, "item")
	if !ok {
		return
	}
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.items.UpdateItem(c.Request.Context(), ownerID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteItem handles DELETE /api/v1/items/:id.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	itemID, ok := pathID(c, "item")
	if !ok {
		return
	}
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.items.DeleteItem(c.Request.Context(), ownerID, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetItem handles GET /api/v1/items/:id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, ok := pathID(c, "item")
	if !ok {
		return
	}
	viewerID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.items.GetItem(c.Request.Context(), viewerID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListOwnerItems handles GET /api/v1/items.
func (h *ItemHandler) ListOwnerItems(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := h.items.GetOwnerItems(c.Request.Context(), ownerID, page.From, page.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SearchItems handles GET /api/v1/items/search?text=.
func (h *ItemHandler) SearchItems(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := h.items.SearchItems(c.Request.Context(), c.Query("text"), page.From, page.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddComment handles POST /api/v1/items/:id/comment.
func (h *ItemHandler) AddComment(c *gin.Context) {
	itemID, ok := pathID(c, "item")
	if !ok {
		return
	}
	authorID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.comments.AddComment(c.Request.Context(), authorID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
