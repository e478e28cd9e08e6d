package handler

import (
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pageQuery binds from/size. from is an absolute offset.
type pageQuery struct {
	From int `form:"from,default=0" binding:"min=0"`
	Size int `form:"size,default=10" binding:"min=1"`
}

func bindPage(c *gin.Context) (pageQuery, bool) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid pagination: from must be >= 0 and size > 0")
		return q, false
	}
	return q, true
}

func pathID(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid "+entity+" ID")
		return uuid.Nil, false
	}
	return id, true
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "missing "+middleware.UserIDHeader+" header")
	}
	return id, ok
}
