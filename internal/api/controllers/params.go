package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"payledger/pkg/utils"
)

// parseIDParam reads a UUID path parameter, answering 400 itself on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.HandleServiceError(c, utils.Invalid("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}
