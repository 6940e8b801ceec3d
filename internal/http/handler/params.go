package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/idrsdev/agile-task/common/id"
	"github.com/idrsdev/agile-task/internal/http/dto"
)

func pathID(c *gin.Context, name string) (int64, bool) {
	parsed, err := id.Parse(c.Param(name))
	if err != nil {
		abort(c, http.StatusBadRequest, dto.CodeValidation, "invalid "+name)
		return 0, false
	}
	return parsed, true
}
