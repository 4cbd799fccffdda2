package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/revxlabs/revx/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

// GetPaginationParams extracts and validates limit/offset from the request.
// The admin endpoints take limit/offset directly rather than page numbers.
func GetPaginationParams(c *gin.Context) PaginationParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultAdminLimit)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultAdminLimit
	}
	if offset < 0 {
		offset = 0
	}

	return PaginationParams{
		Limit:  limit,
		Offset: offset,
	}
}
