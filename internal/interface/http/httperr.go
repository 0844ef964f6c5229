package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/pkg/response"
)

// respondDomainError maps the domain error taxonomy onto HTTP statuses:
// validation 422, conflict 409, not found 404, anything else 500 with the
// detail withheld.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		response.Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
	case domain.IsConflict(err):
		response.Error(c, http.StatusConflict, err.Error(), nil)
	case domain.IsNotFound(err):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	default:
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}

const (
	defaultPageLimit = 30
	maxPageLimit     = 100
)

// pagination parses ?page= and ?limit= with clamping. Repositories trust the
// values they receive; the clamp lives here at the boundary.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
