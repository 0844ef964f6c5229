package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/zagroshq/cmms-api/internal/domain"
)

func testContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, rec
}

func TestRespondDomainErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("bad input"), http.StatusUnprocessableEntity},
		{"conflict", domain.NewConflictError("already there"), http.StatusConflict},
		{"not found", domain.NewNotFoundError("nope"), http.StatusNotFound},
		{"unknown", errors.New("driver exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := testContext(t, "/api/assets")
			respondDomainError(c, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRespondDomainErrorHidesInternalDetail(t *testing.T) {
	c, rec := testContext(t, "/api/assets")
	respondDomainError(c, errors.New("pq: connection refused"))
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Contains(t, rec.Body.String(), "internal error")
}

func TestPagination(t *testing.T) {
	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 30},
		{"?page=3&limit=10", 3, 10},
		{"?page=0&limit=0", 1, 30},
		{"?page=-5&limit=9999", 1, 100},
		{"?page=abc&limit=xyz", 1, 30},
	}
	for _, tc := range cases {
		c, _ := testContext(t, "/api/assets"+tc.query)
		page, limit := pagination(c)
		assert.Equal(t, tc.wantPage, page, tc.query)
		assert.Equal(t, tc.wantLimit, limit, tc.query)
	}
}
