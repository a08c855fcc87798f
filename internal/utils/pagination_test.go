// internal/utils/pagination_test.go
package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(rawQuery string) PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest("GET", "/api/products?"+rawQuery, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	p := paramsFor("")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, "created_at", p.Sort)
	assert.Equal(t, "desc", p.Order)
}

func TestGetPaginationParamsClampsAbuse(t *testing.T) {
	p := paramsFor("page=-3&limit=5000&order=sideways")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, "desc", p.Order)
}

func TestGetPaginationParamsPassesFilters(t *testing.T) {
	p := paramsFor("search=aviator&category=Sunglasses&sort=price&order=asc")

	assert.Equal(t, "aviator", p.Search)
	assert.Equal(t, "Sunglasses", p.Category)
	assert.Equal(t, "price", p.Sort)
	assert.Equal(t, "asc", p.Order)
}

func TestCreatePaginationResultCeilsTotalPages(t *testing.T) {
	result := CreatePaginationResult(nil, 41, PaginationParams{Page: 1, Limit: 20})

	assert.Equal(t, 3, result.TotalPages)
	assert.EqualValues(t, 41, result.Total)
}
