package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErrorAPIError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, Conflict("bill for %s already paid", "2026-10"))

	require.Equal(t, http.StatusConflict, w.Code)
	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Conflict", body.Error)
	assert.Equal(t, "bill for 2026-10 already paid", body.Message)
	assert.True(t, c.IsAborted())
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestRespondErrorUnwrapsWrappedAPIError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	err := errors.Join(errors.New("context"), NotFound("resident"))
	RespondError(c, err)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomValidators(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerOn(v))

	type req struct {
		Period string `validate:"period"`
		Phone  string `validate:"phone"`
		Code   string `validate:"code"`
		Clock  string `validate:"clock"`
	}

	assert.NoError(t, v.Struct(req{Period: "2026-10", Phone: "+919876543210", Code: "green-acres", Clock: "06:30"}))

	err := v.Struct(req{Period: "2026-13", Phone: "12ab", Code: "Green Acres", Clock: "24:00"})
	require.Error(t, err)
	apiErr := ValidationError(err)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, map[string]interface{}{
		"period": "period",
		"phone":  "phone",
		"code":   "code",
		"clock":  "clock",
	}, apiErr.Details)
}

func TestNewValidatorReadsBindingTags(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	type row struct {
		Email string `binding:"required,email"`
		Phone string `binding:"required,phone"`
	}

	assert.NoError(t, v.Struct(row{Email: "a@example.com", Phone: "+919876543210"}))

	apiErr := ValidationError(v.Struct(row{Phone: "nope"}))
	assert.Equal(t, map[string]interface{}{"email": "required", "phone": "phone"}, apiErr.Details)
}

func TestValidPeriod(t *testing.T) {
	assert.True(t, ValidPeriod("2026-01"))
	assert.False(t, ValidPeriod("2026-1"))
	assert.False(t, ValidPeriod("26-01"))
	assert.False(t, ValidPeriod(""))
}

func TestPagination(t *testing.T) {
	cases := []struct {
		query string
		want  types.Pagination
	}{
		{"", types.Pagination{Page: 1, Limit: types.DefaultPageSize}},
		{"page=3&limit=10", types.Pagination{Page: 3, Limit: 10}},
		{"page=-1&limit=1000", types.Pagination{Page: 1, Limit: types.MaxPageSize}},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		assert.Equal(t, tc.want, Pagination(c), tc.query)
	}
}

func TestQueryTime(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?from=2026-10-01&to=2026-10-02T10:00:00Z&bad=yesterday", nil)

	from, err := QueryTime(c, "from", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), *from)

	to, err := QueryTime(c, "to", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 10, to.Hour())

	missing, err := QueryTime(c, "missing", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = QueryTime(c, "bad", time.UTC)
	require.Error(t, err)
}

func TestBindJSONMalformed(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst struct {
		Name string `json:"name" binding:"required"`
	}
	err := BindJSON(c, &dst)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
