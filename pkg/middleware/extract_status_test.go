package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestExtractStatus(t *testing.T) {
	testCases := []struct {
		Name     string
		Err      error
		Expected int
	}{
		{Name: "error response", Err: ce.NewErrorResponse(http.StatusConflict, "Conflict", "taken"), Expected: http.StatusConflict},
		{Name: "echo error", Err: echo.ErrNotFound, Expected: http.StatusNotFound},
		{Name: "dao error", Err: &ce.DaoError{NotFound: true}, Expected: http.StatusNotFound},
		{Name: "config error", Err: ce.NewConfigIncompleteError("plesk.url"), Expected: http.StatusServiceUnavailable},
		{Name: "plain error", Err: errors.New("boom"), Expected: http.StatusInternalServerError},
	}
	for _, testCase := range testCases {
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/domains", nil), httptest.NewRecorder())
		err := ExtractStatus(func(c echo.Context) error { return testCase.Err })(c)
		assert.Equal(t, testCase.Err, err, testCase.Name)
		assert.Equal(t, testCase.Expected, c.Response().Status, testCase.Name)
	}
}
