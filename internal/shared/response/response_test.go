package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiguelRodac/api-books/internal/shared/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	fn(c)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		panic(err)
	}
	return w, body
}

func TestSuccessWithPayload(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Success(c, http.StatusOK, "List of books", []string{"dune"})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(http.StatusOK), body["statusCode"])
	assert.Equal(t, "List of books", body["message"])
	assert.NotNil(t, body["data"])
}

func TestSuccessDefaultMessageWithData(t *testing.T) {
	_, body := record(func(c *gin.Context) {
		Success(c, http.StatusOK, "", map[string]string{"id": "1"})
	})

	assert.Equal(t, MsgDataFound, body["message"])
}

func TestSuccessEmptyPayloadReportsNoData(t *testing.T) {
	// nil, empty slice and empty map all collapse to data:null + default message
	for name, payload := range map[string]interface{}{
		"nil":         nil,
		"empty slice": []string{},
		"empty map":   map[string]int{},
	} {
		_, body := record(func(c *gin.Context) {
			Success(c, http.StatusOK, "", payload)
		})

		assert.Equal(t, true, body["success"], name)
		assert.Equal(t, MsgNoDataFound, body["message"], name)
		assert.Nil(t, body["data"], name)
	}
}

func TestSuccessStatusCodeMatchesEnvelope(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Success(c, http.StatusCreated, "Book created", map[string]string{"id": "1"})
	})

	// HTTP status và statusCode field phải là một
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(http.StatusCreated), body["statusCode"])
}

func TestErrorRendersTaggedError(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Error(c, apperror.NotFound("Author not found"))
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(http.StatusNotFound), body["statusCode"])
	assert.Equal(t, "Author not found", body["message"])
}

func TestErrorValidationDetailExposed(t *testing.T) {
	_, body := record(func(c *gin.Context) {
		Error(c, apperror.Unprocessable("Validation failed").WithDetail(map[string]string{
			"email": "invalid format",
		}))
	})

	require.NotNil(t, body["error"])
	detail := body["error"].(map[string]interface{})
	assert.Equal(t, "invalid format", detail["email"])
}

func TestErrorUnknownErrorBecomesGenericInternal(t *testing.T) {
	Init("production")
	defer Init("test")

	w, body := record(func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused to 10.0.0.5"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["message"])
	// Cause never leaks outside development
	assert.Nil(t, body["error"])
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestErrorInternalDetailExposedInDevelopment(t *testing.T) {
	Init("development")
	defer Init("test")

	_, body := record(func(c *gin.Context) {
		Error(c, errors.New("dial tcp: connection refused"))
	})

	assert.Equal(t, "dial tcp: connection refused", body["error"])
}

func TestAbortErrorStopsChain(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	AbortError(c, apperror.Unauthorized("Token not provided"))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
