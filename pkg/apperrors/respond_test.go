package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, err error) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleError(c, err)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHandleErrorClientError(t *testing.T) {
	w, resp := serve(t, NotFound(""))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "fail", resp.Status)
	assert.Equal(t, "No document found with that ID", resp.Message)
}

func TestHandleErrorServerError(t *testing.T) {
	w, resp := serve(t, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestHandleErrorPredefined(t *testing.T) {
	w, resp := serve(t, ErrInvalidCredentials)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "fail", resp.Status)
	assert.Equal(t, "Incorrect email or password", resp.Message)
}

func TestHandleErrorWrapped(t *testing.T) {
	inner := NotFound("")
	w, resp := serve(t, wrapErr{inner})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "fail", resp.Status)
}

type wrapErr struct{ err error }

func (w wrapErr) Error() string { return w.err.Error() }
func (w wrapErr) Unwrap() error { return w.err }

func TestForbiddenDefaultMessage(t *testing.T) {
	_, resp := serve(t, Forbidden(""))
	assert.Equal(t, "You don't have permission to perform this action", resp.Message)
}
