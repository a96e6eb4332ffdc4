package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/models"
	"tourbook/internal/repositories"
	"tourbook/internal/validator"
)

func testContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/reviews/r-1", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func reviewTestHandler() *ResourceHandler[models.Review] {
	base := NewBaseHandler(validator.New())
	return NewResourceHandler(base, repositories.NewReviewRepository().Resource, "review", "reviews")
}

func TestBindPartialFiltersProtectedFields(t *testing.T) {
	h := reviewTestHandler()

	c := testContext(t, `{"rating":4,"review":"Great tour","tour":"t-1","user":"u-1","id":"evil"}`)
	entity, fields, columns, ok := h.bindPartial(c)

	require.True(t, ok)
	assert.Equal(t, 4, entity.Rating)
	assert.Equal(t, "Great tour", entity.Review)
	// route-owned identifiers never bind
	assert.Empty(t, entity.TourID)
	assert.Empty(t, entity.UserID)
	assert.Empty(t, entity.ID)

	assert.ElementsMatch(t, []string{"Rating", "Review"}, fields)
	assert.ElementsMatch(t, []string{"rating", "review"}, columns)
}

func TestBindPartialRejectsMalformedBody(t *testing.T) {
	h := reviewTestHandler()

	c := testContext(t, `{"rating":`)
	_, _, _, ok := h.bindPartial(c)

	assert.False(t, ok)
	assert.True(t, c.IsAborted())
}

func TestBindPartialEmptyUpdate(t *testing.T) {
	h := reviewTestHandler()

	c := testContext(t, `{"unknownField":true}`)
	_, _, columns, ok := h.bindPartial(c)

	require.True(t, ok)
	assert.Empty(t, columns)
}

func TestValidatePartialChecksOnlyPresentFields(t *testing.T) {
	h := reviewTestHandler()
	gin.SetMode(gin.TestMode)

	// rating out of range fails even though review is absent
	c := testContext(t, `{"rating":9}`)
	entity, fields, _, ok := h.bindPartial(c)
	require.True(t, ok)
	assert.False(t, h.validatePartial(c, entity, fields))

	// a valid rating alone passes; the required review field is not present
	c = testContext(t, `{"rating":5}`)
	entity, fields, _, ok = h.bindPartial(c)
	require.True(t, ok)
	assert.True(t, h.validatePartial(c, entity, fields))
}
