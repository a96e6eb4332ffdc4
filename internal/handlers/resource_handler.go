package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/repositories"
	"tourbook/pkg/apperrors"
)

// ResourceHandler serves the uniform CRUD surface for one model. Concrete
// handlers embed it and add their domain endpoints on top.
type ResourceHandler[T any] struct {
	*BaseHandler
	resource *repositories.Resource[T]

	// singular and plural envelope keys ("user", "users")
	key    string
	plural string

	// BaseFilter narrows listings for nested routes. Optional.
	BaseFilter func(c *gin.Context) map[string]interface{}

	// FillOnCreate mutates the decoded entity before validation, for
	// defaults taken from the route or session. Optional.
	FillOnCreate func(c *gin.Context, entity *T) error
}

func NewResourceHandler[T any](base *BaseHandler, resource *repositories.Resource[T], key, plural string) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		BaseHandler: base,
		resource:    resource,
		key:         key,
		plural:      plural,
	}
}

// GetAll lists the resource through the query feature pipeline: filters,
// sort, projection and pagination all come from the URL.
func (h *ResourceHandler[T]) GetAll(c *gin.Context) {
	var base map[string]interface{}
	if h.BaseFilter != nil {
		base = h.BaseFilter(c)
	}

	items, err := h.resource.FindAll(h.GetDB(c), base, c.Request.URL.Query())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.SuccessList(c, h.plural, items, len(items))
}

func (h *ResourceHandler[T]) GetOne(c *gin.Context) {
	entity, err := h.resource.FindByID(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, gin.H{h.key: entity})
}

func (h *ResourceHandler[T]) CreateOne(c *gin.Context) {
	var entity T
	if err := c.ShouldBindJSON(&entity); err != nil {
		apperrors.HandleError(c, apperrors.BadRequest("Invalid request body"))
		return
	}
	if h.FillOnCreate != nil {
		if err := h.FillOnCreate(c, &entity); err != nil {
			h.HandleServiceError(c, err)
			return
		}
	}
	if !h.validate(c, &entity) {
		return
	}

	if err := h.resource.Create(h.GetDB(c), &entity); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusCreated, gin.H{h.key: &entity})
}

// UpdateOne applies a partial update: only the writable fields present in
// the body are validated and written.
func (h *ResourceHandler[T]) UpdateOne(c *gin.Context) {
	entity, fields, columns, ok := h.bindPartial(c)
	if !ok {
		return
	}
	if len(columns) == 0 {
		apperrors.HandleError(c, apperrors.BadRequest("No updatable fields in request body"))
		return
	}
	if !h.validatePartial(c, entity, fields) {
		return
	}

	updated, err := h.resource.Update(h.GetDB(c), c.Param("id"), entity, columns)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Success(c, http.StatusOK, gin.H{h.key: updated})
}

func (h *ResourceHandler[T]) DeleteOne(c *gin.Context) {
	if _, err := h.resource.Delete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

// bindPartial decodes the body twice: once as a raw map to learn which
// writable fields are present, once into the model for typed values.
func (h *ResourceHandler[T]) bindPartial(c *gin.Context) (*T, []string, []string, bool) {
	raw := map[string]json.RawMessage{}
	body, err := c.GetRawData()
	if err != nil || json.Unmarshal(body, &raw) != nil {
		apperrors.HandleError(c, apperrors.BadRequest("Invalid request body"))
		return nil, nil, nil, false
	}

	filtered := map[string]json.RawMessage{}
	var fields, columns []string
	for jsonName, val := range raw {
		col, ok := h.resource.Columns.WritableColumn(jsonName)
		if !ok {
			continue // unknown or write-protected, dropped silently
		}
		field, _ := h.resource.Columns.FieldName(jsonName)
		filtered[jsonName] = val
		fields = append(fields, field)
		columns = append(columns, col)
	}

	entity := new(T)
	cleaned, err := json.Marshal(filtered)
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return nil, nil, nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(cleaned))
	if err := dec.Decode(entity); err != nil {
		apperrors.HandleError(c, apperrors.BadRequest("Invalid request body"))
		return nil, nil, nil, false
	}
	return entity, fields, columns, true
}

func (h *ResourceHandler[T]) validatePartial(c *gin.Context, entity *T, fields []string) bool {
	if len(fields) == 0 {
		return true
	}
	if err := h.validator.ValidatePartial(entity, fields...); err != nil {
		h.respondValidation(c, err)
		return false
	}
	return true
}
