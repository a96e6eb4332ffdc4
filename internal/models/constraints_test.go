package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gormTag(t *testing.T, model interface{}, field string) string {
	t.Helper()
	f, ok := reflect.TypeOf(model).FieldByName(field)
	require.True(t, ok, "field %s missing", field)
	return f.Tag.Get("gorm")
}

// Deleting a tour must take its dependent rows with it; a restricting
// constraint would turn tour deletion into a 500 once reviews or bookings
// exist.
func TestChildRelationsCascadeOnDelete(t *testing.T) {
	t.Parallel()

	cascaded := []struct {
		model interface{}
		field string
	}{
		{Tour{}, "Locations"},
		{Tour{}, "StartDates"},
		{Tour{}, "Reviews"},
		{Booking{}, "Tour"},
		{Review{}, "User"},
	}
	for _, c := range cascaded {
		tag := gormTag(t, c.model, c.field)
		assert.True(t, strings.Contains(tag, "OnDelete:CASCADE"),
			"%T.%s should cascade, tag %q", c.model, c.field, tag)
	}
}
