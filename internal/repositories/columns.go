package repositories

import (
	"reflect"
	"strings"
	"time"
	"unicode"
)

// ColumnSet maps a model's JSON field names onto database columns and tracks
// which columns clients may write. Write-protected columns (ids, slugs,
// derived aggregates) stay fully readable: they can be filtered, sorted and
// projected, they just never come in through a request body. Columns that
// must not be readable either carry `json:"-"` on the model and are never
// collected at all.
type ColumnSet struct {
	// byJSON: json name -> column name
	byJSON map[string]string
	// fieldByJSON: json name -> Go struct field name (for partial validation)
	fieldByJSON map[string]string
	// writeProtected columns are stripped from client write payloads
	writeProtected map[string]bool
	// ordered list of collected columns, used to resolve "-field" exclusions
	ordered []string
}

// ColumnsOf builds a ColumnSet for model T by reflection over its struct tags.
// Relation fields (slices, struct pointers, JSON documents) are not mapped;
// they are handled by preloads and explicit hooks, not by the query builder.
// Protected entries may be given as JSON names or column names.
func ColumnsOf[T any](protected ...string) *ColumnSet {
	cs := &ColumnSet{
		byJSON:         make(map[string]string),
		fieldByJSON:    make(map[string]string),
		writeProtected: make(map[string]bool),
	}

	var zero T
	cs.collect(reflect.TypeOf(zero))

	for _, name := range protected {
		if col, ok := cs.byJSON[name]; ok {
			cs.writeProtected[col] = true
			continue
		}
		cs.writeProtected[name] = true
	}
	return cs
}

func (cs *ColumnSet) collect(t reflect.Type) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		gormTag := f.Tag.Get("gorm")

		if f.Anonymous {
			// Flatten plain embedded structs (BaseModel); skip prefixed
			// embeds, their columns are not meaningful standalone filters.
			if !strings.Contains(gormTag, "embedded") {
				cs.collect(f.Type)
			}
			continue
		}

		jsonName := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if jsonName == "" || jsonName == "-" {
			continue
		}

		switch f.Type.Kind() {
		case reflect.Slice, reflect.Map:
			continue
		case reflect.Pointer:
			if f.Type.Elem().Kind() == reflect.Struct && f.Type.Elem() != timeType {
				continue
			}
		case reflect.Struct:
			if f.Type != timeType {
				continue
			}
		}

		col := columnFromTag(gormTag)
		if col == "" {
			col = ToSnake(f.Name)
		}

		cs.byJSON[jsonName] = col
		cs.fieldByJSON[jsonName] = f.Name
		cs.ordered = append(cs.ordered, col)
	}
}

var timeType = reflect.TypeOf(time.Time{})

// Column resolves a JSON field name to a column for the read paths (filters,
// sorts, projections). Unknown names resolve to ok=false.
func (cs *ColumnSet) Column(jsonName string) (string, bool) {
	col, ok := cs.byJSON[jsonName]
	if !ok {
		return "", false
	}
	return col, true
}

// WritableColumn resolves a JSON field name to a column clients may set.
// Unknown and write-protected names resolve to ok=false.
func (cs *ColumnSet) WritableColumn(jsonName string) (string, bool) {
	col, ok := cs.byJSON[jsonName]
	if !ok || cs.writeProtected[col] {
		return "", false
	}
	return col, true
}

// FieldName resolves a JSON field name to the Go struct field name.
func (cs *ColumnSet) FieldName(jsonName string) (string, bool) {
	f, ok := cs.fieldByJSON[jsonName]
	return f, ok
}

// Exposable returns every collected column, in declaration order.
func (cs *ColumnSet) Exposable() []string {
	out := make([]string, len(cs.ordered))
	copy(out, cs.ordered)
	return out
}

func columnFromTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

// ToSnake converts a Go field name to its default gorm column name
// (TourID -> tour_id, RatingsAverage -> ratings_average).
func ToSnake(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && !unicode.IsUpper(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
