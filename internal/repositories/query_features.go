package repositories

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Pagination defaults for list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 100
	MaxLimit     = 100
)

// reserved query keys that never become filters
var reservedKeys = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

var operatorSQL = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

// Condition is one translated field-comparison filter.
type Condition struct {
	Column string
	Op     string // SQL comparison operator, "=" for plain equality
	Value  interface{}
}

// SortField is one resolved sort key.
type SortField struct {
	Column string
	Desc   bool
}

// ListQuery is the parsed plan for a list endpoint: filters, sort order,
// projection and pagination. Malformed parameters never fail parsing; they
// degrade to the defaults.
type ListQuery struct {
	Conditions []Condition
	Sort       []SortField
	Fields     []string
	Page       int
	Limit      int
}

// ParseListQuery translates raw query parameters against the model's column
// set. Unknown fields are dropped silently.
func ParseListQuery(values url.Values, cols *ColumnSet) *ListQuery {
	q := &ListQuery{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	// 1) field-comparison filters, including operator suffixes: price[gte]=500
	for key, vals := range values {
		if reservedKeys[key] || len(vals) == 0 {
			continue
		}

		name, op := splitOperator(key)
		col, ok := cols.Column(name)
		if !ok {
			continue
		}

		sqlOp, ok := operatorSQL[op]
		if !ok {
			if op != "" {
				continue // unknown operator suffix
			}
			sqlOp = "="
		}

		q.Conditions = append(q.Conditions, Condition{
			Column: col,
			Op:     sqlOp,
			Value:  coerceValue(vals[0]),
		})
	}

	// 2) sort: comma-separated, "-" prefix for descending
	for _, part := range strings.Split(values.Get("sort"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		if col, ok := cols.Column(name); ok {
			q.Sort = append(q.Sort, SortField{Column: col, Desc: desc})
		}
	}
	if len(q.Sort) == 0 {
		// default: newest first
		q.Sort = []SortField{{Column: "created_at", Desc: true}}
	}

	// 3) projection: inclusion list, "-" prefix excludes
	q.Fields = parseFields(values.Get("fields"), cols)

	// 4) pagination
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
		if q.Limit > MaxLimit {
			q.Limit = MaxLimit
		}
	}

	return q
}

// Offset returns the skip computed from page and limit.
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Apply translates the plan onto a gorm query.
func (q *ListQuery) Apply(db *gorm.DB) *gorm.DB {
	for _, cond := range q.Conditions {
		db = db.Where(fmt.Sprintf("%s %s ?", cond.Column, cond.Op), cond.Value)
	}
	for _, s := range q.Sort {
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		db = db.Order(fmt.Sprintf("%s %s", s.Column, dir))
	}
	if len(q.Fields) > 0 {
		db = db.Select(q.Fields)
	}
	return db.Offset(q.Offset()).Limit(q.Limit)
}

func splitOperator(key string) (name, op string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

func parseFields(raw string, cols *ColumnSet) []string {
	if raw == "" {
		return nil
	}

	var include []string
	exclude := map[string]bool{}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "-") {
			if col, ok := cols.Column(strings.TrimPrefix(part, "-")); ok {
				exclude[col] = true
			}
			continue
		}
		if col, ok := cols.Column(part); ok {
			include = append(include, col)
		}
	}

	if len(include) > 0 {
		// id always travels with a projection so relations stay resolvable
		return appendMissing(include, "id")
	}
	if len(exclude) == 0 {
		return nil
	}

	out := make([]string, 0, len(cols.Exposable()))
	for _, col := range cols.Exposable() {
		if !exclude[col] {
			out = append(out, col)
		}
	}
	return out
}

func appendMissing(cols []string, col string) []string {
	for _, c := range cols {
		if c == col {
			return cols
		}
	}
	return append(cols, col)
}

// coerceValue keeps numeric comparisons numeric while letting everything else
// pass through as text.
func coerceValue(raw string) interface{} {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
