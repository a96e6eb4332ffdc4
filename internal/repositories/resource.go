package repositories

import (
	"errors"
	"net/url"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("record not found")

// Hook runs inside the write path with the same transaction handle.
type Hook[T any] func(tx *gorm.DB, entity *T) error

// Scope restricts every read of a resource (soft-delete flags, hidden rows).
type Scope func(db *gorm.DB) *gorm.DB

// Resource is a generic table accessor. Write-path side effects live in
// explicit hook lists instead of being buried in model callbacks, so each
// repository states what happens around its writes.
type Resource[T any] struct {
	Columns *ColumnSet

	// Preloads applied on every fetch, single row and list alike.
	Preloads []string

	// DetailPreloads are loaded on single-row fetches only, for relations
	// too heavy to carry on a listing.
	DetailPreloads []string

	// ReadScopes narrow every query unless bypassed via Unscoped reads.
	ReadScopes []Scope

	BeforeCreate []Hook[T]
	AfterCreate  []Hook[T]
	BeforeUpdate []Hook[T]
	AfterUpdate  []Hook[T]
	AfterDelete  []Hook[T]
}

// NewResource builds an accessor for T, deriving the column set with the
// given write-protected json fields.
func NewResource[T any](protected ...string) *Resource[T] {
	return &Resource[T]{Columns: ColumnsOf[T](protected...)}
}

func (r *Resource[T]) scoped(db *gorm.DB) *gorm.DB {
	for _, s := range r.ReadScopes {
		db = s(db)
	}
	return db
}

// FindByID fetches one row with the configured preloads and read scopes.
func (r *Resource[T]) FindByID(db *gorm.DB, id string) (*T, error) {
	var entity T
	q := r.scoped(db)
	for _, p := range r.Preloads {
		q = q.Preload(p)
	}
	for _, p := range r.DetailPreloads {
		q = q.Preload(p)
	}
	if err := q.First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAll runs a list query. base narrows the listing before the client's
// filters apply (nested-route ownership, for example).
func (r *Resource[T]) FindAll(db *gorm.DB, base map[string]interface{}, values url.Values) ([]T, error) {
	var entities []T
	q := r.scoped(db.Model(new(T)))
	for _, p := range r.Preloads {
		q = q.Preload(p)
	}
	for col, val := range base {
		q = q.Where(col+" = ?", val)
	}
	q = ParseListQuery(values, r.Columns).Apply(q)
	if err := q.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Create inserts the entity, running the create hook chain in one
// transaction.
func (r *Resource[T]) Create(db *gorm.DB, entity *T) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, h := range r.BeforeCreate {
			if err := h(tx, entity); err != nil {
				return err
			}
		}
		if err := tx.Create(entity).Error; err != nil {
			return err
		}
		for _, h := range r.AfterCreate {
			if err := h(tx, entity); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update writes the named columns of entity to the row with the given id and
// returns the reloaded row. Missing rows report ErrNotFound.
func (r *Resource[T]) Update(db *gorm.DB, id string, entity *T, columns []string) (*T, error) {
	var updated *T
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, h := range r.BeforeUpdate {
			if err := h(tx, entity); err != nil {
				return err
			}
		}

		res := r.scoped(tx.Model(new(T))).
			Where("id = ?", id).
			Select(columns).
			Updates(entity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		var err error
		updated, err = r.FindByID(tx, id)
		if err != nil {
			return err
		}
		for _, h := range r.AfterUpdate {
			if err := h(tx, updated); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the row and returns the entity as it was, so delete hooks
// can react to its former state.
func (r *Resource[T]) Delete(db *gorm.DB, id string) (*T, error) {
	var deleted *T
	err := db.Transaction(func(tx *gorm.DB) error {
		entity, err := r.FindByID(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(new(T), "id = ?", id).Error; err != nil {
			return err
		}
		for _, h := range r.AfterDelete {
			if err := h(tx, entity); err != nil {
				return err
			}
		}
		deleted = entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// WritableColumns filters a wish list of json field names down to columns a
// client may set directly.
func (r *Resource[T]) WritableColumns(jsonNames []string) []string {
	var cols []string
	for _, name := range jsonNames {
		if col, ok := r.Columns.WritableColumn(name); ok {
			cols = append(cols, col)
		}
	}
	return cols
}
