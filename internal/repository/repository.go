package repository

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/catalog/internal/models"
)

// Filter narrows list queries.
type Filter struct {
	// Status restricts rows to one lifecycle status. Empty matches any status.
	Status models.Status
	// Contains maps column names to substrings matched with LIKE.
	Contains map[string]string
	// Preload lists associations loaded with every row.
	Preload []string
}

// Repository is the relational contract the catalog services are written against. Soft-deleted
// rows are invisible to every read. Find methods return (nil, nil) when no row matches.
type Repository[T any] interface {
	FindByID(ctx context.Context, id string, preload ...string) (*T, error)
	FindByField(ctx context.Context, field string, value any) (*T, error)
	FindAndCount(ctx context.Context, filter Filter, skip, take int) ([]T, int64, error)
	Create(ctx context.Context, entity *T) error
	Save(ctx context.Context, entity *T) error
	SoftDelete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// GormRepository implements Repository with gorm.
type GormRepository[T any] struct {
	db *gorm.DB
}

// New returns a gorm-backed repository for T.
func New[T any](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

func (r *GormRepository[T]) FindByID(ctx context.Context, id string, preload ...string) (*T, error) {
	query := r.db.WithContext(ctx)
	for _, association := range preload {
		query = query.Preload(association)
	}
	return first[T](query.Where("id = ?", id))
}

func (r *GormRepository[T]) FindByField(ctx context.Context, field string, value any) (*T, error) {
	return first[T](r.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: field}, Value: value}))
}

// FindAndCount returns one window of rows ordered by creation time, together with the number
// of rows matching filter overall.
func (r *GormRepository[T]) FindAndCount(ctx context.Context, filter Filter, skip, take int) ([]T, int64, error) {
	base := applyFilter(r.db.WithContext(ctx).Model(new(T)), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if total == 0 || int64(skip) >= total || take < 1 {
		return []T{}, total, nil
	}
	items := make([]T, 0, min(int64(take), total-int64(skip)))

	query := base.Session(&gorm.Session{})
	for _, association := range filter.Preload {
		query = query.Preload(association)
	}
	if err := query.
		Order("created_at ASC").
		Order("id ASC").
		Offset(skip).
		Limit(take).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *GormRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
}

// SoftDelete stamps deleted_at on the row.
func (r *GormRepository[T]) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error
}

func (r *GormRepository[T]) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func first[T any](query *gorm.DB) (*T, error) {
	var entity T
	err := query.Take(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func applyFilter(query *gorm.DB, filter Filter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	columns := make([]string, 0, len(filter.Contains))
	for column, value := range filter.Contains {
		if value != "" {
			columns = append(columns, column)
		}
	}
	sort.Strings(columns)

	for _, column := range columns {
		pattern := "%" + likeEscaper.Replace(filter.Contains[column]) + "%"
		query = query.Where(clause.Expr{
			SQL:  "? LIKE ? ESCAPE '!'",
			Vars: []any{clause.Column{Name: column}, pattern},
		})
	}
	return query
}
