package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/catalog/internal/cache"
	"github.com/charlesng35/catalog/internal/database/testutil"
	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/internal/repository"
)

// countingRepo records how often the list and write paths reach the database.
type countingRepo[T any] struct {
	repository.Repository[T]
	finds   int
	creates int
	saves   int
	deletes int
}

func (r *countingRepo[T]) FindAndCount(ctx context.Context, filter repository.Filter, skip, take int) ([]T, int64, error) {
	r.finds++
	return r.Repository.FindAndCount(ctx, filter, skip, take)
}

func (r *countingRepo[T]) Create(ctx context.Context, entity *T) error {
	r.creates++
	return r.Repository.Create(ctx, entity)
}

func (r *countingRepo[T]) Save(ctx context.Context, entity *T) error {
	r.saves++
	return r.Repository.Save(ctx, entity)
}

func (r *countingRepo[T]) SoftDelete(ctx context.Context, id string) error {
	r.deletes++
	return r.Repository.SoftDelete(ctx, id)
}

func countRepo[T any](db *gorm.DB) *countingRepo[T] {
	return &countingRepo[T]{Repository: repository.New[T](db)}
}

// brokenStore fails every operation.
type brokenStore struct{}

var errCacheDown = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errCacheDown }
func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errCacheDown
}
func (brokenStore) Delete(context.Context, ...string) error { return errCacheDown }
func (brokenStore) DeleteByPattern(context.Context, string) (int, error) {
	return 0, errCacheDown
}

// hookStore runs afterDelete once the wrapped store has cleared a pattern.
type hookStore struct {
	cache.Store
	afterDelete func()
}

func (s *hookStore) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	removed, err := s.Store.DeleteByPattern(ctx, pattern)
	if hook := s.afterDelete; hook != nil && err == nil {
		s.afterDelete = nil
		hook()
	}
	return removed, err
}

type fixture struct {
	db            *gorm.DB
	store         cache.Store
	companies     *countingRepo[models.Company]
	categories    *countingRepo[models.Category]
	subcategories *countingRepo[models.Subcategory]
	products      *countingRepo[models.Product]
	deps          CacheDeps
}

type fixtureConfig struct {
	store  cache.Store
	policy cache.InvalidationPolicy
	onErr  cache.ErrorPolicy
}

type fixtureOption func(*fixtureConfig)

func withStore(store cache.Store) fixtureOption {
	return func(cfg *fixtureConfig) { cfg.store = store }
}

func withInvalidation(policy cache.InvalidationPolicy) fixtureOption {
	return func(cfg *fixtureConfig) { cfg.policy = policy }
}

func withErrorPolicy(policy cache.ErrorPolicy) fixtureOption {
	return func(cfg *fixtureConfig) { cfg.onErr = policy }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	cfg := fixtureConfig{policy: cache.InvalidateItem, onErr: cache.ErrorPolicyPropagate}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.store == nil {
		memory := cache.NewMemoryStore("services:" + t.Name())
		t.Cleanup(memory.Flush)
		cfg.store = memory
	}

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	return &fixture{
		db:            db,
		store:         cfg.store,
		companies:     countRepo[models.Company](db),
		categories:    countRepo[models.Category](db),
		subcategories: countRepo[models.Subcategory](db),
		products:      countRepo[models.Product](db),
		deps: CacheDeps{
			Reader:      cache.NewReader(cfg.store, cache.WithErrorPolicy(cfg.onErr)),
			Invalidator: cache.NewInvalidator(cfg.store, cfg.policy, cfg.onErr),
		},
	}
}

func (f *fixture) companyService(t *testing.T) *CompanyService {
	t.Helper()
	svc, err := NewCompanyService(f.companies, f.deps)
	require.NoError(t, err)
	return svc
}

func (f *fixture) categoryService(t *testing.T) *CategoryService {
	t.Helper()
	svc, err := NewCategoryService(f.categories, f.deps)
	require.NoError(t, err)
	return svc
}

func (f *fixture) subcategoryService(t *testing.T) *SubcategoryService {
	t.Helper()
	svc, err := NewSubcategoryService(f.subcategories, f.categories, f.deps)
	require.NoError(t, err)
	return svc
}

func (f *fixture) productService(t *testing.T) *ProductService {
	t.Helper()
	svc, err := NewProductService(ProductRepositories{
		Products:      f.products,
		Companies:     f.companies,
		Categories:    f.categories,
		Subcategories: f.subcategories,
	}, f.deps)
	require.NoError(t, err)
	return svc
}

func (f *fixture) cached(t *testing.T, key string) bool {
	t.Helper()
	_, hit, err := f.store.Get(context.Background(), key)
	require.NoError(t, err)
	return hit
}
