package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/charlesng35/catalog/internal/monitoring"
	appErrors "github.com/charlesng35/catalog/pkg/errors"
	"github.com/charlesng35/catalog/pkg/logger"
	"github.com/charlesng35/catalog/pkg/pagination"
)

// DefaultTTL applies when the reader is built without WithTTL.
const DefaultTTL = time.Hour

// ErrorPolicy decides what a store failure does to a read.
type ErrorPolicy string

const (
	// ErrorPolicyPropagate fails the read with the store error.
	ErrorPolicyPropagate ErrorPolicy = "propagate"
	// ErrorPolicyDegrade logs the store error and serves from the repository.
	ErrorPolicyDegrade ErrorPolicy = "degrade"
)

// ParseErrorPolicy validates a cache.on_error value. Empty selects propagate.
func ParseErrorPolicy(value string) (ErrorPolicy, error) {
	switch policy := ErrorPolicy(strings.ToLower(strings.TrimSpace(value))); policy {
	case "", ErrorPolicyPropagate:
		return ErrorPolicyPropagate, nil
	case ErrorPolicyDegrade:
		return policy, nil
	default:
		return "", fmt.Errorf("cache: unknown error policy %q", value)
	}
}

// Reader implements the cache-aside read path over a Store.
type Reader struct {
	store  Store
	ttl    time.Duration
	policy ErrorPolicy
	log    *zap.Logger
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithTTL sets the lifetime of populated entries.
func WithTTL(ttl time.Duration) ReaderOption {
	return func(r *Reader) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithErrorPolicy selects how store failures are handled.
func WithErrorPolicy(policy ErrorPolicy) ReaderOption {
	return func(r *Reader) {
		if policy != "" {
			r.policy = policy
		}
	}
}

// WithLogger overrides the reader logger.
func WithLogger(log *zap.Logger) ReaderOption {
	return func(r *Reader) {
		if log != nil {
			r.log = log
		}
	}
}

// NewReader constructs a Reader with a one hour TTL and the propagate policy.
func NewReader(store Store, opts ...ReaderOption) *Reader {
	r := &Reader{
		store:  store,
		ttl:    DefaultTTL,
		policy: ErrorPolicyPropagate,
		log:    logger.WithModule("cache"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ErrorPolicy returns how the reader handles store failures.
func (r *Reader) ErrorPolicy() ErrorPolicy {
	return r.policy
}

// TTL returns the lifetime applied to populated entries.
func (r *Reader) TTL() time.Duration {
	return r.ttl
}

// PageQuery identifies one cached list page.
type PageQuery struct {
	Namespace string
	Filter    string
	Page      int
	Limit     int
	// Extras are optional free-text filters such as a barcode fragment.
	Extras map[string]string
	// EmptyMessage is the NotFound message used when the query matches no rows.
	EmptyMessage string
}

func (q PageQuery) normalized() PageQuery {
	q.Page = pagination.Normalize(q.Page, pagination.DefaultPage)
	q.Limit = pagination.ClampLimit(q.Limit, pagination.DefaultLimit)
	if q.Filter == "" {
		q.Filter = FilterActive
	}
	return q
}

// Key returns the cache key of the query after page and limit defaults are applied.
func (q PageQuery) Key() string {
	q = q.normalized()
	return BuildKey(q.Namespace, q.Filter, q.Page, q.Limit, q.Extras)
}

// Page is one page of results. FromCache is informational: a cached page carries the same
// items and meta a fresh one would.
type Page[T any] struct {
	Items     []T
	Meta      pagination.Meta
	FromCache bool
}

// Item is a single cached row.
type Item[T any] struct {
	Value     T
	FromCache bool
}

// LoadPageFunc loads one page from the source of truth.
type LoadPageFunc[T any] func(ctx context.Context, skip, take int) ([]T, int64, error)

// LoadItemFunc loads one row. A nil result with a nil error means the row does not exist.
type LoadItemFunc[T any] func(ctx context.Context) (*T, error)

type cachedPage[T any] struct {
	Result []T             `json:"result"`
	Meta   pagination.Meta `json:"meta"`
}

// FetchPage serves q from the cache, loading and populating it on a miss. Empty results fail
// with NotFound carrying zero-count meta and are never cached.
func FetchPage[T any](ctx context.Context, r *Reader, q PageQuery, load LoadPageFunc[T]) (Page[T], error) {
	q = q.normalized()
	key := BuildKey(q.Namespace, q.Filter, q.Page, q.Limit, q.Extras)

	raw, hit, err := r.lookup(ctx, q.Namespace, key)
	if err != nil {
		return Page[T]{}, err
	}
	if hit {
		var cached cachedPage[T]
		if err := json.Unmarshal(raw, &cached); err == nil {
			monitoring.RecordCacheLookup(q.Namespace, monitoring.CacheHit)
			r.log.Debug("served from cache", zap.String("key", key))
			return Page[T]{Items: cached.Result, Meta: cached.Meta, FromCache: true}, nil
		}
		r.log.Warn("discarding undecodable cache entry", zap.String("key", key))
	}
	monitoring.RecordCacheLookup(q.Namespace, monitoring.CacheMiss)

	items, total, err := load(ctx, pagination.Offset(q.Page, q.Limit), q.Limit)
	if err != nil {
		return Page[T]{}, err
	}

	if total == 0 {
		meta := pagination.New(0, q.Page, q.Limit)
		message := q.EmptyMessage
		if message == "" {
			message = "No records found"
		}
		return Page[T]{Items: []T{}, Meta: meta}, appErrors.NotFound(message).WithDetails([]any{}).WithMeta(meta)
	}

	if items == nil {
		items = []T{}
	}
	page := Page[T]{Items: items, Meta: pagination.New(total, q.Page, q.Limit)}

	payload, err := json.Marshal(cachedPage[T]{Result: page.Items, Meta: page.Meta})
	if err != nil {
		return Page[T]{}, fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := r.populate(ctx, q.Namespace, key, payload); err != nil {
		return Page[T]{}, err
	}
	r.log.Debug("cache populated", zap.String("key", key), zap.Int64("total", total))
	return page, nil
}

// FetchItem serves one row from its item key, loading and populating it on a miss. A missing
// row fails with NotFound(notFoundMessage) and is never cached.
func FetchItem[T any](ctx context.Context, r *Reader, namespace, id, notFoundMessage string, load LoadItemFunc[T]) (Item[T], error) {
	key := ItemKey(namespace, id)

	raw, hit, err := r.lookup(ctx, namespace, key)
	if err != nil {
		return Item[T]{}, err
	}
	if hit {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			monitoring.RecordCacheLookup(namespace, monitoring.CacheHit)
			r.log.Debug("served from cache", zap.String("key", key))
			return Item[T]{Value: cached, FromCache: true}, nil
		}
		r.log.Warn("discarding undecodable cache entry", zap.String("key", key))
	}
	monitoring.RecordCacheLookup(namespace, monitoring.CacheMiss)

	value, err := load(ctx)
	if err != nil {
		return Item[T]{}, err
	}
	if value == nil {
		return Item[T]{}, appErrors.NotFound(notFoundMessage)
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return Item[T]{}, fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := r.populate(ctx, namespace, key, payload); err != nil {
		return Item[T]{}, err
	}
	return Item[T]{Value: *value}, nil
}

func (r *Reader) lookup(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	raw, hit, err := r.store.Get(ctx, key)
	if err == nil {
		return raw, hit, nil
	}

	monitoring.RecordCacheLookup(namespace, monitoring.CacheError)
	if r.policy == ErrorPolicyDegrade {
		r.log.Warn("cache read failed, reading through", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
}

func (r *Reader) populate(ctx context.Context, namespace, key string, payload []byte) error {
	err := r.store.Set(ctx, key, payload, r.ttl)
	if err == nil {
		return nil
	}

	monitoring.RecordCacheLookup(namespace, monitoring.CacheError)
	if r.policy == ErrorPolicyDegrade {
		r.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return fmt.Errorf("cache: set %s: %w", key, err)
}
