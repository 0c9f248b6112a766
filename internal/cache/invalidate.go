package cache

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/charlesng35/catalog/internal/monitoring"
	"github.com/charlesng35/catalog/pkg/logger"
)

// InvalidationPolicy selects what a write clears.
type InvalidationPolicy string

const (
	// InvalidateItem clears only item keys: update and remove drop {namespace}:active:{id};
	// create clears nothing. List pages age out with their TTL.
	InvalidateItem InvalidationPolicy = "item"
	// InvalidateNamespace clears {namespace}:* on every write.
	InvalidateNamespace InvalidationPolicy = "namespace"
)

// ParseInvalidationPolicy validates a cache.invalidation value. Empty selects item.
func ParseInvalidationPolicy(value string) (InvalidationPolicy, error) {
	switch policy := InvalidationPolicy(strings.ToLower(strings.TrimSpace(value))); policy {
	case "", InvalidateItem:
		return InvalidateItem, nil
	case InvalidateNamespace:
		return policy, nil
	default:
		return "", fmt.Errorf("cache: unknown invalidation policy %q", value)
	}
}

// Invalidator removes stale entries after catalog writes.
// Store failures follow the same ErrorPolicy as reads.
type Invalidator struct {
	store   Store
	policy  InvalidationPolicy
	onError ErrorPolicy
	log     *zap.Logger
}

// NewInvalidator constructs an Invalidator. Empty policies select item and propagate.
func NewInvalidator(store Store, policy InvalidationPolicy, onError ErrorPolicy) *Invalidator {
	if policy == "" {
		policy = InvalidateItem
	}
	if onError == "" {
		onError = ErrorPolicyPropagate
	}
	return &Invalidator{
		store:   store,
		policy:  policy,
		onError: onError,
		log:     logger.WithModule("cache"),
	}
}

// Policy returns the active invalidation policy.
func (i *Invalidator) Policy() InvalidationPolicy {
	return i.policy
}

// AfterCreate runs after a row of namespace was inserted.
func (i *Invalidator) AfterCreate(ctx context.Context, namespace string) error {
	if i.policy != InvalidateNamespace {
		return nil
	}
	return i.clear(ctx, namespace, NamespacePattern(namespace), "namespace")
}

// AfterUpdate runs after row id of namespace was saved.
func (i *Invalidator) AfterUpdate(ctx context.Context, namespace, id string) error {
	return i.forRow(ctx, namespace, id)
}

// BeforeRemove runs before row id of namespace is soft-deleted.
func (i *Invalidator) BeforeRemove(ctx context.Context, namespace, id string) error {
	return i.forRow(ctx, namespace, id)
}

// AfterRemove runs once row id of namespace is soft-deleted. It repeats the BeforeRemove
// clear so that a read landing between the two steps cannot leave the row cached.
func (i *Invalidator) AfterRemove(ctx context.Context, namespace, id string) error {
	return i.forRow(ctx, namespace, id)
}

func (i *Invalidator) forRow(ctx context.Context, namespace, id string) error {
	if i.policy == InvalidateNamespace {
		return i.clear(ctx, namespace, NamespacePattern(namespace), "namespace")
	}
	return i.clear(ctx, namespace, ItemKey(namespace, id), "item")
}

func (i *Invalidator) clear(ctx context.Context, namespace, pattern, scope string) error {
	removed, err := i.store.DeleteByPattern(ctx, pattern)
	if err != nil {
		if i.onError == ErrorPolicyDegrade {
			i.log.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
			return nil
		}
		return fmt.Errorf("cache: invalidate %s: %w", pattern, err)
	}
	monitoring.RecordCacheInvalidation(namespace, scope)
	i.log.Debug("cache invalidated", zap.String("pattern", pattern), zap.Int("removed", removed))
	return nil
}
