package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
)

// Registry hands out the per-identity cache singletons. Constructed
// once at app start; Reset covers the login/logout transitions, which
// must invalidate unconditionally and switch storage backend.
type Registry struct {
	factory ports.StoreFactory
	rewards ports.RewardGranter
	ttl     time.Duration

	mu       sync.Mutex
	caches   map[string]*Cache
	feed     ports.ChangeFeed
	watchCtx context.Context
}

func NewRegistry(factory ports.StoreFactory, rewards ports.RewardGranter, ttl time.Duration) *Registry {
	return &Registry{
		factory: factory,
		rewards: rewards,
		ttl:     ttl,
		caches:  make(map[string]*Cache),
	}
}

// For returns the identity's cache, creating it on first use. Guest
// caches carry no reward granter; guest mode has no reward state.
func (r *Registry) For(identity domain.Identity) *Cache {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.caches[identity.UserID]; ok {
		return c
	}

	var rewards ports.RewardGranter
	if !identity.IsGuest() {
		rewards = r.rewards
	}
	c := New(identity, r.factory.StoreFor(identity), rewards, r.ttl)
	r.caches[identity.UserID] = c
	if r.feed != nil {
		watch(r.watchCtx, c, r.feed)
	}
	return c
}

// WatchFeed attaches a change feed: every cache, current and future,
// subscribes to it and refreshes on pushed events.
func (r *Registry) WatchFeed(ctx context.Context, feed ports.ChangeFeed) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.feed = feed
	r.watchCtx = ctx
	for _, c := range r.caches {
		watch(ctx, c, feed)
	}
}

func watch(ctx context.Context, c *Cache, feed ports.ChangeFeed) {
	if err := c.Watch(ctx, feed); err != nil {
		zap.L().Warn("failed to watch change feed", zap.Error(err))
	}
}

// Reset drops the identity's cache so the next use rebuilds it against
// the freshly selected backend.
func (r *Registry) Reset(identity domain.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.caches[identity.UserID]; ok {
		c.Invalidate()
		delete(r.caches, identity.UserID)
	}
}
