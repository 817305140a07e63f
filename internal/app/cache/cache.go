// Package cache keeps the in-memory, time-boxed view of "all tasks
// visible to the current identity" that every consumer reads from.
// One Cache exists per identity (see Registry); all reads share one
// snapshot and all mutations go through the identity's store and then
// force a refresh, so subscribers stay in sync.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
)

// DefaultTTL is the snapshot freshness threshold.
const DefaultTTL = 30 * time.Second

// fetch is one outstanding store read. Concurrent refreshes wait on
// done and share err instead of issuing their own fetch.
type fetch struct {
	done chan struct{}
	err  error
}

type Cache struct {
	identity domain.Identity
	store    ports.TaskStore
	rewards  ports.RewardGranter // nil for guest identities
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	tasks     []domain.Task
	loaded    bool
	fetchedAt time.Time
	inflight  *fetch
	lastErr   error
	nextSub   int
	subs      map[int]func([]domain.Task)
}

func New(identity domain.Identity, store ports.TaskStore, rewards ports.RewardGranter, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		identity: identity,
		store:    store,
		rewards:  rewards,
		ttl:      ttl,
		now:      time.Now,
		subs:     make(map[int]func([]domain.Task)),
	}
}

// Snapshot returns the current cached tasks immediately. A stale or
// empty cache kicks off a background refresh unless one is already in
// flight. The error is the last failed background fetch, surfaced as
// a non-fatal flag next to the stale-but-available data.
func (c *Cache) Snapshot(ctx context.Context) ([]domain.Task, error) {
	c.mu.Lock()
	stale := !c.loaded || c.now().Sub(c.fetchedAt) >= c.ttl
	kick := stale && c.inflight == nil
	tasks := copyTasks(c.tasks)
	err := c.lastErr
	c.mu.Unlock()

	if kick {
		go func() {
			if refreshErr := c.Refresh(context.WithoutCancel(ctx), false); refreshErr != nil {
				zap.L().Warn("background task refresh failed", zap.Error(refreshErr))
			}
		}()
	}
	return tasks, err
}

// Refresh reloads the snapshot from the store. Concurrent calls
// collapse into the single in-flight fetch: later callers block on it
// and observe its result rather than issuing another read. A failed
// fetch keeps the previous snapshot.
func (c *Cache) Refresh(ctx context.Context, force bool) error {
	c.mu.Lock()
	if f := c.inflight; f != nil {
		c.mu.Unlock()
		select {
		case <-f.done:
			return f.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if !force && c.loaded && len(c.tasks) > 0 && c.now().Sub(c.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return nil
	}
	f := &fetch{done: make(chan struct{})}
	c.inflight = f
	c.mu.Unlock()

	tasks, err := c.store.List(ctx)

	c.mu.Lock()
	c.inflight = nil
	if err != nil {
		c.lastErr = err
	} else {
		c.tasks = tasks
		c.loaded = true
		c.fetchedAt = c.now()
		c.lastErr = nil
	}
	c.mu.Unlock()

	f.err = err
	close(f.done)

	if err == nil {
		c.notify()
	}
	return err
}

// Get reads one task through the identity's store.
func (c *Cache) Get(ctx context.Context, id string) (domain.Task, error) {
	return c.store.Get(ctx, id)
}

// Create inserts through the identity's store and forces a refresh so
// subsequent reads reflect the mutation. Guest identities resolve to
// the local store, so the whole round trip stays off the network.
func (c *Cache) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	created, err := c.store.Insert(ctx, task)
	if err != nil {
		return domain.Task{}, err
	}
	c.refreshAfterMutation(ctx)
	return created, nil
}

func (c *Cache) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	updated, err := c.store.Update(ctx, task)
	if err != nil {
		return domain.Task{}, err
	}
	c.refreshAfterMutation(ctx)
	return updated, nil
}

func (c *Cache) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return err
	}
	c.refreshAfterMutation(ctx)
	return nil
}

// Complete marks the task done and, for authenticated identities,
// grants the reward side effect. Completion is monotonic; completing
// an already-completed task is a no-op.
func (c *Cache) Complete(ctx context.Context, id string) (domain.Task, error) {
	task, err := c.store.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if task.Completed {
		return task, nil
	}

	task.Completed = true
	task.UpdatedAt = c.now().UTC()
	updated, err := c.store.Update(ctx, task)
	if err != nil {
		return domain.Task{}, err
	}

	if c.rewards != nil && !c.identity.IsGuest() {
		if _, grantErr := c.rewards.GrantCompletion(ctx, c.identity.UserID, task.Urgency); grantErr != nil {
			// The completion already persisted; losing the XP grant is
			// not a reason to fail the call.
			zap.L().Warn("reward grant failed",
				zap.String("user_id", c.identity.UserID), zap.Error(grantErr))
		}
	}

	c.refreshAfterMutation(ctx)
	return updated, nil
}

// Subscribe registers a snapshot-change callback and returns its
// cancel function. Cancelling after teardown is safe and idempotent.
func (c *Cache) Subscribe(fn func([]domain.Task)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Watch forces a refresh whenever the persistence adapter pushes a
// change event for this identity (another device or tab mutated a
// task). It returns once subscribed; consumption runs until ctx ends.
func (c *Cache) Watch(ctx context.Context, feed ports.ChangeFeed) error {
	events, err := feed.Subscribe(ctx, c.identity)
	if err != nil {
		return err
	}
	go func() {
		for range events {
			if refreshErr := c.Refresh(ctx, true); refreshErr != nil {
				zap.L().Warn("refresh after change event failed", zap.Error(refreshErr))
			}
		}
	}()
	return nil
}

// Invalidate drops the snapshot unconditionally, as on login/logout.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.tasks = nil
	c.loaded = false
	c.fetchedAt = time.Time{}
	c.lastErr = nil
	c.mu.Unlock()
}

func (c *Cache) refreshAfterMutation(ctx context.Context) {
	if err := c.Refresh(ctx, true); err != nil {
		// The mutation itself succeeded; the stale snapshot stays
		// visible and the error is surfaced on the next Snapshot.
		zap.L().Warn("post-mutation refresh failed", zap.Error(err))
	}
}

func (c *Cache) notify() {
	c.mu.Lock()
	tasks := copyTasks(c.tasks)
	callbacks := make([]func([]domain.Task), 0, len(c.subs))
	for _, fn := range c.subs {
		callbacks = append(callbacks, fn)
	}
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(tasks)
	}
}

func copyTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out
}
