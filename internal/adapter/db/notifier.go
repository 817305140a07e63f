package db

import (
	"context"
	"sync"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"focusquest/internal/core/domain"
	"focusquest/internal/core/ports"
)

// taskChangeChannel is the postgres NOTIFY channel fed by the
// tasks_notify trigger; the payload is the mutated row's user_id.
const taskChangeChannel = "tasks_changed"

const (
	listenerMinReconnect = 2 * time.Second
	listenerMaxReconnect = time.Minute
)

// Notifier turns postgres LISTEN/NOTIFY into per-identity change
// events: when another device or tab mutates a user's tasks, every
// subscriber for that user is nudged to refresh.
type Notifier struct {
	listener *pq.Listener

	mu     sync.Mutex
	nextID int
	subs   map[int]notifierSub
}

type notifierSub struct {
	userID string
	events chan ports.ChangeEvent
}

var _ ports.ChangeFeed = (*Notifier)(nil)

func NewNotifier(dsn string) (*Notifier, error) {
	listener := pq.NewListener(dsn, listenerMinReconnect, listenerMaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			zap.L().Warn("task change listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})
	if err := listener.Listen(taskChangeChannel); err != nil {
		_ = listener.Close()
		return nil, err
	}

	n := &Notifier{
		listener: listener,
		subs:     make(map[int]notifierSub),
	}
	go n.run()
	return n, nil
}

func (n *Notifier) run() {
	for notification := range n.listener.Notify {
		if notification == nil {
			// Reconnect marker; events may have been missed, so wake
			// every subscriber.
			n.broadcast("")
			continue
		}
		n.broadcast(notification.Extra)
	}
}

// broadcast delivers to subscribers of userID, or everyone when
// userID is empty. Delivery is non-blocking; a subscriber with a
// pending event does not need a second one.
func (n *Notifier) broadcast(userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, sub := range n.subs {
		if userID != "" && sub.userID != userID {
			continue
		}
		select {
		case sub.events <- ports.ChangeEvent{UserID: sub.userID}:
		default:
		}
	}
}

func (n *Notifier) Subscribe(ctx context.Context, identity domain.Identity) (<-chan ports.ChangeEvent, error) {
	events := make(chan ports.ChangeEvent, 1)

	// Guest tasks live only in this process; no remote session can
	// mutate them, so the feed stays silent.
	if identity.IsGuest() {
		go func() {
			<-ctx.Done()
			close(events)
		}()
		return events, nil
	}

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = notifierSub{userID: identity.UserID, events: events}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
		close(events)
	}()

	return events, nil
}

func (n *Notifier) Close() error {
	return n.listener.Close()
}
