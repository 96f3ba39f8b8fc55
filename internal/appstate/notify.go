package appstate

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/parish/internal/domain"
)

// DefaultNotificationTTL is how long a notification stays active when the
// caller does not set an expiry.
const DefaultNotificationTTL = 5 * time.Second

// NotificationQueue is a bounded ring buffer of notifications. When full,
// the oldest entry is overwritten. Expiry is evaluated against the now
// passed by the caller; the queue owns no timers.
type NotificationQueue struct {
	buf   []domain.Notification
	head  int // index of the oldest entry
	count int
	ttl   time.Duration
}

// NewNotificationQueue returns a queue holding at most capacity entries.
func NewNotificationQueue(capacity int, ttl time.Duration) *NotificationQueue {
	if capacity < 1 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &NotificationQueue{buf: make([]domain.Notification, capacity), ttl: ttl}
}

// Cap returns the fixed capacity.
func (q *NotificationQueue) Cap() int {
	return len(q.buf)
}

// Len returns the number of stored entries, expired or not.
func (q *NotificationQueue) Len() int {
	return q.count
}

// Push stores n, assigning an id, a creation time and, when unset, an
// expiry of now plus the queue's TTL. The stored notification is returned.
func (q *NotificationQueue) Push(n domain.Notification, now time.Time) domain.Notification {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Level == "" {
		n.Level = domain.NotifyInfo
	}
	n.CreatedAt = now
	if n.ExpiresAt.IsZero() {
		n.ExpiresAt = now.Add(q.ttl)
	}

	if q.count == len(q.buf) {
		q.buf[q.head] = n
		q.head = (q.head + 1) % len(q.buf)
		return n
	}
	q.buf[(q.head+q.count)%len(q.buf)] = n
	q.count++
	return n
}

// all returns stored entries oldest first.
func (q *NotificationQueue) all() []domain.Notification {
	out := make([]domain.Notification, 0, q.count)
	for i := 0; i < q.count; i++ {
		out = append(out, q.buf[(q.head+i)%len(q.buf)])
	}
	return out
}

func (q *NotificationQueue) reset(keep []domain.Notification) {
	clear(q.buf)
	q.head = 0
	q.count = copy(q.buf, keep)
}

// Active returns unexpired notifications, oldest first.
func (q *NotificationQueue) Active(now time.Time) []domain.Notification {
	var out []domain.Notification
	for _, n := range q.all() {
		if !n.Expired(now) {
			out = append(out, n)
		}
	}
	return out
}

// Evict drops expired entries and returns how many were removed.
func (q *NotificationQueue) Evict(now time.Time) int {
	before := q.count
	q.reset(q.Active(now))
	return before - q.count
}

// Dismiss removes the notification with the given id.
func (q *NotificationQueue) Dismiss(id string) bool {
	all := q.all()
	keep := all[:0:0]
	for _, n := range all {
		if n.ID != id {
			keep = append(keep, n)
		}
	}
	if len(keep) == len(all) {
		return false
	}
	q.reset(keep)
	return true
}
