package presenter

import (
	"clientreg/internal/types"
	"sync"
	"time"
)

// DefaultNoticeTTL is how long a notice stays up before it is removed.
const DefaultNoticeTTL = 3 * time.Second

// PostedNotice is a notice on the board.
type PostedNotice struct {
	ID int64
	types.Notice
	Expires time.Time
}

type postedEntry struct {
	notice PostedNotice
	timer  *time.Timer
}

// Notices holds transient notifications. Each posted notice removes itself after the TTL;
// Close stops every pending timer.
type Notices struct {
	mu      sync.Mutex
	ttl     time.Duration
	seq     int64
	entries map[int64]*postedEntry
	order   []int64
	closed  bool
}

func NewNotices(ttl time.Duration) *Notices {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &Notices{ttl: ttl, entries: make(map[int64]*postedEntry)}
}

// Post adds n and schedules its removal. It returns 0 once the board is closed.
func (b *Notices) Post(n types.Notice) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0
	}
	b.seq++
	id := b.seq
	b.entries[id] = &postedEntry{
		notice: PostedNotice{ID: id, Notice: n, Expires: time.Now().Add(b.ttl)},
		timer:  time.AfterFunc(b.ttl, func() { b.remove(id) }),
	}
	b.order = append(b.order, id)
	return id
}

// Dismiss removes a notice before it expires.
func (b *Notices) Dismiss(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[id]
	if !ok {
		return false
	}
	e.timer.Stop()
	b.deleteLocked(id)
	return true
}

// Active returns the live notices, oldest first.
func (b *Notices) Active() []PostedNotice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]PostedNotice, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.entries[id].notice)
	}
	return out
}

func (b *Notices) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// Close cancels all pending removals and empties the board.
func (b *Notices) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.entries {
		e.timer.Stop()
	}
	b.entries = make(map[int64]*postedEntry)
	b.order = nil
	b.closed = true
}

func (b *Notices) remove(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleteLocked(id)
}

func (b *Notices) deleteLocked(id int64) {
	if _, ok := b.entries[id]; !ok {
		return
	}
	delete(b.entries, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}
