package repositories

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrPostClosed     = errors.New("post is closed")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Clock returns the current time. Repositories take one so tests can pin it.
type Clock func() time.Time

// SystemClock is UTC wall time truncated to milliseconds, which is the
// precision the stored timestamps carry.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// idGenerator hands out time-derived ids that are strictly increasing, so
// two posts created within the same millisecond still get distinct ids.
type idGenerator struct {
	mutex sync.Mutex
	last  int64
}

// next returns max(now in ms, last+1).
func (g *idGenerator) next(now time.Time) int64 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	id := now.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// observe makes sure future ids are greater than id.
func (g *idGenerator) observe(id int64) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if id > g.last {
		g.last = id
	}
}
