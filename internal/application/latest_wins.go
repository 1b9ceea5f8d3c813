package application

import (
	"sync"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
)

// LatestWins orders results of repeated fetches of the same resource so that a
// slow, older fetch can never replace a newer one that already resolved.
// A key is tracked only while it has tickets outstanding.
type LatestWins struct {
	mu   sync.Mutex
	keys map[string]*sequence
}

type sequence struct {
	issued   uint64
	applied  uint64
	inflight int
}

type Ticket struct {
	key string
	seq uint64
}

func NewLatestWins() *LatestWins {
	return &LatestWins{keys: map[string]*sequence{}}
}

// Issue hands out the next ticket for key. Call it before starting the fetch
// and settle every ticket exactly once with Resolve or Release.
func (l *LatestWins) Issue(key string) Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.keys[key]
	if !ok {
		s = &sequence{}
		l.keys[key] = s
	}
	s.issued++
	s.inflight++
	return Ticket{key: key, seq: s.issued}
}

// Resolve reports whether the result for t may be applied, and records it if so.
func (l *LatestWins) Resolve(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.keys[t.key]
	if !ok {
		return false
	}
	fresh := t.seq > s.applied
	if fresh {
		s.applied = t.seq
	}
	l.settle(t.key, s)
	return fresh
}

// Release settles t without applying a result, e.g. when the fetch failed.
func (l *LatestWins) Release(t Ticket) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.keys[t.key]; ok {
		l.settle(t.key, s)
	}
}

// Len returns the number of keys with tickets outstanding.
func (l *LatestWins) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}

// settle drops key once nothing is in flight for it; no older ticket can
// arrive afterwards, so restarting its sequence is safe. Callers hold l.mu.
func (l *LatestWins) settle(key string, s *sequence) {
	s.inflight--
	if s.inflight <= 0 {
		delete(l.keys, key)
	}
}

// Latest runs fetch under a ticket for key and returns domain.ErrSuperseded
// when a newer fetch for the same key resolved first.
func Latest[T any](l *LatestWins, key string, fetch func() (T, error)) (T, error) {
	t := l.Issue(key)
	v, err := fetch()
	if err != nil {
		l.Release(t)
		return v, err
	}
	if !l.Resolve(t) {
		var zero T
		return zero, domain.ErrSuperseded
	}
	return v, nil
}
