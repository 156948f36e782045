// Package presence tracks which users are currently online. The set
// lives in memory only and comes back empty after a restart.
package presence

import "sync"

type Tracker struct {
	mu     sync.RWMutex
	online map[string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{online: make(map[string]struct{})}
}

func (t *Tracker) Add(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.online[userID] = struct{}{}
}

func (t *Tracker) Remove(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.online, userID)
}

func (t *Tracker) IsOnline(userID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.online[userID]
	return ok
}

func (t *Tracker) Online() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.online))
	for id := range t.online {
		ids = append(ids, id)
	}
	return ids
}
