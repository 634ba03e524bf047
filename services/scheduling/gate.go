package scheduling

import "sync"

// advisorGate serializes admission decisions per advisor within this
// process, so two concurrent requests for the same advisor are totally
// ordered before either reaches the store. The store's unique slot index
// remains the final guard across processes.
type advisorGate struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAdvisorGate() *advisorGate {
	return &advisorGate{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for a given advisor, creating one if it doesn't exist.
func (g *advisorGate) get(advisorID string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	lock, exists := g.locks[advisorID]
	if !exists {
		lock = &sync.Mutex{}
		g.locks[advisorID] = lock
	}
	return lock
}
