package host

import "sync"

// MemStatsRegistry is a bundled reference StatsRegistry backed by
// in-process counters, guarded by its own lock per spec.md §5/§6
// ("the statistics registry ... use their own internal locks").
type MemStatsRegistry struct {
	mu       sync.Mutex
	counters map[string]*uint64
}

// NewMemStatsRegistry creates an empty registry.
func NewMemStatsRegistry() *MemStatsRegistry {
	return &MemStatsRegistry{counters: make(map[string]*uint64)}
}

func (r *MemStatsRegistry) RegisterCounter(key string, _ map[string]string) (*uint64, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.counters[key]; ok {
		return c, func() { r.unregister(key) }
	}
	var v uint64
	r.counters[key] = &v
	return &v, func() { r.unregister(key) }
}

func (r *MemStatsRegistry) unregister(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.counters, key)
}
