package playback

import (
	"maps"
	"sync"

	"cueplay/player"
)

// Registry maps arbitrary keys to track references for convenient reuse.
// Keys must be comparable. Registration is last-write-wins; there is no
// removal.
type Registry struct {
	mu      sync.RWMutex
	entries map[any]any
}

// NewRegistry creates an empty alias registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[any]any)}
}

// Register stores ref under key, overwriting any previous registration.
// The reference must be an accepted track reference shape.
func (r *Registry) Register(key, ref any) error {
	if err := player.CheckSource(ref); err != nil {
		return err
	}
	r.mu.Lock()
	r.entries[key] = ref
	r.mu.Unlock()
	return nil
}

// Get returns the reference registered under key, or def when absent.
func (r *Registry) Get(key, def any) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if ref, ok := r.entries[key]; ok {
		return ref
	}
	return def
}

// All returns a snapshot copy of the table. Mutating the snapshot does not
// affect the registry.
func (r *Registry) All() map[any]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.entries)
}

// DefaultRegistry is the process-wide alias table. Engines consult it unless
// given their own registry via WithAliases.
var DefaultRegistry = NewRegistry()

// Register stores ref under key in the process-wide table.
func Register(key, ref any) error {
	return DefaultRegistry.Register(key, ref)
}

// GetAlias returns the process-wide reference for key, or def when absent.
func GetAlias(key, def any) any {
	return DefaultRegistry.Get(key, def)
}

// Aliases returns a snapshot copy of the process-wide table.
func Aliases() map[any]any {
	return DefaultRegistry.All()
}
