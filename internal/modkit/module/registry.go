package module

import (
	"slices"
	"sync"
)

// registry of mounted modules and their ports, filled by api.Mount
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register records a mounted module's ports under name
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	reg[name] = ports
}

// Names lists registered modules in order
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(reg))
	for n := range reg {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Reset empties the registry
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	reg = map[string]any{}
}
