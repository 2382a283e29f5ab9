package scene

import (
	"sort"
	"sync"

	"vtk-polydata/internal/mesh"
)

// Store receives fully decoded meshes. Replace swaps out any mesh already
// registered under the same name and reports whether one existed.
type Store interface {
	Replace(m *mesh.Mesh) (replaced bool)
}

// Library is a concurrency-safe in-memory Store keyed by mesh name.
type Library struct {
	mu     sync.RWMutex
	meshes map[string]*mesh.Mesh
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{meshes: make(map[string]*mesh.Mesh)}
}

func (l *Library) Replace(m *mesh.Mesh) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, exists := l.meshes[m.Name]
	l.meshes[m.Name] = m
	return exists
}

// Get returns the mesh registered under name.
func (l *Library) Get(name string) (*mesh.Mesh, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.meshes[name]
	return m, ok
}

// Names lists registered mesh names in sorted order.
func (l *Library) Names() []string {
	l.mu.RLock()
	names := make([]string, 0, len(l.meshes))
	for n := range l.meshes {
		names = append(names, n)
	}
	l.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.meshes)
}
