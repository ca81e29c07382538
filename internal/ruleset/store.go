package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store holds all known rulesets: the built-in default plus any loaded
// from the home rulesets directory.
type Store struct {
	mu       sync.RWMutex
	rulesets map[string]*Ruleset
}

// NewStore creates a Store seeded with the built-in default ruleset.
func NewStore() *Store {
	return &Store{
		rulesets: map[string]*Ruleset{
			DefaultName: Default(),
		},
	}
}

// LoadDir loads every *.yaml / *.yml file in dir. A file that fails to
// parse aborts the load with an error naming the file; rulesets loaded
// before the failure remain registered.
func (s *Store) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read rulesets directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		r, err := Parse(data)
		if err != nil {
			return fmt.Errorf("ruleset file %s: %w", path, err)
		}

		s.mu.Lock()
		s.rulesets[r.Name] = r
		s.mu.Unlock()
	}

	return nil
}

// Get returns the named ruleset, or false if it isn't registered.
func (s *Store) Get(name string) (*Ruleset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rulesets[name]
	return r, ok
}

// Names returns all registered ruleset names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.rulesets))
	for name := range s.rulesets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
