// Package tabs keeps exactly one panel of a dashboard visible and remembers
// the last selected one in a session-scoped store.
package tabs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/status-im/dashboard-client/session"
)

const (
	DefaultKey = "dashTab"
	DefaultTab = "first"
)

var ErrUnknownTab = errors.New("unknown tab")

// Panel is anything that can be shown or hidden
type Panel interface {
	SetVisible(visible bool)
}

// Switcher owns a fixed set of panels keyed by id
type Switcher struct {
	store      session.Store
	key        string
	defaultTab string
	panels     map[string]Panel
	ids        []string
}

// New creates a Switcher. Empty key and defaultTab fall back to
// DefaultKey and DefaultTab.
func New(store session.Store, key, defaultTab string, panels map[string]Panel) (*Switcher, error) {
	if key == "" {
		key = DefaultKey
	}
	if defaultTab == "" {
		defaultTab = DefaultTab
	}
	if _, ok := panels[defaultTab]; !ok {
		return nil, fmt.Errorf("default tab %q: %w", defaultTab, ErrUnknownTab)
	}

	ids := make([]string, 0, len(panels))
	for id := range panels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &Switcher{
		store:      store,
		key:        key,
		defaultTab: defaultTab,
		panels:     panels,
		ids:        ids,
	}, nil
}

// Setup hides every panel and shows the remembered tab, or the default
// tab when nothing usable is remembered. It returns the id shown.
func (s *Switcher) Setup() string {
	shown := s.defaultTab
	if stored, ok := s.store.Get(s.key); ok {
		if _, known := s.panels[stored]; known {
			shown = stored
		}
	}

	s.showOnly(shown)
	return shown
}

// Show hides every panel, shows id and remembers it
func (s *Switcher) Show(id string) error {
	if _, ok := s.panels[id]; !ok {
		return fmt.Errorf("tab %q: %w", id, ErrUnknownTab)
	}

	s.showOnly(id)
	s.store.Set(s.key, id)
	return nil
}

// IDs returns the panel ids in sorted order
func (s *Switcher) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Switcher) showOnly(id string) {
	for _, other := range s.ids {
		if other != id {
			s.panels[other].SetVisible(false)
		}
	}
	s.panels[id].SetVisible(true)
}
