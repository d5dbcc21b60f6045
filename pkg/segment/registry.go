package segment

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
)

// ProfileRegistry manages named segmentation profiles loaded from a
// directory of YAML files. The default profile is always present and cannot
// be unregistered, so lookups for the empty name never fail.
type ProfileRegistry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	dir      string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	onChange func(event string, profile Profile)
}

// NewProfileRegistry creates a registry seeded with the default profile.
func NewProfileRegistry() *ProfileRegistry {
	r := &ProfileRegistry{profiles: make(map[string]Profile)}
	def := DefaultProfile()
	r.profiles[def.Name] = def
	return r
}

// NewProfileRegistryWithDirectory creates a registry and loads all profiles
// from the directory.
func NewProfileRegistryWithDirectory(dir string) (*ProfileRegistry, error) {
	r := NewProfileRegistry()
	if err := r.LoadDirectory(dir); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds or replaces a profile.
func (r *ProfileRegistry) Register(profile Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.Name] = profile
	return nil
}

// Get returns a profile by name. The empty name resolves to the default
// profile.
func (r *ProfileRegistry) Get(name string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = DefaultProfile().Name
	}
	profile, ok := r.profiles[name]
	return profile, ok
}

// List returns the names of all registered profiles.
func (r *ProfileRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	return names
}

// LoadDirectory loads all YAML profile files from a directory. A missing
// directory is not an error: the registry keeps its built-in default.
func (r *ProfileRegistry) LoadDirectory(dir string) error {
	r.dir = dir

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		if err := r.LoadFile(filepath.Join(dir, name)); err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading profiles: %s", strings.Join(loadErrors, "; "))
	}

	return nil
}

// LoadFile loads a single profile file.
func (r *ProfileRegistry) LoadFile(path string) error {
	profile, err := LoadProfileFile(path)
	if err != nil {
		return err
	}
	return r.Register(profile)
}

// Reload resets the registry to the built-in default and reloads the
// configured directory.
func (r *ProfileRegistry) Reload() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for reload")
	}

	r.mu.Lock()
	r.profiles = make(map[string]Profile)
	def := DefaultProfile()
	r.profiles[def.Name] = def
	r.mu.Unlock()

	return r.LoadDirectory(r.dir)
}

// SetOnChange sets a callback invoked after a watched profile file changes.
func (r *ProfileRegistry) SetOnChange(fn func(event string, profile Profile)) {
	r.onChange = fn
}

// Watch starts watching the profile directory for changes.
func (r *ProfileRegistry) Watch() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	r.watcher = watcher
	r.stopChan = make(chan struct{})

	go r.watchLoop()

	if err := watcher.Add(r.dir); err != nil {
		r.watcher.Close()
		return fmt.Errorf("watching directory %s: %w", r.dir, err)
	}

	return nil
}

func (r *ProfileRegistry) watchLoop() {
	for {
		select {
		case <-r.stopChan:
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}

			if !strings.HasSuffix(event.Name, ".yaml") && !strings.HasSuffix(event.Name, ".yml") {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create,
				event.Op&fsnotify.Write == fsnotify.Write:
				// Invalid files are skipped; the previous version stays
				// registered until a valid replacement arrives.
				if profile, err := LoadProfileFile(event.Name); err == nil {
					if err := r.Register(profile); err == nil && r.onChange != nil {
						r.onChange("write", profile)
					}
				}

			case event.Op&fsnotify.Remove == fsnotify.Remove,
				event.Op&fsnotify.Rename == fsnotify.Rename:
				_ = r.Reload()
				if r.onChange != nil {
					r.onChange("remove", Profile{})
				}
			}

		case _, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// StopWatch stops watching the profile directory.
func (r *ProfileRegistry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
	}
	if r.watcher != nil {
		r.watcher.Close()
	}
}
