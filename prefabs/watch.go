package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Change is one edited prefab file, named relative to the prefab directory.
type Change struct {
	Name   string
	Script bool
}

// Watcher reports edits to archetype YAML and tengo scripts. Changes are
// delivered on a channel and consumed on the simulation thread.
type Watcher struct {
	watcher *fsnotify.Watcher
	changes chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches Dir and its scripts subdirectory.
func NewWatcher() (*Watcher, error) {
	return NewWatcherFor(Dir, filepath.Join(Dir, "scripts"))
}

func NewWatcherFor(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Drain returns the changes received since the last call without blocking.
func (w *Watcher) Drain() []Change {
	if w == nil {
		return nil
	}
	var out []Change
	for {
		select {
		case c, ok := <-w.changes:
			if !ok {
				return out
			}
			out = append(out, c)
		default:
			return out
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.changes)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			change, ok := classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, seen := last[change.Name]; seen && now.Sub(t) < debounce {
				continue
			}
			last[change.Name] = now
			select {
			case w.changes <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func classify(path string) (Change, bool) {
	base := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Change{Name: base}, true
	case ".tengo":
		return Change{Name: "scripts/" + base, Script: true}, true
	}
	return Change{}, false
}
