package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind classifies a changed file.
type ChangeKind int

const (
	ChangeUnknown ChangeKind = iota
	ChangeProperties
	ChangeRoster
	ChangeFSM
	ChangeScript
	ChangeLevel
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeProperties:
		return "properties"
	case ChangeRoster:
		return "roster"
	case ChangeFSM:
		return "fsm"
	case ChangeScript:
		return "script"
	case ChangeLevel:
		return "level"
	default:
		return "unknown"
	}
}

// Change is a debounced file change.
type Change struct {
	Path string
	Kind ChangeKind
}

const debounce = 100 * time.Millisecond

// Watcher reports edits to properties, roster, fsm, script and level files.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
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
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// run collects changes until no event has arrived for the debounce period,
// then reports each changed file once. Editors that truncate before writing
// are reported after the write lands.
func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]ChangeKind)
	var order []string
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind := Classify(event.Name)
			if kind == ChangeUnknown {
				continue
			}
			if _, seen := pending[event.Name]; !seen {
				order = append(order, event.Name)
			}
			pending[event.Name] = kind
			timer.Reset(debounce)
		case <-timer.C:
			for _, path := range order {
				select {
				case w.Events <- Change{Path: path, Kind: pending[path]}:
				case <-w.closeCh:
					return
				}
			}
			pending = make(map[string]ChangeKind)
			order = order[:0]
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

// Classify maps a path to the kind of data it holds.
func Classify(path string) ChangeKind {
	base := strings.ToLower(filepath.Base(path))
	switch strings.ToLower(filepath.Ext(base)) {
	case ".tengo":
		return ChangeScript
	case ".json":
		return ChangeLevel
	case ".yaml", ".yml":
	default:
		return ChangeUnknown
	}
	switch strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml") {
	case "properties":
		return ChangeProperties
	case "roster":
		return ChangeRoster
	case "melee_fsm":
		return ChangeFSM
	}
	return ChangeUnknown
}
