package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// DBChangedMsg is sent when the watched database file was written.
type DBChangedMsg struct {
	Path string
}

// DBWatchErrorMsg is sent when the watcher reports an error.
type DBWatchErrorMsg struct {
	Err error
}

// DBWatcher turns writes to a sqlite file into DBChangedMsg.
type DBWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
}

// NewDBWatcher watches the directory of path so that the -wal file is
// seen as well as the main database file.
func NewDBWatcher(path string) (*DBWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &DBWatcher{
		watcher:  w,
		path:     filepath.Clean(path),
		debounce: 150 * time.Millisecond,
	}, nil
}

// matches reports whether ev touches the database or its WAL.
func (d *DBWatcher) matches(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Clean(ev.Name)
	if strings.HasSuffix(name, "-shm") {
		return false
	}
	return name == d.path || name == d.path+"-wal" || name == d.path+"-journal"
}

// Wait returns a command that blocks until the next relevant change.
// Bursts of writes within the debounce window collapse into one message.
func (d *DBWatcher) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-d.watcher.Events:
				if !ok {
					return nil
				}
				if !d.matches(ev) {
					continue
				}
				d.drain()
				return DBChangedMsg{Path: d.path}
			case err, ok := <-d.watcher.Errors:
				if !ok {
					return nil
				}
				return DBWatchErrorMsg{Err: err}
			}
		}
	}
}

func (d *DBWatcher) drain() {
	timer := time.NewTimer(d.debounce)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-d.watcher.Events:
			if !ok {
				return
			}
		case <-timer.C:
			return
		}
	}
}

// Close stops watching.
func (d *DBWatcher) Close() error {
	return d.watcher.Close()
}
