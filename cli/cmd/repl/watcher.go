package repl

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages delivered by a [watcher].
type (
	fileChangedMsg struct{}
	watchErrorMsg  struct{ err error }
)

// watcher reports changes to a single file.
//
// The parent directory is watched rather than the file itself, since many
// editors save by writing a new file and renaming it over the old one.
type watcher struct {
	fs   *fsnotify.Watcher
	path string
}

func newWatcher(path string) (*watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fs.Add(filepath.Dir(abs)); err != nil {
		_ = fs.Close()

		return nil, err
	}

	return &watcher{fs: fs, path: abs}, nil
}

// wait returns a command that blocks until the file is written or created,
// or the watcher fails. It returns nil once the watcher is closed.
func (w *watcher) wait() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.fs.Events:
				if !ok {
					return nil
				}

				if filepath.Clean(ev.Name) == w.path && (ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					return fileChangedMsg{}
				}

			case err, ok := <-w.fs.Errors:
				if !ok {
					return nil
				}

				return watchErrorMsg{err: err}
			}
		}
	}
}

func (w *watcher) Close() error {
	if w == nil {
		return nil
	}

	return w.fs.Close()
}
