package session

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"karat/internal/logging"
)

// Event describes an external change to the session file.
type Event int

const (
	// Cleared means another process logged out (file removed or token
	// gone). The TUI drops to the login view on this.
	Cleared Event = iota
	// Updated means the session was rewritten, e.g. a token refresh by
	// another karat process.
	Updated
)

// Watch reports session-file changes made by other processes until ctx
// is cancelled. The store's in-memory view is reloaded before each
// event is delivered, so receivers can read the new state immediately.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: removal and recreation of the file itself
	// would otherwise drop the watch.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	events := make(chan Event, 1)
	go func() {
		defer close(events)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != fileName {
					continue
				}

				hadToken := s.Token() != ""
				s.reload()
				hasToken := s.Token() != ""

				var out Event
				switch {
				case hadToken && !hasToken:
					out = Cleared
				case hasToken:
					out = Updated
				default:
					continue
				}

				logging.Session("session file changed externally (%v)", ev.Op)
				select {
				case events <- out:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.SessionError("session watcher error: %v", err)
			}
		}
	}()

	return events, nil
}
