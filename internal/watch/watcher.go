// Package watch monitors the sales landing folder and re-runs consolidation
// when new workbooks are dropped in. Events are debounced so a file still
// being copied is processed once, after the last write.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/klytics/finrep/internal/xlsxio"
)

// Handler is invoked once per settled workbook drop.
type Handler func(path string) error

// Event records one handled (or skipped) workbook drop.
type Event struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"` // "processed", "error", "skipped"
	Error     string    `json:"error,omitempty"`
}

// Watcher monitors a directory for new spreadsheet files.
type Watcher struct {
	Dir        string
	Extensions []string
	Debounce   time.Duration
	Handler    Handler
	Logger     *log.Logger

	mu      sync.Mutex
	events  []Event
	watcher *fsnotify.Watcher
	timers  map[string]*time.Timer
}

// New creates a watcher over dir. Only files with one of the given
// extensions trigger the handler; the default is .xlsx only.
func New(dir string, extensions []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}
	if len(extensions) == 0 {
		extensions = []string{".xlsx"}
	}
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Watcher{
		Dir:        dir,
		Extensions: extensions,
		Debounce:   debounce,
		Logger:     log.New(os.Stderr, "[watch] ", log.LstdFlags),
		watcher:    fsw,
		timers:     make(map[string]*time.Timer),
	}, nil
}

// Start begins watching. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	absDir, err := filepath.Abs(w.Dir)
	if err != nil {
		return fmt.Errorf("could not resolve %s: %w", w.Dir, err)
	}
	if err := w.watcher.Add(absDir); err != nil {
		return fmt.Errorf("could not watch %s: %w", absDir, err)
	}

	w.Logger.Printf("Watching %s for new workbooks", absDir)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Println("Stopping watcher")
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("Error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	path := event.Name
	if !w.matches(path) {
		return
	}

	// Restart the timer on every write so a file mid-copy settles first.
	w.mu.Lock()
	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	op := event.Op.String()
	w.timers[path] = time.AfterFunc(w.Debounce, func() {
		w.process(path, op)
	})
	w.mu.Unlock()
}

func (w *Watcher) matches(path string) bool {
	base := filepath.Base(path)
	if xlsxio.Hidden(base) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.Extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func (w *Watcher) process(path, operation string) {
	evt := Event{Time: time.Now(), Path: path, Operation: operation}

	if w.Handler == nil {
		evt.Status = "skipped"
	} else if err := w.Handler(path); err != nil {
		evt.Status = "error"
		evt.Error = err.Error()
		w.Logger.Printf("Error processing %s: %v", path, err)
	} else {
		evt.Status = "processed"
		w.Logger.Printf("Processed %s", path)
	}

	w.mu.Lock()
	w.events = append(w.events, evt)
	w.mu.Unlock()
}

// Events returns a copy of all recorded events.
func (w *Watcher) Events() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := make([]Event, len(w.events))
	copy(events, w.events)
	return events
}
