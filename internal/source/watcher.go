package source

import (
	"context"
	"sync"
	"time"
)

// Kind represents the type of data emitted by the watcher.
type Kind int

const (
	// KindRoster is the rotating city subset shown by the list screens.
	KindRoster Kind = iota
)

// Event conveys an updated dataset from a poll.
type Event struct {
	Kind Kind
	Data []string
	Err  error
}

// Watcher emits a rotating window over the directory at a fixed interval,
// so list screens see items appear and disappear while open.
type Watcher struct {
	dir      *Directory
	interval time.Duration
	window   int

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that re-emits every interval.
func NewWatcher(dir *Directory, interval time.Duration, window int) *Watcher {
	if window <= 0 {
		window = 10
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:      dir,
		interval: interval,
		window:   window,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startRosterPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of watcher events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current emit completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startRosterPoller() {
	all := w.dir.All()
	offset := 0
	w.wg.Add(1)
	go w.poll(KindRoster, func(context.Context) ([]string, error) {
		window := make([]string, 0, w.window)
		for i := range w.window {
			window = append(window, all[(offset+i)%len(all)])
		}
		offset = (offset + 1) % len(all)
		return window, nil
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) ([]string, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
