// ABOUTME: Background writer that saves collection snapshots off the caller's path.
// ABOUTME: Only the newest pending snapshot is written; failures are logged and swallowed.

package persist

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/harper/quill/internal/models"
)

// Saver persists a full collection.
type Saver interface {
	Save(notes []models.Note) error
}

// Writer owns one goroutine that drains submitted snapshots. A snapshot
// submitted while an earlier one is still pending replaces it, so storage
// never receives an older collection after a newer one.
type Writer struct {
	saver  Saver
	logger *slog.Logger

	mu        sync.Mutex
	cond      *sync.Cond
	pending   []models.Note
	hasWork   bool
	submitted uint64
	written   uint64
	closed    bool
	lastErr   error
	failures  int
	done      chan struct{}
}

func NewWriter(saver Saver, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &Writer{
		saver:  saver,
		logger: logger,
		done:   make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

// Submit queues a snapshot for writing and returns immediately. The slice
// is copied.
func (w *Writer) Submit(notes []models.Note) {
	snapshot := append([]models.Note(nil), notes...)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.logger.Warn("persist: write after close dropped", "count", len(snapshot))
		return
	}
	if w.hasWork {
		w.logger.Debug("persist: pending snapshot superseded")
	}
	w.pending = snapshot
	w.hasWork = true
	w.submitted++
	w.cond.Broadcast()
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		w.mu.Lock()
		for !w.hasWork && !w.closed {
			w.cond.Wait()
		}
		if !w.hasWork && w.closed {
			w.mu.Unlock()
			return
		}
		snapshot := w.pending
		seq := w.submitted
		w.pending = nil
		w.hasWork = false
		w.mu.Unlock()

		err := w.save(snapshot)

		w.mu.Lock()
		w.lastErr = err
		if err != nil {
			w.failures++
			w.logger.Error("persist: save failed, keeping notes in memory", "count", len(snapshot), "error", err)
		}
		w.written = seq
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}

// save runs the saver, turning a panic into an error so the loop keeps
// draining.
func (w *Writer) save(snapshot []models.Note) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("save panicked: %v", r)
		}
	}()
	return w.saver.Save(snapshot)
}

// Flush blocks until every snapshot submitted before the call is written or
// has failed.
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	target := w.submitted
	for w.written < target {
		w.cond.Wait()
	}
}

// Close flushes pending work and stops the goroutine.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()
	<-w.done
}

// Err returns the outcome of the most recent write.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Failures returns the number of writes that have failed.
func (w *Writer) Failures() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failures
}
