// ABOUTME: Ordered executor for app calls made from the TUI.
// ABOUTME: Keeps edits and selection changes in keystroke order off the render loop.

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// op runs against the app and may produce a message for the model.
type op func() tea.Msg

// worker runs ops one at a time in submission order. Bubble Tea runs each
// Cmd on its own goroutine, which would let a stale edit land after a
// selection change.
type worker struct {
	ops     chan op
	results chan tea.Msg
	quit    chan struct{}
}

func newWorker() *worker {
	w := &worker{
		ops:     make(chan op, 256),
		results: make(chan tea.Msg, 64),
		quit:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *worker) run() {
	for {
		select {
		case o := <-w.ops:
			if msg := o(); msg != nil {
				select {
				case w.results <- msg:
				case <-w.quit:
					return
				}
			}
		case <-w.quit:
			return
		}
	}
}

func (w *worker) submit(o op) {
	select {
	case w.ops <- o:
	case <-w.quit:
	}
}

func (w *worker) stop() {
	close(w.quit)
}

// next waits for the next op result.
func (w *worker) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.results:
			return msg
		case <-w.quit:
			return nil
		}
	}
}
