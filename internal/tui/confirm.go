// ABOUTME: Confirmer that asks through the running TUI program.
// ABOUTME: Blocks the caller until the dialog is answered or the program exits.

package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmMsg opens the confirmation dialog.
type confirmMsg struct {
	prompt string
	reply  chan<- bool
}

// Confirmer forwards prompts to an attached program. Before Attach and after
// Detach every prompt is declined.
type Confirmer struct {
	mu   sync.Mutex
	send func(tea.Msg)
	done chan struct{}
}

func NewConfirmer() *Confirmer {
	return &Confirmer{}
}

// Attach routes prompts to send, usually a tea.Program's Send.
func (c *Confirmer) Attach(send func(tea.Msg)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.send = send
	c.done = make(chan struct{})
}

// Detach declines the pending prompt, if any, and all later ones.
func (c *Confirmer) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		close(c.done)
	}
	c.send = nil
	c.done = nil
}

func (c *Confirmer) Confirm(prompt string) bool {
	c.mu.Lock()
	send, done := c.send, c.done
	c.mu.Unlock()
	if send == nil {
		return false
	}

	reply := make(chan bool, 1)
	send(confirmMsg{prompt: prompt, reply: reply})
	select {
	case ok := <-reply:
		return ok
	case <-done:
		return false
	}
}
