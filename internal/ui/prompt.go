// ABOUTME: Line-based yes/no prompt for terminal confirmation.
// ABOUTME: Satisfies the editor bridge confirmer contract.

package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptConfirmer asks on Out and reads the answer from In.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{In: in, Out: out}
}

// Confirm returns true only for an explicit yes.
func (p *PromptConfirmer) Confirm(prompt string) bool {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	fmt.Fprintf(p.Out, "%s [y/N] ", prompt)
	response, _ := p.reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
