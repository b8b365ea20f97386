package llm

import (
	"context"
	"fmt"
	"sync"
)

// ScriptProvider replays canned replies in order; once the script runs out
// it echoes the question. Used by tests and offline demos.
type ScriptProvider struct {
	mu      sync.Mutex
	replies []string
	next    int

	// Err, when set, is returned by every Ask call
	Err error
}

var _ Provider = (*ScriptProvider)(nil)

// NewScriptProvider creates a provider that answers with replies in order
func NewScriptProvider(replies ...string) *ScriptProvider {
	return &ScriptProvider{replies: replies}
}

// Ask implements Provider
func (p *ScriptProvider) Ask(ctx context.Context, message, systemPrompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return "", p.Err
	}
	if p.next < len(p.replies) {
		reply := p.replies[p.next]
		p.next++
		return reply, nil
	}
	return fmt.Sprintf("You said: %q", message), nil
}

// Name implements Provider
func (p *ScriptProvider) Name() string {
	return "script"
}
