// Package chat owns the single live conversation: submitting messages to
// the answering service, edit-resubmit, regenerate, reaction toggles, and
// write-through persistence of the message buffer.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/askdeck/askdeck/internal/core/llm"
	"github.com/askdeck/askdeck/internal/core/models"
	"github.com/askdeck/askdeck/internal/core/store"
)

// ErrorReplyContent is appended as the assistant reply when the ask call
// fails; the failure is never propagated past the conversation.
const ErrorReplyContent = "❌ Error connecting to server"

var (
	// ErrAwaitingResponse rejects an ask-triggering call while another is
	// outstanding. There is no queue; callers drop the attempt.
	ErrAwaitingResponse = errors.New("a response is already pending")

	// ErrBlankMessage rejects a submission with no text and no attachment
	ErrBlankMessage = errors.New("message is blank")

	// ErrNotUserMessage rejects an edit targeting anything but a user message
	ErrNotUserMessage = errors.New("index does not reference a user message")
)

// Engine manages the live conversation buffer for one user
type Engine struct {
	mu       sync.Mutex
	provider llm.Provider
	store    store.Store
	key      string

	systemPrompt string
	messages     []models.Message
	pending      *models.Attachment
	awaiting     bool
}

// NewEngine restores the live conversation for key from st, or starts an
// empty one
func NewEngine(provider llm.Provider, st store.Store, key, systemPrompt string) (*Engine, error) {
	e := &Engine{
		provider:     provider,
		store:        st,
		key:          key,
		systemPrompt: systemPrompt,
	}

	raw, ok, err := st.Get(key)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &e.messages); err != nil {
			return nil, fmt.Errorf("decode conversation: %w", err)
		}
	}

	return e, nil
}

// Submit appends a user message and asks the service for a reply. The text
// must be non-blank unless an attachment is staged; a staged attachment is
// consumed either way. One attempt, no retry.
func (e *Engine) Submit(ctx context.Context, text string) error {
	e.mu.Lock()

	if e.awaiting {
		e.mu.Unlock()
		return ErrAwaitingResponse
	}

	content := text
	if strings.TrimSpace(content) == "" {
		if e.pending == nil {
			e.mu.Unlock()
			return ErrBlankMessage
		}
		content = fmt.Sprintf("[Attached: %s]", e.pending.Name)
	}

	e.messages = append(e.messages, models.NewUserMessage(content, e.pending))
	e.pending = nil
	e.awaiting = true
	if err := e.persistLocked(); err != nil {
		e.awaiting = false
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	return e.askAndAppend(ctx, content)
}

// RegenerateLast discards everything after the most recent user message
// and asks again with that message's content verbatim. With no user
// message in the conversation it is a no-op.
func (e *Engine) RegenerateLast(ctx context.Context) error {
	e.mu.Lock()

	if e.awaiting {
		e.mu.Unlock()
		return ErrAwaitingResponse
	}

	idx := -1
	for i := len(e.messages) - 1; i >= 0; i-- {
		if e.messages[i].Role == models.RoleUser {
			idx = i
			break
		}
	}
	if idx == -1 {
		e.mu.Unlock()
		return nil
	}

	content := e.messages[idx].Content
	e.messages = e.messages[:idx+1]
	e.awaiting = true
	if err := e.persistLocked(); err != nil {
		e.awaiting = false
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	return e.askAndAppend(ctx, content)
}

// EditAndResubmit truncates the conversation strictly before index,
// appends a new user message with newText, and asks for a fresh reply.
// The index must reference a user message and newText must be non-blank.
func (e *Engine) EditAndResubmit(ctx context.Context, index int, newText string) error {
	e.mu.Lock()

	if e.awaiting {
		e.mu.Unlock()
		return ErrAwaitingResponse
	}
	if strings.TrimSpace(newText) == "" {
		e.mu.Unlock()
		return ErrBlankMessage
	}
	if index < 0 || index >= len(e.messages) || e.messages[index].Role != models.RoleUser {
		e.mu.Unlock()
		return ErrNotUserMessage
	}

	e.messages = append(e.messages[:index], models.NewUserMessage(newText, nil))
	e.awaiting = true
	if err := e.persistLocked(); err != nil {
		e.awaiting = false
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	return e.askAndAppend(ctx, newText)
}

// askAndAppend performs the single ask attempt and appends the assistant
// reply, or the literal error marker when the call fails. The awaiting
// flag is cleared in either case.
func (e *Engine) askAndAppend(ctx context.Context, message string) error {
	reply, err := e.provider.Ask(ctx, message, e.systemPrompt)
	if err != nil {
		reply = ErrorReplyContent
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.messages = append(e.messages, models.NewAssistantMessage(reply))
	e.awaiting = false
	return e.persistLocked()
}

// ToggleReaction flips tag on the message at index and persists
func (e *Engine) ToggleReaction(index int, tag string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.messages) {
		return fmt.Errorf("message index %d out of range", index)
	}
	e.messages[index].ToggleReaction(tag)
	return e.persistLocked()
}

// Attach stages a file as the pending attachment for the next Submit
func (e *Engine) Attach(path string) error {
	att, err := models.NewAttachmentFromFile(path)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = att
	return nil
}

// AttachValue stages an already-built attachment
func (e *Engine) AttachValue(att *models.Attachment) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = att
}

// ClearAttachment discards any staged attachment
func (e *Engine) ClearAttachment() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = nil
}

// Pending returns the staged attachment, if any
func (e *Engine) Pending() *models.Attachment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// Awaiting reports whether an ask call is outstanding
func (e *Engine) Awaiting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.awaiting
}

// Snapshot returns a copy of the conversation's messages
func (e *Engine) Snapshot() []models.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return models.CloneMessages(e.messages)
}

// Len returns the number of messages in the conversation
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.messages)
}

// Reset clears the live conversation and persists the empty buffer
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.messages = nil
	return e.persistLocked()
}

// Replace swaps the live conversation for a copy of msgs and persists
func (e *Engine) Replace(msgs []models.Message) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.messages = models.CloneMessages(msgs)
	return e.persistLocked()
}

// persistLocked writes the full message sequence under the conversation
// key; callers hold e.mu
func (e *Engine) persistLocked() error {
	encoded, err := json.Marshal(e.messages)
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}
	if err := e.store.Set(e.key, string(encoded)); err != nil {
		return fmt.Errorf("persist conversation: %w", err)
	}
	return nil
}
