// Package archive manages the persisted collection of archived sessions:
// creation from the live conversation, rename, pin, delete, folder
// assignment, reload, and plain-text export.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/askdeck/askdeck/internal/core/models"
	"github.com/askdeck/askdeck/internal/core/store"
)

// ErrSessionNotFound is returned when a session id does not resolve
var ErrSessionNotFound = errors.New("session not found")

// Conversation is the live message buffer the archive snapshots and
// clears. Satisfied by *chat.Engine.
type Conversation interface {
	Snapshot() []models.Message
	Reset() error
	Replace(msgs []models.Message) error
}

// Archive holds the ordered session list, most-recently-archived first
type Archive struct {
	mu       sync.Mutex
	store    store.Store
	key      string
	sessions []*models.Session

	now   func() time.Time
	newID func() string
}

// New restores the session archive for key from st
func New(st store.Store, key string) (*Archive, error) {
	a := &Archive{
		store: st,
		key:   key,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}

	raw, ok, err := st.Get(key)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &a.sessions); err != nil {
			return nil, fmt.Errorf("decode sessions: %w", err)
		}
	}

	return a, nil
}

// ArchiveCurrent snapshots conv into a new session and clears the live
// conversation. An empty conversation produces no session; the buffer is
// reset either way. The new session is prepended, unpinned, in the
// default folder.
func (a *Archive) ArchiveCurrent(conv Conversation) (*models.Session, error) {
	msgs := conv.Snapshot()
	if len(msgs) == 0 {
		if err := conv.Reset(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	now := a.now()
	session := &models.Session{
		ID:               a.newID(),
		Title:            models.DeriveTitle(msgs),
		Messages:         msgs,
		CreatedAt:        now,
		CreatedAtDisplay: now.Format("3:04 PM"),
		Pinned:           false,
		FolderID:         models.DefaultFolderID,
	}

	a.mu.Lock()
	a.sessions = append([]*models.Session{session}, a.sessions...)
	err := a.persistLocked()
	a.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := conv.Reset(); err != nil {
		return nil, err
	}
	return session, nil
}

// Rename overwrites a session's title; blank titles are ignored
func (a *Archive) Rename(sessionID, newTitle string) error {
	if strings.TrimSpace(newTitle) == "" {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.findLocked(sessionID)
	if s == nil {
		return ErrSessionNotFound
	}
	s.Title = newTitle
	return a.persistLocked()
}

// TogglePin flips a session's pinned flag
func (a *Archive) TogglePin(sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.findLocked(sessionID)
	if s == nil {
		return ErrSessionNotFound
	}
	s.Pinned = !s.Pinned
	return a.persistLocked()
}

// Delete removes a session unconditionally
func (a *Archive) Delete(sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, s := range a.sessions {
		if s.ID == sessionID {
			a.sessions = append(a.sessions[:i], a.sessions[i+1:]...)
			return a.persistLocked()
		}
	}
	return ErrSessionNotFound
}

// MoveToFolder reassigns a session's folder. Folder existence is enforced
// by the folder registry at the interface boundary.
func (a *Archive) MoveToFolder(sessionID, folderID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.findLocked(sessionID)
	if s == nil {
		return ErrSessionNotFound
	}
	s.FolderID = folderID
	return a.persistLocked()
}

// ReassignFolder moves every session in fromFolder to toFolder in one
// persisted step; used by the folder registry's cascade on delete
func (a *Archive) ReassignFolder(fromFolder, toFolder string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	changed := false
	for _, s := range a.sessions {
		if s.FolderID == fromFolder {
			s.FolderID = toFolder
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return a.persistLocked()
}

// LoadIntoConversation replaces the live conversation with a copy of the
// session's messages; the session itself is untouched
func (a *Archive) LoadIntoConversation(sessionID string, conv Conversation) error {
	a.mu.Lock()
	s := a.findLocked(sessionID)
	a.mu.Unlock()

	if s == nil {
		return ErrSessionNotFound
	}
	return conv.Replace(s.Messages)
}

// Get returns the session with the given id
func (a *Archive) Get(sessionID string) (*models.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.findLocked(sessionID)
	if s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Sessions returns the archive's session list, most-recently-archived
// first
func (a *Archive) Sessions() []*models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]*models.Session, len(a.sessions))
	copy(out, a.sessions)
	return out
}

func (a *Archive) findLocked(sessionID string) *models.Session {
	for _, s := range a.sessions {
		if s.ID == sessionID {
			return s
		}
	}
	return nil
}

func (a *Archive) persistLocked() error {
	encoded, err := json.Marshal(a.sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := a.store.Set(a.key, string(encoded)); err != nil {
		return fmt.Errorf("persist sessions: %w", err)
	}
	return nil
}
