package models

import (
	"errors"
	"time"
)

// DefaultFolderID is the distinguished folder every archive starts with.
// It always exists, is never deletable, and is the fallback target when a
// folder is removed.
const DefaultFolderID = "default"

// DefaultFolderName is the display name of the default folder
const DefaultFolderName = "General"

// maxTitleLen is how much of the first user message becomes the session title
const maxTitleLen = 40

// DefaultSessionTitle is used when a conversation has no user message
const DefaultSessionTitle = "New Chat"

// Session is an archived, named snapshot of a past conversation
type Session struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Messages         []Message `json:"messages"`
	CreatedAt        time.Time `json:"createdAt"`
	CreatedAtDisplay string    `json:"time"`
	Pinned           bool      `json:"pinned"`
	FolderID         string    `json:"folder"`
}

// Folder is a named grouping bucket for sessions
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Validate checks that the session has required fields
func (s *Session) Validate() error {
	if s.ID == "" {
		return errors.New("session id is required")
	}
	if s.FolderID == "" {
		return errors.New("session folder id is required")
	}
	return nil
}

// DeriveTitle builds a session title from a conversation: the first user
// message's content truncated to 40 characters with a trailing ellipsis
// marker, or "New Chat" when no user message exists.
func DeriveTitle(msgs []Message) string {
	for _, m := range msgs {
		if m.Role != RoleUser {
			continue
		}
		if r := []rune(m.Content); len(r) > maxTitleLen {
			return string(r[:maxTitleLen]) + "..."
		}
		return m.Content
	}
	return DefaultSessionTitle
}
