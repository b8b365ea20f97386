package models

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "ai"
)

// Message is a single entry in a conversation. Once appended it is
// immutable except for Reactions, which are toggled per tag.
type Message struct {
	Role       Role            `json:"role"`
	Content    string          `json:"content"`
	Attachment *Attachment     `json:"attachment,omitempty"`
	Reactions  map[string]bool `json:"reactions,omitempty"`
}

// NewUserMessage creates a user message with an empty reaction set
func NewUserMessage(content string, attachment *Attachment) Message {
	return Message{
		Role:       RoleUser,
		Content:    content,
		Attachment: attachment,
		Reactions:  map[string]bool{},
	}
}

// NewAssistantMessage creates an assistant message with an empty reaction set
func NewAssistantMessage(content string) Message {
	return Message{
		Role:      RoleAssistant,
		Content:   content,
		Reactions: map[string]bool{},
	}
}

// ToggleReaction flips membership of tag in the reaction set. Tags are
// independent; two conflicting tags may both be active at once.
func (m *Message) ToggleReaction(tag string) {
	if m.Reactions == nil {
		m.Reactions = map[string]bool{}
	}
	if m.Reactions[tag] {
		delete(m.Reactions, tag)
	} else {
		m.Reactions[tag] = true
	}
}

// HasReaction reports whether tag is currently active on the message
func (m *Message) HasReaction(tag string) bool {
	return m.Reactions[tag]
}

// CloneMessages copies a message sequence deeply enough that archived
// sessions are unaffected by later reaction toggles on the live
// conversation: the slice and each reaction map are copied.
func CloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	for i := range out {
		if out[i].Reactions != nil {
			reactions := make(map[string]bool, len(out[i].Reactions))
			for tag, on := range out[i].Reactions {
				reactions[tag] = on
			}
			out[i].Reactions = reactions
		}
	}
	return out
}
