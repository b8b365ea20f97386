package models

import (
	"encoding/json"
	"testing"
)

func TestToggleReaction(t *testing.T) {
	m := NewAssistantMessage("reply")

	m.ToggleReaction("👍")
	if !m.HasReaction("👍") {
		t.Error("reaction not set after first toggle")
	}

	m.ToggleReaction("👍")
	if m.HasReaction("👍") {
		t.Error("reaction still set after second toggle")
	}
	if len(m.Reactions) != 0 {
		t.Errorf("Reactions = %v after toggle-off, want empty", m.Reactions)
	}

	m.ToggleReaction("👍")
	m.ToggleReaction("👎")
	if !m.HasReaction("👍") || !m.HasReaction("👎") {
		t.Error("independent reactions interfere with each other")
	}
}

func TestCloneMessagesIsolation(t *testing.T) {
	original := []Message{
		NewUserMessage("hello", &Attachment{Name: "a.txt"}),
		NewAssistantMessage("reply"),
	}
	original[1].ToggleReaction("👍")

	clone := CloneMessages(original)

	clone[0].Content = "changed"
	clone[1].ToggleReaction("👍")
	clone[1].ToggleReaction("👎")

	if original[0].Content != "hello" {
		t.Error("clone shares message storage with original")
	}
	if !original[1].HasReaction("👍") {
		t.Error("clone shares reaction map with original")
	}
	if original[1].HasReaction("👎") {
		t.Error("reaction added to clone leaked into original")
	}
}

func TestMessageJSONShape(t *testing.T) {
	m := NewUserMessage("hi", &Attachment{Name: "pic.png", MimeType: "image/png", Preview: "data:image/png;base64,xx"})

	encoded, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["role"] != "user" {
		t.Errorf("role = %v, want user", decoded["role"])
	}
	att, ok := decoded["attachment"].(map[string]interface{})
	if !ok {
		t.Fatalf("attachment missing: %v", decoded)
	}
	if att["type"] != "image/png" {
		t.Errorf("attachment type = %v, want image/png", att["type"])
	}
}
