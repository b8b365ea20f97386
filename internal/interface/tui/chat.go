package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/askdeck/askdeck/internal/core/models"
)

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.input.Value()
		if strings.TrimSpace(text) == "" && m.engine.Pending() == nil {
			return m, nil
		}
		if m.engine.Awaiting() {
			return m, nil
		}
		m.input.SetValue("")
		m.waiting = true
		m.status = ""
		return m, tea.Batch(submitCmd(m.engine, text), m.spin.Tick, refreshAfter(&m))

	case "ctrl+r":
		if m.engine.Awaiting() || m.engine.Len() == 0 {
			return m, nil
		}
		m.waiting = true
		m.status = ""
		return m, tea.Batch(regenerateCmd(m.engine), m.spin.Tick, refreshAfter(&m))

	case "ctrl+n":
		if m.engine.Awaiting() {
			return m, nil
		}
		return m, archiveCmd(m.archive, m.engine)

	case "ctrl+y":
		if reply := lastAssistantContent(m.engine.Snapshot()); reply != "" {
			if err := clipboard.WriteAll(reply); err != nil {
				m.status = "Copy failed: " + err.Error()
			} else {
				m.status = "Copied last reply to clipboard."
			}
		}
		return m, nil

	case "ctrl+g":
		m.toggleLastReaction("👍")
		return m, nil

	case "ctrl+b":
		m.toggleLastReaction("👎")
		return m, nil

	case "tab":
		m.mode = historyView
		m.list = newSessionList(m.visibleSessions(), m.folders.Folders(), m.width, m.height)
		return m, nil

	case "ctrl+h":
		m.mode = helpView
		return m, nil

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refreshAfter rebuilds the transcript immediately so the just-sent user
// message shows while the reply is still in flight.
func refreshAfter(m *Model) tea.Cmd {
	m.viewport = newChatViewport(m.engine.Snapshot(), m.width, m.height)
	m.viewport.GotoBottom()
	return nil
}

func (m *Model) toggleLastReaction(emoji string) {
	messages := m.engine.Snapshot()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.RoleAssistant {
			if err := m.engine.ToggleReaction(i, emoji); err != nil {
				m.status = err.Error()
			}
			m.viewport = newChatViewport(m.engine.Snapshot(), m.width, m.height)
			m.viewport.GotoBottom()
			return
		}
	}
}

func lastAssistantContent(messages []models.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.RoleAssistant {
			return messages[i].Content
		}
	}
	return ""
}

func (m Model) viewChat() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("askdeck"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(m.spin.View() + " Thinking...\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}

	if pending := m.engine.Pending(); pending != nil {
		b.WriteString(attachmentStyle.Render("📎 "+pending.Name) + "\n")
	}

	b.WriteString(inputBoxStyle.Width(max(20, m.width-4)).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: send • ctrl+r: regenerate • ctrl+n: new chat • tab: history • ctrl+h: help • ctrl+c: quit"))

	return b.String()
}

func newChatViewport(messages []models.Message, width, height int) viewport.Model {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	vp := viewport.New(width, max(5, height-8))
	vp.SetContent(renderTranscript(messages, width))
	vp.GotoBottom()
	return vp
}

func renderTranscript(messages []models.Message, width int) string {
	if len(messages) == 0 {
		return helpStyle.Render("No messages yet. Type below to start the conversation.")
	}

	wrap := lipgloss.NewStyle().Width(max(20, width-2))
	var parts []string
	for _, msg := range messages {
		var b strings.Builder
		if msg.Role == models.RoleUser {
			b.WriteString(userLabelStyle.Render("You"))
		} else {
			b.WriteString(assistantLabelStyle.Render("AI"))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(msg.Content))
		if msg.Attachment != nil {
			b.WriteString("\n" + attachmentStyle.Render("📎 "+msg.Attachment.Name))
		}
		if tags := reactionTags(msg); tags != "" {
			b.WriteString("\n" + reactionStyle.Render(tags))
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n\n")
}

func reactionTags(msg models.Message) string {
	var tags []string
	for _, emoji := range []string{"👍", "👎"} {
		if msg.HasReaction(emoji) {
			tags = append(tags, emoji)
		}
	}
	return strings.Join(tags, " ")
}

func (m Model) viewHelp() string {
	return fmt.Sprintf(`%s

  enter      send message
  ctrl+r     regenerate last reply
  ctrl+n     archive conversation and start fresh
  ctrl+y     copy last reply to clipboard
  ctrl+g     toggle 👍 on last reply
  ctrl+b     toggle 👎 on last reply
  tab        conversation history
  ctrl+c     quit

%s`,
		titleStyle.Render("askdeck — keys"),
		helpStyle.Render("press any key to return"))
}
