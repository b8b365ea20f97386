package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/askdeck/askdeck/internal/core/archive"
	"github.com/askdeck/askdeck/internal/core/models"
	"github.com/askdeck/askdeck/internal/core/search"
)

type sessionItem struct {
	session    *models.Session
	folderName string
}

func (i sessionItem) Title() string {
	if i.session.Pinned {
		return pinnedStyle.Render("📌 ") + i.session.Title
	}
	return i.session.Title
}

func (i sessionItem) Description() string {
	return fmt.Sprintf("%s • %d messages • %s",
		i.folderName, len(i.session.Messages), humanize.Time(i.session.CreatedAt))
}

func (i sessionItem) FilterValue() string {
	return i.session.Title
}

func newSessionList(sessions []*models.Session, folders []*models.Folder, width, height int) list.Model {
	names := make(map[string]string, len(folders))
	for _, f := range folders {
		names[f.ID] = f.Name
	}

	items := make([]list.Item, 0, len(sessions))
	for _, s := range sessions {
		name := names[s.FolderID]
		if name == "" {
			name = names[models.DefaultFolderID]
		}
		items = append(items, sessionItem{session: s, folderName: name})
	}

	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	l := list.New(items, list.NewDefaultDelegate(), width, max(5, height-4))
	l.Title = "Conversation History"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

// visibleSessions applies the history search box, pinned first.
func (m Model) visibleSessions() []*models.Session {
	return search.Search(m.archive.Sessions(), m.searchInput.Value())
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			if msg.String() == "esc" {
				m.searchInput.SetValue("")
			}
			m.searching = false
			m.searchInput.Blur()
			m.input.Focus()
			m.list = newSessionList(m.visibleSessions(), m.folders.Folders(), m.width, m.height)
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.list = newSessionList(m.visibleSessions(), m.folders.Folders(), m.width, m.height)
		return m, cmd
	}

	switch msg.String() {
	case "tab", "esc":
		m.mode = chatView
		return m, nil

	case "/":
		m.searching = true
		m.input.Blur()
		return m, m.searchInput.Focus()

	case "enter":
		if item, ok := m.list.SelectedItem().(sessionItem); ok {
			if err := m.archive.LoadIntoConversation(item.session.ID, m.engine); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.mode = chatView
			m.viewport = newChatViewport(m.engine.Snapshot(), m.width, m.height)
			m.status = "Loaded: " + item.session.Title
		}
		return m, nil

	case "p":
		if item, ok := m.list.SelectedItem().(sessionItem); ok {
			if err := m.archive.TogglePin(item.session.ID); err != nil {
				m.status = err.Error()
				return m, nil
			}
			return m, func() tea.Msg { return sessionsChangedMsg{} }
		}
		return m, nil

	case "d":
		if item, ok := m.list.SelectedItem().(sessionItem); ok {
			if err := m.archive.Delete(item.session.ID); err != nil {
				m.status = err.Error()
				return m, nil
			}
			return m, func() tea.Msg {
				return sessionsChangedMsg{status: "Deleted: " + item.session.Title}
			}
		}
		return m, nil

	case "e":
		if item, ok := m.list.SelectedItem().(sessionItem); ok {
			return m, exportCmd(m.archive, item.session, m.cfg.ExportTemplate)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func exportCmd(arch *archive.Archive, session *models.Session, template string) tea.Cmd {
	return func() tea.Msg {
		text, err := arch.ExportText(session.ID, template)
		if err != nil {
			return errMsg{err}
		}
		path := filepath.Join(".", archive.ExportFilename(session.Title))
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return errMsg{err}
		}
		return sessionsChangedMsg{status: "Exported to " + path}
	}
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	if m.searching {
		b.WriteString(m.searchInput.View())
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	} else {
		b.WriteString(helpStyle.Render("enter: resume • p: pin • d: delete • e: export • /: search • tab: back"))
	}
	return b.String()
}
