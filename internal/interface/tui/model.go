package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/askdeck/askdeck/internal/core/archive"
	"github.com/askdeck/askdeck/internal/core/chat"
	"github.com/askdeck/askdeck/internal/core/config"
	"github.com/askdeck/askdeck/internal/core/folder"
)

type viewMode int

const (
	chatView viewMode = iota
	historyView
	helpView
)

type Model struct {
	engine  *chat.Engine
	archive *archive.Archive
	folders *folder.Registry
	cfg     *config.Config

	mode     viewMode
	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model
	list     list.Model

	searchInput textinput.Model
	searching   bool

	width   int
	height  int
	waiting bool
	status  string
	err     error
}

func New(engine *chat.Engine, arch *archive.Archive, folders *folder.Registry, cfg *config.Config) Model {
	input := textinput.New()
	input.Placeholder = "Ask anything..."
	input.Focus()

	searchInput := textinput.New()
	searchInput.Placeholder = "Search conversations..."

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		engine:      engine,
		archive:     arch,
		folders:     folders,
		cfg:         cfg,
		mode:        chatView,
		input:       input,
		searchInput: searchInput,
		spin:        sp,
		viewport:    newChatViewport(engine.Snapshot(), 0, 0),
		list:        newSessionList(nil, folders.Folders(), 0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = newChatViewport(m.engine.Snapshot(), m.width, m.height)
		m.list = newSessionList(m.visibleSessions(), m.folders.Folders(), m.width, m.height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case chatView:
			return m.updateChat(msg)
		case historyView:
			return m.updateHistory(msg)
		case helpView:
			m.mode = chatView
			return m, nil
		}

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case askDoneMsg:
		m.waiting = false
		m.viewport = newChatViewport(m.engine.Snapshot(), m.width, m.height)
		m.viewport.GotoBottom()
		return m, nil

	case archivedMsg:
		if msg.session != nil {
			m.status = "Archived: " + msg.session.Title
		} else {
			m.status = "Conversation was empty; nothing archived."
		}
		m.viewport = newChatViewport(m.engine.Snapshot(), m.width, m.height)
		m.list = newSessionList(m.visibleSessions(), m.folders.Folders(), m.width, m.height)
		return m, nil

	case sessionsChangedMsg:
		m.list = newSessionList(m.visibleSessions(), m.folders.Folders(), m.width, m.height)
		m.status = msg.status
		return m, nil

	case errMsg:
		m.waiting = false
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress ctrl+c to quit"
	}

	switch m.mode {
	case chatView:
		return m.viewChat()
	case historyView:
		return m.viewHistory()
	case helpView:
		return m.viewHelp()
	}

	return ""
}
