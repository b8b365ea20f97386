package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/askdeck/askdeck/internal/core/archive"
	"github.com/askdeck/askdeck/internal/core/chat"
	"github.com/askdeck/askdeck/internal/core/models"
)

type askDoneMsg struct{}

type archivedMsg struct {
	session *models.Session
}

type sessionsChangedMsg struct {
	status string
}

type errMsg struct {
	err error
}

func submitCmd(engine *chat.Engine, text string) tea.Cmd {
	return func() tea.Msg {
		err := engine.Submit(context.Background(), text)
		if err != nil && !errors.Is(err, chat.ErrBlankMessage) && !errors.Is(err, chat.ErrAwaitingResponse) {
			return errMsg{err}
		}
		return askDoneMsg{}
	}
}

func regenerateCmd(engine *chat.Engine) tea.Cmd {
	return func() tea.Msg {
		err := engine.RegenerateLast(context.Background())
		if err != nil && !errors.Is(err, chat.ErrAwaitingResponse) {
			return errMsg{err}
		}
		return askDoneMsg{}
	}
}

func archiveCmd(arch *archive.Archive, engine *chat.Engine) tea.Cmd {
	return func() tea.Msg {
		session, err := arch.ArchiveCurrent(engine)
		if err != nil {
			return errMsg{err}
		}
		return archivedMsg{session: session}
	}
}
