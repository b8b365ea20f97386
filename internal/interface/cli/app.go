package cli

import (
	"fmt"

	"github.com/askdeck/askdeck/internal/core/archive"
	"github.com/askdeck/askdeck/internal/core/chat"
	"github.com/askdeck/askdeck/internal/core/config"
	"github.com/askdeck/askdeck/internal/core/folder"
	"github.com/askdeck/askdeck/internal/core/llm"
	"github.com/askdeck/askdeck/internal/core/store"
)

// app wires the engine, archive, and registry over one open store for the
// duration of a command
type app struct {
	cfg     *config.Config
	store   store.Store
	keys    store.Keys
	engine  *chat.Engine
	archive *archive.Archive
	folders *folder.Registry
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	user := cfg.User
	if userFlag != "" {
		user = userFlag
	}
	keys := store.KeysFor(user)

	st, err := store.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	provider := llm.NewHTTPProvider(cfg.ServerURL, cfg.AskTimeout)

	engine, err := chat.NewEngine(provider, st, keys.Conversation, cfg.SystemPrompt)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	arch, err := archive.New(st, keys.Sessions)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	folders, err := folder.New(st, keys.Folders)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		store:   st,
		keys:    keys,
		engine:  engine,
		archive: arch,
		folders: folders,
	}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
}
