// Package mcp exposes the session archive over the Model Context
// Protocol so other tools can search and retrieve conversations.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/askdeck/askdeck/internal/core/archive"
	"github.com/askdeck/askdeck/internal/core/folder"
	"github.com/askdeck/askdeck/internal/core/models"
	"github.com/askdeck/askdeck/internal/core/search"
)

// SearchSessionsArgs defines arguments for the search_sessions tool
type SearchSessionsArgs struct {
	Query      string `json:"query"`
	Limit      int    `json:"limit,omitempty"`
	Folder     string `json:"folder,omitempty"`
	AfterDate  string `json:"after_date,omitempty"`
	BeforeDate string `json:"before_date,omitempty"`
}

// GetSessionArgs defines arguments for the get_session tool
type GetSessionArgs struct {
	SessionID string `json:"session_id"`
}

// ListRecentSessionsArgs defines arguments for the list_recent_sessions tool
type ListRecentSessionsArgs struct {
	Limit  int    `json:"limit,omitempty"`
	Folder string `json:"folder,omitempty"`
}

// SessionSummary represents a session in search and list results
type SessionSummary struct {
	SessionID    string `json:"session_id"`
	Title        string `json:"title"`
	Folder       string `json:"folder"`
	CreatedAt    string `json:"created_at"`
	Pinned       bool   `json:"pinned"`
	MessageCount int    `json:"message_count"`
}

// SessionDetail represents a full session transcript
type SessionDetail struct {
	SessionSummary
	Messages []MessageDetail `json:"messages"`
}

// MessageDetail represents a single message in a session
type MessageDetail struct {
	Role       string   `json:"role"`
	Content    string   `json:"content"`
	Attachment string   `json:"attachment,omitempty"`
	Reactions  []string `json:"reactions,omitempty"`
}

// StartServer serves the archive over stdio until the client disconnects.
func StartServer(arch *archive.Archive, folders *folder.Registry) error {
	s := server.NewMCPServer(
		"askdeck",
		"1.0.0",
	)

	searchTool := mcp.NewTool("search_sessions",
		mcp.WithDescription("Search archived chat sessions by title and message content. Pinned sessions sort first. Supports date and folder filtering."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term to match against session titles and message content")),
		mcp.WithNumber("limit",
			mcp.Description("Max number of sessions to return (default: 10)")),
		mcp.WithString("folder",
			mcp.Description("Filter by folder ID")),
		mcp.WithString("after_date",
			mcp.Description("Only sessions created after this date (e.g. '2025-01-01')")),
		mcp.WithString("before_date",
			mcp.Description("Only sessions created before this date")),
	)
	s.AddTool(searchTool, makeSearchSessionsHandler(arch, folders))

	getTool := mcp.NewTool("get_session",
		mcp.WithDescription("Retrieve the full transcript of an archived session by ID"),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session UUID to retrieve")),
	)
	s.AddTool(getTool, makeGetSessionHandler(arch, folders))

	listTool := mcp.NewTool("list_recent_sessions",
		mcp.WithDescription("List recent archived sessions, most recent first, optionally filtered by folder"),
		mcp.WithNumber("limit",
			mcp.Description("Max sessions to return (default: 20)")),
		mcp.WithString("folder",
			mcp.Description("Filter by folder ID")),
	)
	s.AddTool(listTool, makeListRecentSessionsHandler(arch, folders))

	return server.ServeStdio(s)
}

func makeSearchSessionsHandler(arch *archive.Archive, folders *folder.Registry) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SearchSessionsArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = 10
		}

		filters := search.ParseQuery(args.Query)
		if args.AfterDate != "" {
			t, err := parseToolDate(args.AfterDate)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid after_date: %v", err)), nil
			}
			filters.After = t
			filters.HasAfter = true
		}
		if args.BeforeDate != "" {
			t, err := parseToolDate(args.BeforeDate)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid before_date: %v", err)), nil
			}
			filters.Before = t
			filters.HasBefore = true
		}

		matched := search.SearchWithFilters(arch.Sessions(), filters)

		var results []SessionSummary
		for _, s := range matched {
			if args.Folder != "" && s.FolderID != args.Folder {
				continue
			}
			results = append(results, summarize(s, folders))
			if len(results) >= limit {
				break
			}
		}

		return marshalResult(map[string]interface{}{"sessions": results})
	}
}

func makeGetSessionHandler(arch *archive.Archive, folders *folder.Registry) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetSessionArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.SessionID == "" {
			return mcp.NewToolResultError("session_id is required"), nil
		}

		s, err := arch.Get(args.SessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("session not found: %v", err)), nil
		}

		detail := SessionDetail{
			SessionSummary: summarize(s, folders),
			Messages:       make([]MessageDetail, 0, len(s.Messages)),
		}
		for _, m := range s.Messages {
			md := MessageDetail{
				Role:    string(m.Role),
				Content: m.Content,
			}
			if m.Attachment != nil {
				md.Attachment = m.Attachment.Name
			}
			for emoji := range m.Reactions {
				md.Reactions = append(md.Reactions, emoji)
			}
			detail.Messages = append(detail.Messages, md)
		}

		return marshalResult(detail)
	}
}

func makeListRecentSessionsHandler(arch *archive.Archive, folders *folder.Registry) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListRecentSessionsArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = 20
		}

		var results []SessionSummary
		for _, s := range arch.Sessions() {
			if args.Folder != "" && s.FolderID != args.Folder {
				continue
			}
			results = append(results, summarize(s, folders))
			if len(results) >= limit {
				break
			}
		}

		return marshalResult(map[string]interface{}{"sessions": results})
	}
}

func summarize(s *models.Session, folders *folder.Registry) SessionSummary {
	folderName := s.FolderID
	for _, f := range folders.Folders() {
		if f.ID == s.FolderID {
			folderName = f.Name
			break
		}
	}
	return SessionSummary{
		SessionID:    s.ID,
		Title:        s.Title,
		Folder:       folderName,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		Pinned:       s.Pinned,
		MessageCount: len(s.Messages),
	}
}

func parseToolDate(v string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}

func marshalResult(v interface{}) (*mcp.CallToolResult, error) {
	resultJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}
