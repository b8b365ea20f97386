// Package search is the read-side view over the session archive: substring
// filtering, pinned-first stable sorting, and folder grouping. It holds no
// state and is recomputed per request.
package search

import (
	"sort"
	"strings"

	"github.com/askdeck/askdeck/internal/core/models"
)

// Filter retains sessions whose title or any message content contains the
// case-insensitive query. A blank query retains everything.
func Filter(sessions []*models.Session, query string) []*models.Session {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]*models.Session, len(sessions))
		copy(out, sessions)
		return out
	}

	q := strings.ToLower(query)
	var out []*models.Session
	for _, s := range sessions {
		if matches(s, q) {
			out = append(out, s)
		}
	}
	return out
}

func matches(s *models.Session, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(s.Title), lowerQuery) {
		return true
	}
	for _, m := range s.Messages {
		if strings.Contains(strings.ToLower(m.Content), lowerQuery) {
			return true
		}
	}
	return false
}

// SortPinnedFirst stably sorts sessions pinned-first, preserving the
// archive's most-recently-archived-first order within each group. The
// input slice is sorted in place and returned.
func SortPinnedFirst(sessions []*models.Session) []*models.Session {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Pinned && !sessions[j].Pinned
	})
	return sessions
}

// Search filters sessions by query and sorts the result pinned-first
func Search(sessions []*models.Session, query string) []*models.Session {
	filters := ParseQuery(query)
	return SearchWithFilters(sessions, filters)
}

// SearchWithFilters applies parsed date filters and the residual text
// query, then sorts pinned-first
func SearchWithFilters(sessions []*models.Session, filters Filters) []*models.Session {
	var windowed []*models.Session
	for _, s := range sessions {
		if filters.HasAfter && s.CreatedAt.Before(filters.After) {
			continue
		}
		if filters.HasBefore && s.CreatedAt.After(filters.Before) {
			continue
		}
		windowed = append(windowed, s)
	}
	return SortPinnedFirst(Filter(windowed, filters.Query))
}

// FolderGroup is one folder's slice of a filtered, sorted result
type FolderGroup struct {
	Folder   *models.Folder
	Sessions []*models.Session
}

// GroupByFolder partitions sessions by folder in the registry's own
// ordering; folders with no matching sessions are omitted
func GroupByFolder(sessions []*models.Session, folders []*models.Folder) []FolderGroup {
	var groups []FolderGroup
	for _, f := range folders {
		var members []*models.Session
		for _, s := range sessions {
			folderID := s.FolderID
			if folderID == "" {
				folderID = models.DefaultFolderID
			}
			if folderID == f.ID {
				members = append(members, s)
			}
		}
		if len(members) == 0 {
			continue
		}
		groups = append(groups, FolderGroup{Folder: f, Sessions: members})
	}
	return groups
}
