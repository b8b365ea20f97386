package search

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Filters represents parsed filters from a search query
type Filters struct {
	Query     string    // The residual search text
	After     time.Time // Only sessions created after this time
	Before    time.Time // Only sessions created before this time
	HasAfter  bool
	HasBefore bool
}

// ParseQuery extracts after:/before: date filters from a query string.
// Dates may be natural language ("yesterday", "last week") or standard
// formats; unparseable filter values are dropped.
func ParseQuery(query string) Filters {
	filters := Filters{}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	var queryParts []string
	for _, token := range strings.Fields(query) {
		if strings.HasPrefix(token, "after:") {
			if parsed := parseDate(w, strings.TrimPrefix(token, "after:")); parsed != nil {
				filters.After = *parsed
				filters.HasAfter = true
			}
			continue
		}

		if strings.HasPrefix(token, "before:") {
			if parsed := parseDate(w, strings.TrimPrefix(token, "before:")); parsed != nil {
				filters.Before = *parsed
				filters.HasBefore = true
			}
			continue
		}

		queryParts = append(queryParts, token)
	}

	filters.Query = strings.Join(queryParts, " ")
	return filters
}

func parseDate(w *when.Parser, dateStr string) *time.Time {
	// Natural language first
	result, err := w.Parse(dateStr, time.Now())
	if err == nil && result != nil {
		return &result.Time
	}

	formats := []string{
		"2006-01-02",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return &t
		}
	}

	return nil
}
