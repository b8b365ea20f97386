package archive

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cbroglie/mustache"

	"github.com/askdeck/askdeck/internal/core/models"
)

// DefaultExportHeader is the mustache template for the transcript header.
// A custom template in the config directory overrides it.
const DefaultExportHeader = `Chat: {{title}}
Exported: {{exported}}`

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ExportText renders a deterministic plain-text transcript of a session:
// the templated header followed by each message as [You]: or [AI]: lines,
// double-newline separated
func (a *Archive) ExportText(sessionID, headerTemplate string) (string, error) {
	s, err := a.Get(sessionID)
	if err != nil {
		return "", err
	}
	if headerTemplate == "" {
		headerTemplate = DefaultExportHeader
	}

	header, err := mustache.Render(headerTemplate, map[string]string{
		"title":    s.Title,
		"exported": time.Now().Format("1/2/2006, 3:04:05 PM"),
	})
	if err != nil {
		return "", fmt.Errorf("render export header: %w", err)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	for i, m := range s.Messages {
		label := "[AI]"
		if m.Role == models.RoleUser {
			label = "[You]"
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}

	return b.String(), nil
}

// ExportFilename builds the download name for a session transcript: the
// title with every non-alphanumeric character replaced by an underscore,
// plus the .txt extension
func ExportFilename(title string) string {
	return filenameSanitizer.ReplaceAllString(title, "_") + ".txt"
}
