package models

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxAttachmentSize caps files we are willing to read for a preview
const maxAttachmentSize = 20 * 1024 * 1024

// Attachment is a named file reference carried by a message. Preview is a
// data URL and is populated only for image mime types. An attachment is a
// value; once attached to a message it is never mutated.
type Attachment struct {
	Name     string `json:"name"`
	MimeType string `json:"type"`
	Preview  string `json:"preview,omitempty"`
}

// IsImage reports whether the attachment carries an image mime type
func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.MimeType, "image/")
}

// NewAttachmentFromFile reads a local file and builds an attachment. Image
// files get a base64 data-URL preview; everything else is name-and-type
// only.
func NewAttachmentFromFile(path string) (*Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat attachment: %w", err)
	}
	if info.Size() > maxAttachmentSize {
		return nil, fmt.Errorf("attachment exceeds %dMB limit", maxAttachmentSize/(1024*1024))
	}

	mimeType := mimeTypeFromExtension(filepath.Ext(path))
	att := &Attachment{
		Name:     info.Name(),
		MimeType: mimeType,
	}

	if att.IsImage() {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read attachment: %w", err)
		}
		att.Preview = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content)
	}

	return att, nil
}

func mimeTypeFromExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".txt", ".md":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
