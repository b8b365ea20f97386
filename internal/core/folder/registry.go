// Package folder manages the named grouping buckets sessions are filed
// under. The default folder always exists and deleting a folder cascades
// its sessions back to it.
package folder

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/askdeck/askdeck/internal/core/models"
	"github.com/askdeck/askdeck/internal/core/store"
)

// Reassigner moves sessions between folders; satisfied by *archive.Archive
type Reassigner interface {
	ReassignFolder(fromFolder, toFolder string) error
}

// Registry holds the ordered folder list for one user
type Registry struct {
	mu      sync.Mutex
	store   store.Store
	key     string
	folders []*models.Folder

	newID func() string
}

// New restores the folder registry for key from st, seeding the default
// folder on first use
func New(st store.Store, key string) (*Registry, error) {
	r := &Registry{
		store: st,
		key:   key,
		newID: func() string { return uuid.New().String() },
	}

	raw, ok, err := st.Get(key)
	if err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &r.folders); err != nil {
			return nil, fmt.Errorf("decode folders: %w", err)
		}
	}

	if !r.existsLocked(models.DefaultFolderID) {
		r.folders = append([]*models.Folder{{
			ID:   models.DefaultFolderID,
			Name: models.DefaultFolderName,
		}}, r.folders...)
		if err := r.persistLocked(); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Create adds a folder with a fresh id; blank names are ignored
func (r *Registry) Create(name string) (*models.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f := &models.Folder{ID: r.newID(), Name: name}
	r.folders = append(r.folders, f)
	if err := r.persistLocked(); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes a folder and reassigns every session pointing at it to
// the default folder. Deleting the default folder is a no-op.
func (r *Registry) Delete(folderID string, sessions Reassigner) error {
	if folderID == models.DefaultFolderID {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, f := range r.folders {
		if f.ID == folderID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	// Cascade before removal so no session is ever left dangling
	if err := sessions.ReassignFolder(folderID, models.DefaultFolderID); err != nil {
		return err
	}

	r.folders = append(r.folders[:idx], r.folders[idx+1:]...)
	return r.persistLocked()
}

// Exists reports whether a folder id resolves
func (r *Registry) Exists(folderID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.existsLocked(folderID)
}

// Folders returns the registry's folders in their display order
func (r *Registry) Folders() []*models.Folder {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Folder, len(r.folders))
	copy(out, r.folders)
	return out
}

func (r *Registry) existsLocked(folderID string) bool {
	for _, f := range r.folders {
		if f.ID == folderID {
			return true
		}
	}
	return false
}

func (r *Registry) persistLocked() error {
	encoded, err := json.Marshal(r.folders)
	if err != nil {
		return fmt.Errorf("encode folders: %w", err)
	}
	if err := r.store.Set(r.key, string(encoded)); err != nil {
		return fmt.Errorf("persist folders: %w", err)
	}
	return nil
}
