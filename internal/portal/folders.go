package portal

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ravinder2932/Media-Management/internal/db"
)

// FolderService maintains the folder forest plus the navigation cursors
// (current folder and current type view). Cursors are plain in-memory UI
// state and are never persisted to the store.
type FolderService struct {
	portal *Portal

	mu            sync.RWMutex
	currentFolder *string
	currentView   *string
}

// Contents lists a folder's direct file ids and subfolder ids.
type Contents struct {
	FileIDs      []string
	SubfolderIDs []string
}

// Create adds a folder under parentID (nil = root). Names are trimmed,
// must be non-empty, and must be unique among siblings case-insensitively.
// Uniqueness is checked at creation only; there is no rename operation.
func (s *FolderService) Create(name string, parentID *string, createdBy string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	dup, err := s.portal.store.SiblingNameExists(parentID, name)
	if err != nil {
		return "", err
	}
	if dup {
		return "", ErrDuplicateSibling
	}

	f := db.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		ParentID:  parentID,
		CreatedBy: createdBy,
		CreatedAt: s.portal.now(),
	}
	if err := s.portal.store.CreateFolder(f); err != nil {
		return "", err
	}
	s.portal.log.Debug("folder created", "name", name, "id", f.ID)
	return f.ID, nil
}

// AddFile links a file id into the folder's membership list. Adding twice
// is a no-op, as is adding to an unknown folder.
func (s *FolderService) AddFile(folderID, fileID string) error {
	if _, err := s.portal.store.GetFolder(folderID); err != nil {
		return nil
	}
	return s.portal.store.AddFolderFile(folderID, fileID)
}

// RemoveFile unlinks a file id; unknown folders and absent files are no-ops.
func (s *FolderService) RemoveFile(folderID, fileID string) error {
	if _, err := s.portal.store.GetFolder(folderID); err != nil {
		return nil
	}
	return s.portal.store.RemoveFolderFile(folderID, fileID)
}

// Delete removes the folder node and unlinks it from its parent. Subfolders
// are deliberately not cascaded and keep their parent reference, becoming
// unreachable orphans; the folder's files are left in place.
func (s *FolderService) Delete(id string) error {
	if err := s.portal.store.DeleteFolder(id); err != nil {
		return ErrNotFound
	}
	s.mu.Lock()
	if s.currentFolder != nil && *s.currentFolder == id {
		s.currentFolder = nil
	}
	s.mu.Unlock()
	return nil
}

// Path walks the parent chain and returns it root-first, ending with the
// folder itself. A missing parent reference terminates the walk as if the
// root had been reached.
func (s *FolderService) Path(id string) ([]db.Folder, error) {
	path := make([]db.Folder, 0, 4)
	next := &id
	for next != nil {
		f, err := s.portal.store.GetFolder(*next)
		if err != nil {
			break
		}
		path = append([]db.Folder{f}, path...)
		next = f.ParentID
	}
	if len(path) == 0 {
		return nil, ErrNotFound
	}
	return path, nil
}

// Contents returns the folder's file ids and direct subfolder ids; unknown
// folders yield empty contents.
func (s *FolderService) Contents(id string) (Contents, error) {
	if _, err := s.portal.store.GetFolder(id); err != nil {
		return Contents{FileIDs: []string{}, SubfolderIDs: []string{}}, nil
	}
	fileIDs, err := s.portal.store.FolderFileIDs(id)
	if err != nil {
		return Contents{}, err
	}
	children, err := s.portal.store.ChildFolders(&id)
	if err != nil {
		return Contents{}, err
	}
	subIDs := make([]string, 0, len(children))
	for _, c := range children {
		subIDs = append(subIDs, c.ID)
	}
	return Contents{FileIDs: fileIDs, SubfolderIDs: subIDs}, nil
}

func (s *FolderService) Get(id string) (db.Folder, error) {
	f, err := s.portal.store.GetFolder(id)
	if err != nil {
		return db.Folder{}, ErrNotFound
	}
	return f, nil
}

func (s *FolderService) List() ([]db.Folder, error) {
	return s.portal.store.ListFolders()
}

// Children lists direct subfolders; nil parent means the root level.
func (s *FolderService) Children(parentID *string) ([]db.Folder, error) {
	return s.portal.store.ChildFolders(parentID)
}

func (s *FolderService) SetCurrentFolder(id *string) {
	s.mu.Lock()
	s.currentFolder = id
	s.mu.Unlock()
}

func (s *FolderService) CurrentFolder() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentFolder
}

func (s *FolderService) SetCurrentView(view *string) {
	s.mu.Lock()
	s.currentView = view
	s.mu.Unlock()
}

func (s *FolderService) CurrentView() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentView
}
