package palette

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ironsheep/color-tools-mcp/internal/colormath"
)

var (
	// ErrNotFound is returned when an id does not name a record in the store.
	ErrNotFound = errors.New("not found")

	// ErrFolderCycle is returned when a folder would be moved below itself.
	ErrFolderCycle = errors.New("folder cannot be moved inside itself")
)

// Store is an in-memory workspace. It is safe for concurrent use; every
// method returns copies so callers cannot mutate stored records.
type Store struct {
	mu        sync.RWMutex
	workspace Workspace
	folders   map[string]*Folder
	projects  map[string]*Project
	colors    map[string]*Color
	nextID    int
	now       func() time.Time
}

// NewStore creates a store holding one empty workspace called name.
func NewStore(name string) *Store {
	s := &Store{
		folders:  make(map[string]*Folder),
		projects: make(map[string]*Project),
		colors:   make(map[string]*Color),
		now:      func() time.Time { return time.Now().UTC() },
	}
	ts := s.now()
	s.workspace = Workspace{ID: s.newID("ws"), Name: name, CreatedAt: ts, UpdatedAt: ts}
	return s
}

// newID returns the next sequential id with the given prefix. Caller holds mu.
func (s *Store) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s_%d", prefix, s.nextID)
}

// Workspace returns the store's workspace record.
func (s *Store) Workspace() Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workspace
}

// RenameWorkspace changes the workspace name.
func (s *Store) RenameWorkspace(name string) (*Workspace, error) {
	if err := (RenameWorkspaceInput{Name: name}).Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.workspace.Name = strings.TrimSpace(name)
	s.workspace.UpdatedAt = s.now()

	out := s.workspace
	return &out, nil
}

// parentTarget turns an update's parent field into a target: nil means no
// change was asked for, "" means the workspace root.
func parentTarget(id *string) (target *string, changed bool) {
	if id == nil {
		return nil, false
	}
	if *id == "" {
		return nil, true
	}
	return copyID(id), true
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// CreateFolder adds a folder under in.ParentID, or at the root when it is nil.
func (s *Store) CreateFolder(in CreateFolderInput) (*Folder, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ParentID != nil {
		if _, ok := s.folders[*in.ParentID]; !ok {
			return nil, fmt.Errorf("parent folder %s: %w", *in.ParentID, ErrNotFound)
		}
	}

	ts := s.now()
	f := &Folder{
		ID:          s.newID("folder"),
		WorkspaceID: s.workspace.ID,
		ParentID:    copyID(in.ParentID),
		Name:        strings.TrimSpace(in.Name),
		Icon:        in.Icon,
		Position:    s.nextFolderPosition(in.ParentID),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	s.folders[f.ID] = f

	out := *f
	return &out, nil
}

// nextFolderPosition is one past the highest folder position under parentID.
// Caller holds mu.
func (s *Store) nextFolderPosition(parentID *string) int {
	position := 0
	for _, f := range s.folders {
		if sameParent(f.ParentID, parentID) && f.Position >= position {
			position = f.Position + 1
		}
	}
	return position
}

// UpdateFolder applies the non-nil fields of in. A folder given a new parent
// goes to the end of it unless in.Position is also set. Moving a folder
// below itself or one of its descendants fails with ErrFolderCycle.
func (s *Store) UpdateFolder(id string, in UpdateFolderInput) (*Folder, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, ErrNotFound)
	}

	parent, reparent := parentTarget(in.ParentID)
	if reparent {
		if parent != nil {
			if _, ok := s.folders[*parent]; !ok {
				return nil, fmt.Errorf("parent folder %s: %w", *parent, ErrNotFound)
			}
			if s.isSelfOrDescendant(*parent, id) {
				return nil, fmt.Errorf("folder %s under %s: %w", id, *parent, ErrFolderCycle)
			}
		}
		if sameParent(f.ParentID, parent) {
			reparent = false
		}
	}

	if in.Name != nil {
		f.Name = strings.TrimSpace(*in.Name)
	}
	if in.Icon != nil {
		f.Icon = *in.Icon
	}
	if reparent {
		f.Position = s.nextFolderPosition(parent)
		f.ParentID = parent
	}
	if in.Position != nil {
		f.Position = *in.Position
	}
	f.UpdatedAt = s.now()

	out := *f
	return &out, nil
}

// isSelfOrDescendant reports whether folder candidate is root or sits
// somewhere below it. Caller holds mu.
func (s *Store) isSelfOrDescendant(candidate, root string) bool {
	for cur := &candidate; cur != nil; {
		if *cur == root {
			return true
		}
		f, ok := s.folders[*cur]
		if !ok {
			return false
		}
		cur = f.ParentID
	}
	return false
}

// Folders lists the direct children of parentID (root folders when nil),
// ordered by position.
func (s *Store) Folders(parentID *string) []Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Folder{}
	for _, f := range s.folders {
		if sameParent(f.ParentID, parentID) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// DeleteFolder removes a folder and every folder nested below it. Projects
// inside any removed folder move to the workspace root.
func (s *Store) DeleteFolder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[id]; !ok {
		return fmt.Errorf("folder %s: %w", id, ErrNotFound)
	}

	doomed := map[string]bool{id: true}
	for grew := true; grew; {
		grew = false
		for fid, f := range s.folders {
			if !doomed[fid] && f.ParentID != nil && doomed[*f.ParentID] {
				doomed[fid] = true
				grew = true
			}
		}
	}
	for fid := range doomed {
		delete(s.folders, fid)
	}

	// Orphaned projects are appended to the root in their old order.
	var orphans []*Project
	for _, p := range s.projects {
		if p.FolderID != nil && doomed[*p.FolderID] {
			orphans = append(orphans, p)
		}
	}
	sort.Slice(orphans, func(i, j int) bool {
		if orphans[i].Position != orphans[j].Position {
			return orphans[i].Position < orphans[j].Position
		}
		return idLess(orphans[i].ID, orphans[j].ID)
	})
	ts := s.now()
	for _, p := range orphans {
		p.Position = s.nextProjectPosition(nil)
		p.FolderID = nil
		p.UpdatedAt = ts
	}
	return nil
}

// nextProjectPosition is one past the highest position in folderID. Caller
// holds mu.
func (s *Store) nextProjectPosition(folderID *string) int {
	position := 0
	for _, p := range s.projects {
		if sameParent(p.FolderID, folderID) && p.Position >= position {
			position = p.Position + 1
		}
	}
	return position
}

// CreateProject adds a project to in.FolderID, or to the root when it is nil.
func (s *Store) CreateProject(in CreateProjectInput) (*Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if in.FolderID != nil {
		if _, ok := s.folders[*in.FolderID]; !ok {
			return nil, fmt.Errorf("folder %s: %w", *in.FolderID, ErrNotFound)
		}
	}

	ts := s.now()
	p := &Project{
		ID:          s.newID("project"),
		WorkspaceID: s.workspace.ID,
		FolderID:    copyID(in.FolderID),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Position:    s.nextProjectPosition(in.FolderID),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	s.projects[p.ID] = p

	out := *p
	return &out, nil
}

// Projects lists the projects in folderID (root projects when nil), ordered
// by position.
func (s *Store) Projects(folderID *string) []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Project{}
	for _, p := range s.projects {
		if sameParent(p.FolderID, folderID) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// AllFolders lists every folder in the workspace, ordered by id.
func (s *Store) AllFolders() []Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Folder, 0, len(s.folders))
	for _, f := range s.folders {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return idLess(out[i].ID, out[j].ID) })
	return out
}

// AllProjects lists every project in the workspace, ordered by id.
func (s *Store) AllProjects() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return idLess(out[i].ID, out[j].ID) })
	return out
}

// Project returns one project.
func (s *Store) Project(id string) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	out := *p
	return &out, nil
}

// MoveProject puts a project at the end of folderID (the root when nil).
func (s *Store) MoveProject(id string, folderID *string) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	moved, err := s.moveProject(p, folderID)
	if err != nil {
		return nil, err
	}
	if moved {
		p.UpdatedAt = s.now()
	}

	out := *p
	return &out, nil
}

// moveProject sends p to the end of folderID when it is not already there.
// Caller holds mu.
func (s *Store) moveProject(p *Project, folderID *string) (bool, error) {
	if folderID != nil {
		if _, ok := s.folders[*folderID]; !ok {
			return false, fmt.Errorf("folder %s: %w", *folderID, ErrNotFound)
		}
	}
	if sameParent(p.FolderID, folderID) {
		return false, nil
	}
	p.Position = s.nextProjectPosition(folderID)
	p.FolderID = copyID(folderID)
	return true, nil
}

// UpdateProject applies the non-nil fields of in. A project given a new
// folder goes to the end of it unless in.Position is also set.
func (s *Store) UpdateProject(id string, in UpdateProjectInput) (*Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	// Check the target before changing anything.
	folder, move := parentTarget(in.FolderID)
	if move && folder != nil {
		if _, ok := s.folders[*folder]; !ok {
			return nil, fmt.Errorf("folder %s: %w", *folder, ErrNotFound)
		}
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if move {
		if _, err := s.moveProject(p, folder); err != nil {
			return nil, err
		}
	}
	if in.Position != nil {
		p.Position = *in.Position
	}
	p.UpdatedAt = s.now()

	out := *p
	return &out, nil
}

// DeleteProject removes a project and all of its colours.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	delete(s.projects, id)
	for cid, c := range s.colors {
		if c.ProjectID == id {
			delete(s.colors, cid)
		}
	}
	return nil
}

// CreateColor normalizes in.Hex, derives its RGB and HSL, and appends the
// colour to the end of its project.
func (s *Store) CreateColor(in CreateColorInput) (*Color, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hex, err := colormath.NormalizeHex(in.Hex)
	if err != nil {
		return nil, err
	}
	rgb, err := colormath.HexToRGB(string(hex))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[in.ProjectID]; !ok {
		return nil, fmt.Errorf("project %s: %w", in.ProjectID, ErrNotFound)
	}

	position := 0
	for _, c := range s.colors {
		if c.ProjectID == in.ProjectID && c.Position >= position {
			position = c.Position + 1
		}
	}

	ts := s.now()
	c := &Color{
		ID:        s.newID("color"),
		ProjectID: in.ProjectID,
		Hex:       hex,
		RGB:       rgb,
		HSL:       colormath.RGBToHSL(rgb),
		Name:      in.Name,
		Notes:     in.Notes,
		Position:  position,
		Source:    in.Source,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.colors[c.ID] = c

	out := *c
	return &out, nil
}

// Colors lists a project's colours in position order.
func (s *Store) Colors(projectID string) ([]Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.projects[projectID]; !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	return s.colorsOf(projectID), nil
}

// colorsOf returns copies of a project's colours sorted by position. Caller
// holds mu.
func (s *Store) colorsOf(projectID string) []Color {
	out := []Color{}
	for _, c := range s.colors {
		if c.ProjectID == projectID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return idLess(out[i].ID, out[j].ID)
	})
	return out
}

// Color returns one colour.
func (s *Store) Color(id string) (*Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.colors[id]
	if !ok {
		return nil, fmt.Errorf("color %s: %w", id, ErrNotFound)
	}
	out := *c
	return &out, nil
}

// UpdateColor applies the non-nil fields of in. A new hex re-derives RGB
// and HSL.
func (s *Store) UpdateColor(id string, in UpdateColorInput) (*Color, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var (
		hex colormath.Hex
		rgb colormath.RGB
	)
	if in.Hex != nil {
		var err error
		if hex, err = colormath.NormalizeHex(*in.Hex); err != nil {
			return nil, err
		}
		if rgb, err = colormath.HexToRGB(string(hex)); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.colors[id]
	if !ok {
		return nil, fmt.Errorf("color %s: %w", id, ErrNotFound)
	}

	if in.Hex != nil {
		c.Hex = hex
		c.RGB = rgb
		c.HSL = colormath.RGBToHSL(rgb)
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	if in.Position != nil {
		c.Position = *in.Position
	}
	c.UpdatedAt = s.now()

	out := *c
	return &out, nil
}

// DeleteColor removes one colour. The positions of the remaining colours are
// left as they are.
func (s *Store) DeleteColor(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.colors[id]; !ok {
		return fmt.Errorf("color %s: %w", id, ErrNotFound)
	}
	delete(s.colors, id)
	return nil
}

// ReorderColors sets each listed colour's position to its index in ids.
// Colours of the project missing from ids keep their relative order after
// the listed ones. Every id must belong to projectID and appear once.
func (s *Store) ReorderColors(projectID string, ids []string) ([]Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[projectID]; !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		c, ok := s.colors[id]
		if !ok {
			return nil, fmt.Errorf("color %s: %w", id, ErrNotFound)
		}
		if c.ProjectID != projectID {
			return nil, fmt.Errorf("color %s does not belong to project %s", id, projectID)
		}
		if seen[id] {
			return nil, fmt.Errorf("color %s listed more than once", id)
		}
		seen[id] = true
	}

	rest := make([]string, 0)
	for _, c := range s.colorsOf(projectID) {
		if !seen[c.ID] {
			rest = append(rest, c.ID)
		}
	}

	ts := s.now()
	for i, id := range append(append([]string{}, ids...), rest...) {
		c := s.colors[id]
		if c.Position != i {
			c.Position = i
			c.UpdatedAt = ts
		}
	}
	return s.colorsOf(projectID), nil
}

// idLess orders sequential ids numerically within a prefix.
func idLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
