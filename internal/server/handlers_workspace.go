package server

import (
	"encoding/json"

	"github.com/ironsheep/color-tools-mcp/internal/palette"
)

// === Workspace Handlers ===

type idArgs struct {
	ID string `json:"id"`
}

type deletedResult struct {
	Deleted string `json:"deleted"`
}

type workspaceResult struct {
	Workspace palette.Workspace `json:"workspace"`
	Folders   []palette.Folder  `json:"folders"`
	Projects  []palette.Project `json:"projects"`
}

func (s *Server) handleWorkspaceGet(args json.RawMessage) (interface{}, error) {
	return &workspaceResult{
		Workspace: s.store.Workspace(),
		Folders:   s.store.AllFolders(),
		Projects:  s.store.AllProjects(),
	}, nil
}

func (s *Server) handleFolderCreate(args json.RawMessage) (interface{}, error) {
	var in palette.CreateFolderInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	return s.store.CreateFolder(in)
}

type workspaceRenameArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleWorkspaceRename(args json.RawMessage) (interface{}, error) {
	var a workspaceRenameArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.store.RenameWorkspace(a.Name)
}

type folderUpdateArgs struct {
	ID string `json:"id"`
	palette.UpdateFolderInput
}

func (s *Server) handleFolderUpdate(args json.RawMessage) (interface{}, error) {
	var a folderUpdateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.store.UpdateFolder(a.ID, a.UpdateFolderInput)
}

func (s *Server) handleFolderDelete(args json.RawMessage) (interface{}, error) {
	var a idArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.store.DeleteFolder(a.ID); err != nil {
		return nil, err
	}
	return &deletedResult{Deleted: a.ID}, nil
}

func (s *Server) handleProjectCreate(args json.RawMessage) (interface{}, error) {
	var in palette.CreateProjectInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	return s.store.CreateProject(in)
}

type projectListArgs struct {
	FolderID *string `json:"folder_id,omitempty"`
}

func (s *Server) handleProjectList(args json.RawMessage) (interface{}, error) {
	var a projectListArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return map[string][]palette.Project{"projects": s.store.Projects(a.FolderID)}, nil
}

type projectUpdateArgs struct {
	ID string `json:"id"`
	palette.UpdateProjectInput
}

func (s *Server) handleProjectUpdate(args json.RawMessage) (interface{}, error) {
	var a projectUpdateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.store.UpdateProject(a.ID, a.UpdateProjectInput)
}

type projectMoveArgs struct {
	ID       string  `json:"id"`
	FolderID *string `json:"folder_id,omitempty"`
}

func (s *Server) handleProjectMove(args json.RawMessage) (interface{}, error) {
	var a projectMoveArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.store.MoveProject(a.ID, a.FolderID)
}

func (s *Server) handleProjectDelete(args json.RawMessage) (interface{}, error) {
	var a idArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.store.DeleteProject(a.ID); err != nil {
		return nil, err
	}
	return &deletedResult{Deleted: a.ID}, nil
}

// handleColorAdd defaults the source to manual.
func (s *Server) handleColorAdd(args json.RawMessage) (interface{}, error) {
	var in palette.CreateColorInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Source == "" {
		in.Source = palette.SourceManual
	}
	return s.store.CreateColor(in)
}

type projectIDArgs struct {
	ProjectID string `json:"project_id"`
}

func (s *Server) handleColorList(args json.RawMessage) (interface{}, error) {
	var a projectIDArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	colors, err := s.store.Colors(a.ProjectID)
	if err != nil {
		return nil, err
	}
	return map[string][]palette.Color{"colors": colors}, nil
}

type colorUpdateArgs struct {
	ID string `json:"id"`
	palette.UpdateColorInput
}

func (s *Server) handleColorUpdate(args json.RawMessage) (interface{}, error) {
	var a colorUpdateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.store.UpdateColor(a.ID, a.UpdateColorInput)
}

func (s *Server) handleColorDelete(args json.RawMessage) (interface{}, error) {
	var a idArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.store.DeleteColor(a.ID); err != nil {
		return nil, err
	}
	return &deletedResult{Deleted: a.ID}, nil
}

type colorReorderArgs struct {
	ProjectID string   `json:"project_id"`
	ColorIDs  []string `json:"color_ids"`
}

func (s *Server) handleColorReorder(args json.RawMessage) (interface{}, error) {
	var a colorReorderArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	colors, err := s.store.ReorderColors(a.ProjectID, a.ColorIDs)
	if err != nil {
		return nil, err
	}
	return map[string][]palette.Color{"colors": colors}, nil
}

type paletteExportArgs struct {
	ProjectID string `json:"project_id"`
	Format    string `json:"format"`
}

type paletteExportResult struct {
	ProjectID string               `json:"project_id"`
	Format    palette.ExportFormat `json:"format"`
	Content   string               `json:"content"`
}

func (s *Server) handlePaletteExport(args json.RawMessage) (interface{}, error) {
	var a paletteExportArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	format, err := palette.ParseExportFormat(a.Format)
	if err != nil {
		return nil, err
	}
	project, err := s.store.Project(a.ProjectID)
	if err != nil {
		return nil, err
	}
	colors, err := s.store.Colors(a.ProjectID)
	if err != nil {
		return nil, err
	}
	content, err := palette.Export(*project, colors, format)
	if err != nil {
		return nil, err
	}
	return &paletteExportResult{ProjectID: project.ID, Format: format, Content: string(content)}, nil
}
