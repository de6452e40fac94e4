package palette

import (
	"time"

	"github.com/ironsheep/color-tools-mcp/internal/colormath"
)

// Source records how a colour entered a project.
type Source string

const (
	SourcePicker Source = "picker"
	SourceImage  Source = "image"
	SourceManual Source = "manual"
)

// Workspace is the root container. A store holds exactly one.
type Workspace struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Folder groups projects and other folders. A nil ParentID means the folder
// sits at the workspace root.
type Folder struct {
	ID          string    `json:"id" yaml:"id"`
	WorkspaceID string    `json:"workspace_id" yaml:"workspace_id"`
	ParentID    *string   `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Name        string    `json:"name" yaml:"name"`
	Icon        string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Position    int       `json:"position" yaml:"position"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// Project is a named, ordered collection of colours.
type Project struct {
	ID          string    `json:"id" yaml:"id"`
	WorkspaceID string    `json:"workspace_id" yaml:"workspace_id"`
	FolderID    *string   `json:"folder_id,omitempty" yaml:"folder_id,omitempty"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Position    int       `json:"position" yaml:"position"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// Color is a saved colour. RGB and HSL are always derived from Hex.
type Color struct {
	ID        string        `json:"id" yaml:"id"`
	ProjectID string        `json:"project_id" yaml:"project_id"`
	Hex       colormath.Hex `json:"hex" yaml:"hex"`
	RGB       colormath.RGB `json:"rgb" yaml:"rgb"`
	HSL       colormath.HSL `json:"hsl" yaml:"hsl"`
	Name      string        `json:"name,omitempty" yaml:"name,omitempty"`
	Notes     string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	Position  int           `json:"position" yaml:"position"`
	Source    Source        `json:"source" yaml:"source"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" yaml:"updated_at"`
}

// CreateFolderInput describes a new folder.
type CreateFolderInput struct {
	ParentID *string `json:"parent_id,omitempty"`
	Name     string  `json:"name" validate:"record_name"`
	Icon     string  `json:"icon,omitempty" validate:"max=50"`
}

// CreateProjectInput describes a new project.
type CreateProjectInput struct {
	FolderID    *string `json:"folder_id,omitempty"`
	Name        string  `json:"name" validate:"record_name"`
	Description string  `json:"description,omitempty" validate:"max=500"`
}

// CreateColorInput describes a colour to add to a project.
type CreateColorInput struct {
	ProjectID string `json:"project_id" validate:"required"`
	Hex       string `json:"hex" validate:"required,color_hex"`
	Name      string `json:"name,omitempty" validate:"max=50"`
	Notes     string `json:"notes,omitempty" validate:"max=500"`
	Source    Source `json:"source" validate:"required,oneof=picker image manual"`
}

// RenameWorkspaceInput carries a new workspace name.
type RenameWorkspaceInput struct {
	Name string `json:"name" validate:"record_name"`
}

// UpdateFolderInput changes selected fields of a folder. Nil fields are left
// untouched. A ParentID of "" moves the folder to the workspace root.
type UpdateFolderInput struct {
	Name     *string `json:"name,omitempty" validate:"omitnil,record_name"`
	Icon     *string `json:"icon,omitempty" validate:"omitnil,max=50"`
	ParentID *string `json:"parent_id,omitempty"`
	Position *int    `json:"position,omitempty" validate:"omitnil,min=0"`
}

// UpdateProjectInput changes selected fields of a project. Nil fields are
// left untouched. A FolderID of "" moves the project to the workspace root.
type UpdateProjectInput struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,record_name"`
	Description *string `json:"description,omitempty" validate:"omitnil,max=500"`
	FolderID    *string `json:"folder_id,omitempty"`
	Position    *int    `json:"position,omitempty" validate:"omitnil,min=0"`
}

// UpdateColorInput changes selected fields of a colour. Nil fields are left
// untouched.
type UpdateColorInput struct {
	Hex      *string `json:"hex,omitempty" validate:"omitnil,color_hex"`
	Name     *string `json:"name,omitempty" validate:"omitnil,max=50"`
	Notes    *string `json:"notes,omitempty" validate:"omitnil,max=500"`
	Position *int    `json:"position,omitempty" validate:"omitnil,min=0"`
}
