package palette

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/ironsheep/color-tools-mcp/internal/colormath"
)

const (
	maxRecordNameLength = 100
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	// fieldLabels names struct fields in messages, keyed by struct namespace.
	fieldLabels = map[string]string{
		"CreateFolderInput.Name":         "Folder name",
		"CreateFolderInput.Icon":         "Icon",
		"CreateProjectInput.Name":        "Project name",
		"CreateProjectInput.Description": "Description",
		"CreateColorInput.ProjectID":     "Project ID",
		"CreateColorInput.Hex":           "HEX color",
		"CreateColorInput.Name":          "Color name",
		"CreateColorInput.Notes":         "Notes",
		"CreateColorInput.Source":        "Source",
		"RenameWorkspaceInput.Name":      "Workspace name",
		"UpdateFolderInput.Name":         "Folder name",
		"UpdateFolderInput.Icon":         "Icon",
		"UpdateFolderInput.Position":     "Position",
		"UpdateProjectInput.Name":        "Project name",
		"UpdateProjectInput.Description": "Description",
		"UpdateProjectInput.Position":    "Position",
		"UpdateColorInput.Hex":           "HEX color",
		"UpdateColorInput.Name":          "Color name",
		"UpdateColorInput.Notes":         "Notes",
		"UpdateColorInput.Position":      "Position",
	}
)

// ValidationError reports every rule an input broke.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("color_hex", func(fl validator.FieldLevel) bool {
			return colormath.IsValidHex(fl.Field().String())
		})

		// Folder and project names: 1-100 characters once surrounding
		// whitespace is removed.
		_ = v.RegisterValidation("record_name", func(fl validator.FieldLevel) bool {
			n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
			return n >= 1 && n <= maxRecordNameLength
		})

		validateInst = v
	})

	return validateInst
}

// validate runs the struct tags on input and folds the failures into a
// single *ValidationError.
func validate(input any) error {
	err := validatorInstance().Struct(input)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return &ValidationError{Messages: []string{err.Error()}}
	}

	messages := make([]string, 0, len(ves))
	for _, fe := range ves {
		messages = append(messages, messageFor(fe))
	}
	return &ValidationError{Messages: messages}
}

func messageFor(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.StructNamespace()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "color_hex":
		return "Invalid HEX color format"
	case "record_name":
		return fmt.Sprintf("%s is required and must be 1-%d characters", label, maxRecordNameLength)
	case "max":
		return fmt.Sprintf("%s must be %s characters or less", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be %s or greater", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed validation for tag '%s'", label, fe.Tag())
	}
}

// Validate checks the folder input rules.
func (in CreateFolderInput) Validate() error { return validate(in) }

// Validate checks the project input rules.
func (in CreateProjectInput) Validate() error { return validate(in) }

// Validate checks the colour input rules.
func (in CreateColorInput) Validate() error { return validate(in) }

// Validate checks the workspace name.
func (in RenameWorkspaceInput) Validate() error { return validate(in) }

// Validate checks the rules for the fields being changed.
func (in UpdateFolderInput) Validate() error { return validate(in) }

// Validate checks the rules for the fields being changed.
func (in UpdateProjectInput) Validate() error { return validate(in) }

// Validate checks the rules for the fields being changed.
func (in UpdateColorInput) Validate() error { return validate(in) }
