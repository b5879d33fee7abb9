package scene

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mhagedorn/scenegraph/pkg/errors"
)

// validate is a singleton: validator instances cache struct metadata and
// are safe for concurrent use.
var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report field names as they appear in the JSON document.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// Validate checks a decoded scene against the schema: required attribute
// keys, bounding box ordering, normalized coordinate ranges, and relation
// field presence. Returns a SCHEMA_VIOLATION error naming the first
// offending field, nil if the scene is well formed.
func Validate(s *Scene) error {
	if s == nil {
		return errors.New(errors.ErrCodeSchemaViolation, "scene is nil")
	}
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into a single
// field-level schema violation message.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeSchemaViolation, err, "scene validation failed")
	}

	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Scene.")
	switch e.Tag() {
	case "required":
		return errors.New(errors.ErrCodeSchemaViolation, "%s: field is required", field)
	case "gte":
		return errors.New(errors.ErrCodeSchemaViolation, "%s: must be at least %s", field, e.Param())
	case "lte":
		return errors.New(errors.ErrCodeSchemaViolation, "%s: must not exceed %s", field, e.Param())
	case "gtfield":
		return errors.New(errors.ErrCodeSchemaViolation, "%s: must be greater than %s", field, fieldTagName(e.Param()))
	default:
		return errors.New(errors.ErrCodeSchemaViolation, "%s: validation failed (%s)", field, e.Tag())
	}
}

// fieldTagName maps a cross-field validation parameter (a Go field name)
// back to its JSON key for error messages.
func fieldTagName(param string) string {
	switch param {
	case "XMin":
		return "x_min"
	case "YMin":
		return "y_min"
	case "XMax":
		return "x_max"
	case "YMax":
		return "y_max"
	default:
		return strings.ToLower(param)
	}
}
