package validator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stemsi/roster/internal/model"
)

var (
	setupOnce sync.Once
	validate  *govalidator.Validate
	// trans is the singleton English translator for validation errors.
	trans ut.Translator
)

// InvalidInputError reports a user-supplied field that failed validation.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Setup builds the validator with English translations.
// It is safe to call more than once; the validate functions call it lazily.
func Setup() {
	setupOnce.Do(func() {
		v := govalidator.New(govalidator.WithRequiredStructEnabled())

		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		validate = v
	})
}

// TranslateErrors takes a validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	Setup()
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

type idField struct {
	ID int64 `json:"id" validate:"gt=0"`
}

type nameField struct {
	Name string `json:"name" validate:"required"`
}

type gradeField struct {
	Grade float64 `json:"grade" validate:"gte=0,lte=100"`
}

type sortField struct {
	Field string `json:"field" validate:"oneof=id grade"`
}

type sortDirection struct {
	Order string `json:"order" validate:"oneof=ascending descending"`
}

// ValidateID parses raw as a positive integer id.
func ValidateID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &InvalidInputError{Field: "id", Message: "id is a required field"}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &InvalidInputError{Field: "id", Message: "id must be a whole number"}
	}
	if err := check("id", idField{ID: id}); err != nil {
		return 0, err
	}
	return id, nil
}

// ValidateName trims raw and rejects it if nothing is left.
func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if err := check("name", nameField{Name: name}); err != nil {
		return "", err
	}
	return name, nil
}

// ValidateGrade parses raw as a grade in [0, 100]. An empty raw yields 0
// unless required is set.
func ValidateGrade(raw string, required bool) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		if required {
			return 0, &InvalidInputError{Field: "grade", Message: "grade is a required field"}
		}
		return 0, nil
	}
	// ParseFloat also takes hex floats such as 0x1p4; grades are decimal only.
	if digits := strings.TrimLeft(s, "+-"); len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, &InvalidInputError{Field: "grade", Message: "grade must be a number"}
	}
	grade, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(grade) || math.IsInf(grade, 0) {
		return 0, &InvalidInputError{Field: "grade", Message: "grade must be a number"}
	}
	if err := check("grade", gradeField{Grade: grade}); err != nil {
		return 0, err
	}
	return grade, nil
}

// ValidateSortField maps the selected sort column onto the closed set of
// sortable fields. Matching is case-insensitive.
func ValidateSortField(raw string) (model.SortField, error) {
	f := strings.ToLower(strings.TrimSpace(raw))
	if err := check("field", sortField{Field: f}); err != nil {
		return "", err
	}
	return model.SortField(f), nil
}

// ValidateSortDirection maps the selected direction onto ascending or
// descending. "asc" and "desc" are accepted as shorthands.
func ValidateSortDirection(raw string) (model.SortDirection, error) {
	d := strings.ToLower(strings.TrimSpace(raw))
	switch d {
	case "asc":
		d = string(model.Ascending)
	case "desc":
		d = string(model.Descending)
	}
	if err := check("order", sortDirection{Order: d}); err != nil {
		return "", err
	}
	return model.SortDirection(d), nil
}

func check(field string, v any) error {
	Setup()
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	msgs := TranslateErrors(err)
	msg, ok := msgs[field]
	if !ok {
		msg = err.Error()
	}
	return &InvalidInputError{Field: field, Message: msg}
}
