// Package record defines the structured card record produced by the
// extraction pipeline and the rules a record must satisfy to be emitted.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Record is one parsed card. The JSON and YAML field names are the output
// contract of every serializer.
type Record struct {
	// Name is the header label without its index, e.g. "0 바보 (The Fool)".
	Name string `json:"card_name" yaml:"card_name"`

	// MeaningPrimary holds the description and practice sections, each
	// under its own bracketed label.
	MeaningPrimary string `json:"meaning_up" yaml:"meaning_up"`

	// MeaningSecondary holds the advisory tip.
	MeaningSecondary string `json:"meaning_down" yaml:"meaning_down"`

	// Keywords in source order; duplicates are kept.
	Keywords []string `json:"keywords" yaml:"keywords" validate:"dive,required"`
}

// IsEmpty reports whether the record carries no content at all.
func (r Record) IsEmpty() bool {
	return len(r.Keywords) == 0 && r.MeaningPrimary == "" && r.MeaningSecondary == ""
}

// MarshalJSON always writes keywords as an array, never null, and leaves
// <, > and & unescaped.
func (r Record) MarshalJSON() ([]byte, error) {
	type alias Record
	a := alias(r)
	if a.Keywords == nil {
		a.Keywords = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(a); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		r := sl.Current().Interface().(Record)
		if r.IsEmpty() {
			sl.ReportError(r.Keywords, "Keywords", "keywords", "has_content", "")
		}
	}, Record{})
	return v
}

// ValidationError describes a single failed rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is returned by Validate when any rule fails.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks that the record may be emitted: at least one of
// keywords, primary meaning or secondary meaning is present, and no
// keyword is blank.
func (r Record) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   e.Field(),
			Message: formatValidationError(e),
		})
	}
	return errs
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "must not be blank"
	case "has_content":
		return "record has no keywords or meanings"
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
