package validation

import (
	"fmt"
	"strconv"
	"strings"

	"fininclusion/internal/config"
	"fininclusion/internal/inference"
	"fininclusion/internal/schema"
)

// Validator checks form input against the configured form controls.
type Validator struct {
	form *config.FormConfig
}

// New creates a validator for form.
func New(form *config.FormConfig) *Validator {
	return &Validator{form: form}
}

// ParseForm reads an Input from form values keyed by feature name.
func (v *Validator) ParseForm(get func(key string) string) (inference.Input, error) {
	var in inference.Input
	var err error

	in.Country = strings.TrimSpace(get(schema.Country))
	in.LocationType = strings.TrimSpace(get(schema.LocationType))
	in.CellphoneAccess = strings.TrimSpace(get(schema.CellphoneAccess))
	in.GenderOfRespondent = strings.TrimSpace(get(schema.GenderOfRespondent))
	in.RelationshipWithHead = strings.TrimSpace(get(schema.RelationshipWithHead))
	in.EducationLevel = strings.TrimSpace(get(schema.EducationLevel))
	in.JobType = strings.TrimSpace(get(schema.JobType))
	in.MaritalStatus = strings.TrimSpace(get(schema.MaritalStatus))

	if in.Year, err = parseInt(get, schema.Year); err != nil {
		return in, err
	}
	if in.HouseholdSize, err = parseInt(get, schema.HouseholdSize); err != nil {
		return in, err
	}
	if in.AgeOfRespondent, err = parseInt(get, schema.AgeOfRespondent); err != nil {
		return in, err
	}

	return in, v.Validate(in)
}

func parseInt(get func(string) string, name string) (int, error) {
	raw := strings.TrimSpace(get(name))
	if raw == "" {
		return 0, &inference.InvalidInputError{Field: name, Reason: "is required"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &inference.InvalidInputError{Field: name, Reason: fmt.Sprintf("%q is not a whole number", raw)}
	}
	return n, nil
}

// Validate checks every field of in against its form control.
func (v *Validator) Validate(in inference.Input) error {
	for _, fv := range in.Values() {
		field := v.form.Field(fv.Name)
		if field == nil {
			return &inference.InvalidInputError{Field: fv.Name, Reason: "is not a form field"}
		}
		if err := checkField(field, fv); err != nil {
			return err
		}
	}
	return nil
}

func checkField(field *config.FieldConfig, fv inference.FieldValue) error {
	switch {
	case field.IsChoice():
		for _, c := range field.Choices {
			if float64(c) == fv.Number {
				return nil
			}
		}
		return &inference.InvalidInputError{Field: fv.Name, Reason: fmt.Sprintf("%s is not one of %v", fv, field.Choices)}
	case field.IsRange():
		if fv.Number < float64(field.Min) || fv.Number > float64(field.Max) {
			return &inference.InvalidInputError{Field: fv.Name, Reason: fmt.Sprintf("%s is outside [%d, %d]", fv, field.Min, field.Max)}
		}
		return nil
	default:
		if fv.Label == "" {
			return &inference.InvalidInputError{Field: fv.Name, Reason: "is required"}
		}
		for _, opt := range field.Options {
			if opt == fv.Label {
				return nil
			}
		}
		return &inference.InvalidInputError{Field: fv.Name, Reason: fmt.Sprintf("%q is not an offered option", fv.Label)}
	}
}
