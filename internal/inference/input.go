package inference

import (
	"strconv"

	"fininclusion/internal/schema"
)

// Input holds one respondent's form selections.
type Input struct {
	Country              string
	Year                 int
	LocationType         string
	CellphoneAccess      string
	HouseholdSize        int
	AgeOfRespondent      int
	GenderOfRespondent   string
	RelationshipWithHead string
	EducationLevel       string
	JobType              string
	MaritalStatus        string
}

// FieldValue is one named form value: a label for categorical features or a
// number for pass-through features.
type FieldValue struct {
	Name   string
	Label  string
	Number float64
}

// Categorical returns a labelled field value.
func Categorical(name, label string) FieldValue {
	return FieldValue{Name: name, Label: label}
}

// Numeric returns a numeric field value.
func Numeric(name string, v float64) FieldValue {
	return FieldValue{Name: name, Number: v}
}

// String renders the raw value the way it was entered.
func (f FieldValue) String() string {
	if schema.IsNumeric(f.Name) {
		return strconv.FormatFloat(f.Number, 'f', -1, 64)
	}
	return f.Label
}

// Values returns the input as named field values, in declaration order.
func (in Input) Values() []FieldValue {
	return []FieldValue{
		Categorical(schema.Country, in.Country),
		Numeric(schema.Year, float64(in.Year)),
		Categorical(schema.LocationType, in.LocationType),
		Categorical(schema.CellphoneAccess, in.CellphoneAccess),
		Numeric(schema.HouseholdSize, float64(in.HouseholdSize)),
		Numeric(schema.AgeOfRespondent, float64(in.AgeOfRespondent)),
		Categorical(schema.GenderOfRespondent, in.GenderOfRespondent),
		Categorical(schema.RelationshipWithHead, in.RelationshipWithHead),
		Categorical(schema.EducationLevel, in.EducationLevel),
		Categorical(schema.JobType, in.JobType),
		Categorical(schema.MaritalStatus, in.MaritalStatus),
	}
}
