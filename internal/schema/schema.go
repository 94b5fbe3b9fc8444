// Package schema defines the feature layout the classifier was trained on.
package schema

// Feature names, as used in artifacts and form fields.
const (
	Country              = "country"
	Year                 = "year"
	LocationType         = "location_type"
	CellphoneAccess      = "cellphone_access"
	HouseholdSize        = "household_size"
	AgeOfRespondent      = "age_of_respondent"
	GenderOfRespondent   = "gender_of_respondent"
	RelationshipWithHead = "relationship_with_head"
	EducationLevel       = "education_level"
	JobType              = "job_type"
	MaritalStatus        = "marital_status"
)

// order is the training-time column order. The model reads positional values
// only, so any change here silently changes predictions.
var order = []string{
	Country,
	Year,
	LocationType,
	CellphoneAccess,
	HouseholdSize,
	AgeOfRespondent,
	GenderOfRespondent,
	RelationshipWithHead,
	EducationLevel,
	JobType,
	MaritalStatus,
}

var numeric = map[string]bool{
	Year:            true,
	HouseholdSize:   true,
	AgeOfRespondent: true,
}

var position = func() map[string]int {
	m := make(map[string]int, len(order))
	for i, name := range order {
		m[name] = i
	}
	return m
}()

// Width is the number of columns in a feature vector.
func Width() int {
	return len(order)
}

// Order returns a copy of the schema column order.
func Order() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Position returns the column index of a feature.
func Position(name string) (int, bool) {
	i, ok := position[name]
	return i, ok
}

// IsNumeric reports whether a feature is passed through without encoding.
func IsNumeric(name string) bool {
	return numeric[name]
}

// Categorical returns the encoded features in schema order.
func Categorical() []string {
	var out []string
	for _, name := range order {
		if !numeric[name] {
			out = append(out, name)
		}
	}
	return out
}

// Matches reports whether names equals the schema order exactly.
func Matches(names []string) bool {
	if len(names) != len(order) {
		return false
	}
	for i := range order {
		if names[i] != order[i] {
			return false
		}
	}
	return true
}
