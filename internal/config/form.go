package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fininclusion/internal/schema"
)

// FormConfig describes the input controls of the prediction form.
// It lives in YAML because vocabularies are easier to maintain there than in
// env vars.
type FormConfig struct {
	Fields []FieldConfig `yaml:"fields"`
}

// FieldConfig defines one form control.
type FieldConfig struct {
	Name    string   `yaml:"name"`
	Label   string   `yaml:"label"`
	Options []string `yaml:"options,omitempty"` // closed vocabulary for categorical features
	Choices []int    `yaml:"choices,omitempty"` // enumerated numeric values (year)
	Min     int      `yaml:"min,omitempty"`     // bounded numeric range
	Max     int      `yaml:"max,omitempty"`
	Default int      `yaml:"default,omitempty"`
}

// IsRange reports whether the field is a bounded numeric slider.
func (f FieldConfig) IsRange() bool {
	return schema.IsNumeric(f.Name) && len(f.Choices) == 0
}

// IsChoice reports whether the field is an enumerated numeric select.
func (f FieldConfig) IsChoice() bool {
	return schema.IsNumeric(f.Name) && len(f.Choices) > 0
}

// DefaultFormConfig returns the built-in form controls. Option labels are the
// exact strings the encoders were fitted on.
func DefaultFormConfig() *FormConfig {
	return &FormConfig{Fields: []FieldConfig{
		{Name: schema.Country, Label: "Country", Options: []string{"Kenya", "Rwanda", "Tanzania", "Uganda"}},
		{Name: schema.Year, Label: "Year", Choices: []int{2016, 2017, 2018}, Default: 2016},
		{Name: schema.LocationType, Label: "Location Type", Options: []string{"Urban", "Rural"}},
		{Name: schema.CellphoneAccess, Label: "Cellphone Access", Options: []string{"Yes", "No"}},
		{Name: schema.HouseholdSize, Label: "Household Size", Min: 1, Max: 20, Default: 3},
		{Name: schema.AgeOfRespondent, Label: "Age of Respondent", Min: 16, Max: 100, Default: 30},
		{Name: schema.GenderOfRespondent, Label: "Gender of Respondent", Options: []string{"Male", "Female"}},
		{Name: schema.RelationshipWithHead, Label: "Relationship with Head", Options: []string{
			"Head of Household", "Spouse", "Child", "Parent", "Other relative", "Other non-relatives",
		}},
		{Name: schema.EducationLevel, Label: "Education Level", Options: []string{
			"No formal education", "Primary education", "Secondary education", "Tertiary education",
			"Vocational/Specialised training", "Other/Dont know/RTA",
		}},
		{Name: schema.JobType, Label: "Job Type", Options: []string{
			"Self employed", "Government Dependent", "Formally employed Private", "Formally employed Government",
			"Farming and Fishing", "Remittance Dependent", "Other Income", "No Income", "Informally employed",
			"Dont Know/Refuse to answer",
		}},
		{Name: schema.MaritalStatus, Label: "Marital Status", Options: []string{
			"Divorced/Seperated", "Dont know", "Married/Living together", "Single/Never Married", "Widowed",
		}},
	}}
}

// LoadFormConfig loads the form configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns the built-in defaults if the file doesn't exist.
func LoadFormConfig() (*FormConfig, error) {
	return LoadFormConfigFile(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadFormConfigFile loads the form configuration from path. Fields the file
// does not mention keep their built-in definition, and attributes an entry
// leaves unset (empty or zero) are taken from it.
func LoadFormConfigFile(path string) (*FormConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultFormConfig(), nil
		}
		return nil, err
	}

	var file FormConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := DefaultFormConfig()
	for _, f := range file.Fields {
		existing := cfg.Field(f.Name)
		if existing == nil {
			return nil, fmt.Errorf("%s: unknown form field %q", path, f.Name)
		}
		*existing = mergeField(*existing, f)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// mergeField overlays the set attributes of override on base. An explicitly
// empty list still replaces the built-in one.
func mergeField(base, override FieldConfig) FieldConfig {
	if override.Label != "" {
		base.Label = override.Label
	}
	if override.Options != nil {
		base.Options = override.Options
	}
	if override.Choices != nil {
		base.Choices = override.Choices
	}
	if override.Min != 0 {
		base.Min = override.Min
	}
	if override.Max != 0 {
		base.Max = override.Max
	}
	if override.Default != 0 {
		base.Default = override.Default
	}
	return base
}

// Validate checks that every schema feature has a usable control.
func (c *FormConfig) Validate() error {
	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if seen[f.Name] {
			return fmt.Errorf("duplicate form field %q", f.Name)
		}
		seen[f.Name] = true

		switch {
		case !schema.IsNumeric(f.Name):
			if len(f.Options) == 0 {
				return fmt.Errorf("form field %q has no options", f.Name)
			}
		case f.IsChoice():
			if !containsInt(f.Choices, f.Default) {
				return fmt.Errorf("form field %q default %d is not a choice", f.Name, f.Default)
			}
		default:
			if f.Min > f.Max || f.Default < f.Min || f.Default > f.Max {
				return fmt.Errorf("form field %q has invalid range [%d, %d] default %d", f.Name, f.Min, f.Max, f.Default)
			}
		}
	}

	for _, name := range schema.Order() {
		if !seen[name] {
			return fmt.Errorf("missing form field %q", name)
		}
	}
	return nil
}

// Field finds a field by its feature name.
func (c *FormConfig) Field(name string) *FieldConfig {
	if c == nil {
		return nil
	}
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i]
		}
	}
	return nil
}

// Vocabularies returns the offered labels of every categorical field.
func (c *FormConfig) Vocabularies() map[string][]string {
	out := make(map[string][]string)
	for _, f := range c.Fields {
		if !schema.IsNumeric(f.Name) {
			out[f.Name] = f.Options
		}
	}
	return out
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
