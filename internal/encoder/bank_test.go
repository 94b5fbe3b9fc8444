package encoder

import (
	"errors"
	"sync"
	"testing"
)

func fittedEncoders(t *testing.T) []*Encoder {
	t.Helper()

	vocab := map[string][]string{
		"country":                {"Kenya", "Rwanda", "Tanzania", "Uganda"},
		"location_type":          {"Rural", "Urban"},
		"cellphone_access":       {"No", "Yes"},
		"gender_of_respondent":   {"Female", "Male"},
		"relationship_with_head": {"Child", "Head of Household", "Other non-relatives", "Other relative", "Parent", "Spouse"},
		"education_level":        {"No formal education", "Other/Dont know/RTA", "Primary education", "Secondary education", "Tertiary education", "Vocational/Specialised training"},
		"job_type":               {"Dont Know/Refuse to answer", "Farming and Fishing", "Formally employed Government", "Formally employed Private", "Government Dependent", "Informally employed", "No Income", "Other Income", "Remittance Dependent", "Self employed"},
		"marital_status":         {"Divorced/Seperated", "Dont know", "Married/Living together", "Single/Never Married", "Widowed"},
	}

	var encoders []*Encoder
	for feature, classes := range vocab {
		enc, err := New(feature, classes)
		if err != nil {
			t.Fatalf("New(%s) error: %v", feature, err)
		}
		encoders = append(encoders, enc)
	}
	return encoders
}

func TestNewBank(t *testing.T) {
	bank, err := NewBank(fittedEncoders(t)...)
	if err != nil {
		t.Fatalf("NewBank() error: %v", err)
	}
	if got := len(bank.Features()); got != 8 {
		t.Errorf("Features() has %d entries, want 8", got)
	}
}

func TestNewBank_Rejects(t *testing.T) {
	year, _ := New("year", []string{"2016", "2017"})
	extra, _ := New("income", []string{"low", "high"})

	tests := []struct {
		name     string
		encoders func([]*Encoder) []*Encoder
	}{
		{"missing encoder", func(e []*Encoder) []*Encoder { return e[1:] }},
		{"duplicate encoder", func(e []*Encoder) []*Encoder { return append(e, e[0]) }},
		{"numeric feature", func(e []*Encoder) []*Encoder { return append(e, year) }},
		{"unknown feature", func(e []*Encoder) []*Encoder { return append(e, extra) }},
		{"nil encoder", func(e []*Encoder) []*Encoder { return append(e, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBank(tt.encoders(fittedEncoders(t))...); err == nil {
				t.Error("NewBank() error = nil, want error")
			}
		})
	}
}

func TestBank_Encode(t *testing.T) {
	bank, _ := NewBank(fittedEncoders(t)...)

	tests := []struct {
		name     string
		feature  string
		label    string
		expected int
	}{
		{"country", "country", "Kenya", 0},
		{"location", "location_type", "Urban", 1},
		{"relationship", "relationship_with_head", "Head of Household", 1},
		{"education", "education_level", "Secondary education", 3},
		{"job", "job_type", "Self employed", 9},
		{"marital", "marital_status", "Single/Never Married", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bank.Encode(tt.feature, tt.label)
			if err != nil {
				t.Fatalf("Encode(%s, %q) error: %v", tt.feature, tt.label, err)
			}
			if got != tt.expected {
				t.Errorf("Encode(%s, %q) = %d, want %d", tt.feature, tt.label, got, tt.expected)
			}
		})
	}
}

func TestBank_EncodeErrors(t *testing.T) {
	bank, _ := NewBank(fittedEncoders(t)...)

	_, err := bank.Encode("country", "Ghana")
	var unknownCategory *UnknownCategoryError
	if !errors.As(err, &unknownCategory) {
		t.Errorf("Encode(country, Ghana) error = %v, want UnknownCategoryError", err)
	}

	_, err = bank.Encode("year", "2017")
	var unknownFeature *UnknownFeatureError
	if !errors.As(err, &unknownFeature) {
		t.Errorf("Encode(year, 2017) error = %v, want UnknownFeatureError", err)
	}
}

func TestBank_ConcurrentReads(t *testing.T) {
	bank, _ := NewBank(fittedEncoders(t)...)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if code, err := bank.Encode("country", "Uganda"); err != nil || code != 3 {
					t.Errorf("Encode(country, Uganda) = %d, %v", code, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
