package analysis

import (
	"fmt"
	"strings"

	"github.com/quickmed/quickmed/internal/platform/apperr"
)

// Section identifies one of the four symptom-analysis prompts.
type Section int

const (
	SectionCause Section = iota
	SectionTreatment
	SectionMedication
	SectionHomeRemedies
)

// Sections lists every symptom section in aggregate-dispatch order.
var Sections = []Section{SectionCause, SectionTreatment, SectionMedication, SectionHomeRemedies}

func (s Section) String() string {
	switch s {
	case SectionCause:
		return "cause"
	case SectionTreatment:
		return "treatment"
	case SectionMedication:
		return "medication"
	case SectionHomeRemedies:
		return "home-remedies"
	default:
		return "unknown"
	}
}

// The templates pin the response shape so the client can split on "|" and
// numbered lines without post-processing.

const causeTemplate = `Analyze these symptoms and respond ONLY with cause and brief explanation in this exact format: [Cause] | [Brief Explanation]. No other text.
Symptoms: %s`

const treatmentTemplate = `Based on these symptoms, list ONLY treatment steps. No introductions or other text:
Symptoms: %s

1.
2.
3.`

const medicationTemplate = `List medications for these symptoms. Respond ONLY with medicines and dosages in this format:
Symptoms: %s

- [Medicine Name] | [Dosage] | [Duration]
- [Medicine Name] | [Dosage] | [Duration]

No other text.`

const homeRemediesTemplate = `Provide home remedies for these symptoms. List ONLY remedies in this format:
Symptoms: %s

1. [Remedy] | [Instructions]
2. [Remedy] | [Instructions]

No other text.`

// diagnosticPrompt is the fixed instruction for uploaded-report analysis.
const diagnosticPrompt = `Analyze this medical report and provide findings in this format:
KEY FINDINGS:
- List main observations

DIAGNOSIS:
- Primary diagnosis
- Secondary conditions

RECOMMENDATIONS:
- Treatment plan
- Follow-up steps`

// Demographics personalizes a prompt. All fields are optional.
type Demographics struct {
	Age        *int     `json:"age"`
	Gender     *string  `json:"gender"`
	HeightCm   *float64 `json:"height"`
	WeightKg   *float64 `json:"weight"`
	BloodGroup *string  `json:"bloodGroup"`
	Allergies  []string `json:"allergies"`
	Conditions []string `json:"conditions"`
}

func (d *Demographics) lines() []string {
	if d == nil {
		return nil
	}
	var out []string
	if d.Age != nil {
		out = append(out, fmt.Sprintf("age: %d", *d.Age))
	}
	if d.Gender != nil && *d.Gender != "" {
		out = append(out, "gender: "+*d.Gender)
	}
	if d.HeightCm != nil {
		out = append(out, fmt.Sprintf("height: %g cm", *d.HeightCm))
	}
	if d.WeightKg != nil {
		out = append(out, fmt.Sprintf("weight: %g kg", *d.WeightKg))
	}
	if d.BloodGroup != nil && *d.BloodGroup != "" {
		out = append(out, "blood group: "+*d.BloodGroup)
	}
	if len(d.Allergies) > 0 {
		out = append(out, "allergies: "+strings.Join(d.Allergies, ", "))
	}
	if len(d.Conditions) > 0 {
		out = append(out, "existing conditions: "+strings.Join(d.Conditions, ", "))
	}
	return out
}

// BuildPrompt renders the section template over the symptom list.
func BuildPrompt(section Section, symptoms []string) (string, error) {
	joined, err := joinSymptoms(symptoms)
	if err != nil {
		return "", err
	}

	switch section {
	case SectionCause:
		return fmt.Sprintf(causeTemplate, joined), nil
	case SectionTreatment:
		return fmt.Sprintf(treatmentTemplate, joined), nil
	case SectionMedication:
		return fmt.Sprintf(medicationTemplate, joined), nil
	case SectionHomeRemedies:
		return fmt.Sprintf(homeRemediesTemplate, joined), nil
	default:
		return "", apperr.Newf(apperr.KindValidation, "unknown analysis section %d", section)
	}
}

// BuildContext renders the secondary context string: the symptom list plus
// any demographic lines.
func BuildContext(symptoms []string, demo *Demographics) (string, error) {
	joined, err := joinSymptoms(symptoms)
	if err != nil {
		return "", err
	}
	parts := append([]string{joined}, demo.lines()...)
	return strings.Join(parts, "\n"), nil
}

func joinSymptoms(symptoms []string) (string, error) {
	kept := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		return "", apperr.New(apperr.KindValidation, "at least one symptom is required")
	}
	return strings.Join(kept, ", "), nil
}
