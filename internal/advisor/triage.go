package advisor

import "strings"

// TriageResult marks a symptom report that should bypass the advisory flow.
type TriageResult struct {
	Urgent  bool     `json:"urgent"`
	Flags   []string `json:"flags,omitempty"`
	Warning string   `json:"warning,omitempty"`
}

const urgentWarning = "Some of these symptoms can indicate a medical emergency. " +
	"Please seek immediate medical attention or call your local emergency number."

// Triage screens symptoms for red-flag phrases using keyword heuristics.
// It never blocks the request; an urgent match only prepends a warning to
// whatever the model answers.
type Triage struct {
	redFlags map[string][]string
}

func NewTriage() *Triage {
	return &Triage{
		redFlags: map[string][]string{
			"cardiac": {
				"chest pain", "chest tightness", "pain radiating",
				"crushing pain",
			},
			"respiratory": {
				"difficulty breathing", "can't breathe", "cannot breathe",
				"shortness of breath", "lips turning blue",
			},
			"neurological": {
				"sudden numbness", "slurred speech", "face drooping",
				"loss of consciousness", "worst headache",
			},
			"bleeding": {
				"coughing blood", "vomiting blood", "heavy bleeding",
			},
		},
	}
}

func (t *Triage) Check(symptoms []string) TriageResult {
	lower := strings.ToLower(strings.Join(symptoms, " "))
	var flags []string

	for category, patterns := range t.redFlags {
		for _, p := range patterns {
			if strings.Contains(lower, p) {
				flags = append(flags, category)
				break
			}
		}
	}

	if len(flags) == 0 {
		return TriageResult{}
	}
	return TriageResult{Urgent: true, Flags: flags, Warning: urgentWarning}
}
