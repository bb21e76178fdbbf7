package prescription

import (
	"regexp"
	"strings"
)

// Line-level signals for text likely to name a medicine. This filter is
// deliberately lossy: a missed drug name or a retained stray word is
// acceptable, blocking the pipeline is not.
var (
	dosageUnitRe  = regexp.MustCompile(`(?i)\d+\s*(mg|mcg|g|ml|iu|tab|tabs|cap|caps|drops?)\b`)
	alphaRunRe    = regexp.MustCompile(`[A-Za-z]{3,}`)
	fragmentRe    = regexp.MustCompile(`(?i)para|mol|met|cillin|tablet|cap|syrup`)
	numericOnlyRe = regexp.MustCompile(`^\d+$`)
	punctuationRe = regexp.MustCompile(`[^a-zA-Z0-9\- ]`)
)

// ExtractCandidates splits raw OCR text into lines and keeps those that
// look like medicine entries, stripped of punctuation outside the
// letter/digit/hyphen/space safelist. Order follows the source text.
// An empty result is valid output.
func ExtractCandidates(text string) []string {
	var candidates []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || numericOnlyRe.MatchString(trimmed) {
			continue
		}
		if !dosageUnitRe.MatchString(trimmed) &&
			!alphaRunRe.MatchString(trimmed) &&
			!fragmentRe.MatchString(trimmed) {
			continue
		}
		cleaned := strings.TrimSpace(punctuationRe.ReplaceAllString(trimmed, ""))
		if cleaned == "" {
			continue
		}
		candidates = append(candidates, cleaned)
	}
	return candidates
}
