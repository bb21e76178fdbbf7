package prescription

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCandidates(t *testing.T) {
	t.Run("keeps medicine-like lines and drops numeric noise", func(t *testing.T) {
		text := "Paracetamol 500mg\n12345\nTake twice daily"

		got := ExtractCandidates(text)

		assert.Equal(t, []string{"Paracetamol 500mg", "Take twice daily"}, got)
	})

	t.Run("strips punctuation outside the safelist", func(t *testing.T) {
		got := ExtractCandidates("Amoxicillin, 250mg! (oral)")

		assert.Equal(t, []string{"Amoxicillin 250mg oral"}, got)
	})

	t.Run("keeps hyphens and digits", func(t *testing.T) {
		got := ExtractCandidates("Co-amoxiclav 625mg")

		assert.Equal(t, []string{"Co-amoxiclav 625mg"}, got)
	})

	t.Run("empty input yields no candidates", func(t *testing.T) {
		assert.Empty(t, ExtractCandidates(""))
		assert.Empty(t, ExtractCandidates("\n\n  \n"))
	})

	t.Run("pure numeric lines are dropped", func(t *testing.T) {
		assert.Empty(t, ExtractCandidates("12345\n99"))
	})

	t.Run("order follows the source text", func(t *testing.T) {
		text := "Metformin 500mg\nIbuprofen 200mg\nCetirizine 10mg"

		got := ExtractCandidates(text)

		assert.Equal(t, []string{"Metformin 500mg", "Ibuprofen 200mg", "Cetirizine 10mg"}, got)
	})
}
