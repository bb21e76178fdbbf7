package prescription

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitalsync/vitalsync/internal/terminology"
)

func TestNormalizeAll(t *testing.T) {
	t.Run("applies high-confidence corrections", func(t *testing.T) {
		lookup := &fakeLookup{results: map[string]terminology.Result{
			"Amoxicilin 250mg": {Input: "Amoxicilin 250mg", Name: "Amoxicillin", Score: 85},
		}}
		n := NewNormalizer(lookup, 2)

		results := n.NormalizeAll(context.Background(), []string{"Amoxicilin 250mg"})

		assert.Len(t, results, 1)
		assert.True(t, results[0].Corrected())
		assert.Equal(t, "Amoxicillin", results[0].Name)
	})

	t.Run("lookup error degrades to unchanged input", func(t *testing.T) {
		lookup := &fakeLookup{errs: map[string]error{
			"Ibuprofen 200mg": fmt.Errorf("service down"),
		}}
		n := NewNormalizer(lookup, 2)

		results := n.NormalizeAll(context.Background(), []string{"Ibuprofen 200mg"})

		assert.Len(t, results, 1)
		assert.False(t, results[0].Corrected())
		assert.Equal(t, "Ibuprofen 200mg", results[0].Name)
	})

	t.Run("results keep input order under concurrency", func(t *testing.T) {
		candidates := make([]string, 20)
		for i := range candidates {
			candidates[i] = fmt.Sprintf("Drug%02d 10mg", i)
		}
		n := NewNormalizer(&fakeLookup{}, 4)

		results := n.NormalizeAll(context.Background(), candidates)

		for i, r := range results {
			assert.Equal(t, candidates[i], r.Input)
		}
	})
}

func TestRejoin(t *testing.T) {
	results := []terminology.Result{
		{Input: "Amoxicilin 250mg", Name: "Amoxicillin", Score: 85},
		{Input: "Take twice daily", Name: "Take twice daily"},
	}

	assert.Equal(t, "Amoxicillin\nTake twice daily", Rejoin(results))
}

func TestResultCorrected(t *testing.T) {
	assert.False(t, terminology.Result{Input: "aspirin", Name: "Aspirin", Score: 90}.Corrected(),
		"case-only difference is not a correction")
	assert.False(t, terminology.Result{Input: "aspirin", Name: "aspirin"}.Corrected())
	assert.True(t, terminology.Result{Input: "asprin", Name: "Aspirin", Score: 90}.Corrected())
}
