package prescription

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelOutput = `- Medicine Name: Amoxicillin
  Dosage: 250 mg
  Quantity: 1 tab
  Frequency: TID
  Purpose: bacterial infections
- Medicine Name: Paracetamol
  Dosage: 500 mg
  Quantity: 2 tabs
  Frequency: BID
  Purpose: fever`

func TestStructure(t *testing.T) {
	t.Run("parses the bullet contract", func(t *testing.T) {
		gw := &fakeGateway{reply: modelOutput}
		s := NewStructurer(gw, "test-model")

		res := s.Structure(context.Background(), "Amoxicillin\nParacetamol 500mg")

		require.True(t, res.Structured)
		require.Len(t, res.Entries, 2)
		assert.Equal(t, "Amoxicillin", res.Entries[0].Name)
		assert.Equal(t, "250 mg", res.Entries[0].Dosage)
		assert.Equal(t, "TID", res.Entries[0].Frequency)
		assert.Equal(t, []string{
			"Amoxicillin 250 mg 1 tab TID for bacterial infections",
			"Paracetamol 500 mg 2 tabs BID for fever",
		}, res.Lines())
	})

	t.Run("provider failure degrades to the input text", func(t *testing.T) {
		gw := &fakeGateway{err: fmt.Errorf("rate limited")}
		s := NewStructurer(gw, "test-model")

		res := s.Structure(context.Background(), "Paracetamol 500mg\nTake twice daily")

		assert.False(t, res.Structured)
		assert.Equal(t, []string{"Paracetamol 500mg", "Take twice daily"}, res.Lines())
	})

	t.Run("unparseable output degrades to the model text", func(t *testing.T) {
		gw := &fakeGateway{reply: "I could not read this prescription."}
		s := NewStructurer(gw, "test-model")

		res := s.Structure(context.Background(), "scribbles")

		assert.False(t, res.Structured)
		assert.Equal(t, []string{"I could not read this prescription."}, res.Lines())
	})

	t.Run("prompt embeds the prescription text", func(t *testing.T) {
		gw := &fakeGateway{reply: modelOutput}
		s := NewStructurer(gw, "test-model")

		s.Structure(context.Background(), "Metformin 500mg")

		require.Len(t, gw.requests, 1)
		assert.Contains(t, gw.requests[0].Messages[1].Content, "Metformin 500mg")
	})
}

func TestParseEntriesSkipsNameless(t *testing.T) {
	entries := parseEntries("Dosage: 10 mg\n- Medicine Name: Cetirizine\n  Dosage: 10 mg")

	require.Len(t, entries, 1)
	assert.Equal(t, "Cetirizine", entries[0].Name)
}
