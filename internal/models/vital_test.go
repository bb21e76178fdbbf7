package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestVitalSignValidate(t *testing.T) {
	t.Run("blood pressure needs both readings", func(t *testing.T) {
		v := VitalSign{Type: VitalBloodPressure, Unit: "mmHg", Systolic: f(120)}
		assert.Error(t, v.Validate())

		v.Diastolic = f(80)
		assert.NoError(t, v.Validate())
	})

	t.Run("single-value vitals need a value", func(t *testing.T) {
		v := VitalSign{Type: VitalHeartRate, Unit: "bpm"}
		assert.Error(t, v.Validate())

		v.Value = f(72)
		assert.NoError(t, v.Validate())
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		v := VitalSign{Type: "mood", Unit: "n/a", Value: f(5)}
		assert.Error(t, v.Validate())
	})

	t.Run("unit is required", func(t *testing.T) {
		v := VitalSign{Type: VitalWeight, Value: f(70)}
		assert.Error(t, v.Validate())
	})
}
