package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	VitalBloodPressure    = "bloodPressure"
	VitalHeartRate        = "heartRate"
	VitalTemperature      = "temperature"
	VitalOxygenSaturation = "oxygenSaturation"
	VitalWeight           = "weight"
	VitalBloodGlucose     = "bloodGlucose"
)

type VitalSign struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID string             `json:"user_id" bson:"user_id"`
	Type   string             `json:"type" bson:"type"`
	// Value holds single-value vitals; blood pressure uses the split pair.
	Value     *float64  `json:"value,omitempty" bson:"value,omitempty"`
	Systolic  *float64  `json:"systolic,omitempty" bson:"systolic,omitempty"`
	Diastolic *float64  `json:"diastolic,omitempty" bson:"diastolic,omitempty"`
	Unit      string    `json:"unit" bson:"unit"`
	Date      time.Time `json:"date" bson:"date"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

var vitalTypes = map[string]bool{
	VitalBloodPressure:    true,
	VitalHeartRate:        true,
	VitalTemperature:      true,
	VitalOxygenSaturation: true,
	VitalWeight:           true,
	VitalBloodGlucose:     true,
}

func (v *VitalSign) Validate() error {
	if !vitalTypes[v.Type] {
		return fmt.Errorf("unknown vital sign type %q", v.Type)
	}
	if v.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	if v.Type == VitalBloodPressure {
		if v.Systolic == nil || v.Diastolic == nil {
			return fmt.Errorf("blood pressure requires systolic and diastolic values")
		}
		return nil
	}
	if v.Value == nil {
		return fmt.Errorf("%s requires a single value", v.Type)
	}
	return nil
}
