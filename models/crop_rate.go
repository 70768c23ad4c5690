package models

import (
	"encoding/json"
	"strconv"
)

// DefaultRateUnit is used when a rate carries no unit
const DefaultRateUnit = "quintal"

// CropRate is one entry of the crop:rates snapshot
type CropRate struct {
	Rate      float64 `json:"rate"`
	Unit      string  `json:"unit,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// UnitOrDefault returns the unit, defaulting to quintal
func (r CropRate) UnitOrDefault() string {
	if r.Unit == "" {
		return DefaultRateUnit
	}
	return r.Unit
}

// FormatRate renders the rate without trailing zeros
func (r CropRate) FormatRate() string {
	return strconv.FormatFloat(r.Rate, 'f', -1, 64)
}

// RateSnapshot maps crop type to its current rate
type RateSnapshot map[string]CropRate

// UnmarshalJSON keeps only object members. The stored document also carries a
// top-level updatedAt string which is not a crop.
func (s *RateSnapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(RateSnapshot, len(raw))
	for cropType, value := range raw {
		if len(value) == 0 || value[0] != '{' {
			continue
		}
		var rate CropRate
		if err := json.Unmarshal(value, &rate); err != nil {
			// rate may be stored as a string by older dashboards
			var loose struct {
				Rate      json.Number `json:"rate"`
				Unit      string      `json:"unit"`
				UpdatedAt string      `json:"updatedAt"`
			}
			if err := json.Unmarshal(value, &loose); err != nil {
				continue
			}
			f, err := loose.Rate.Float64()
			if err != nil {
				continue
			}
			rate = CropRate{Rate: f, Unit: loose.Unit, UpdatedAt: loose.UpdatedAt}
		}
		out[cropType] = rate
	}
	*s = out
	return nil
}
