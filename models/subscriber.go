package models

import "strings"

// CropHolding is one crop a farmer currently grows
type CropHolding struct {
	ID          string  `json:"id,omitempty"`
	CropType    string  `json:"cropType"`
	Quantity    float64 `json:"quantity,omitempty"`
	PlantedDate string  `json:"plantedDate,omitempty"`
	GrowthDays  int     `json:"growthDays,omitempty"`
	LastUpdated string  `json:"lastUpdated,omitempty"`
}

// Subscriber is the farmer record stored under farmer:survey:{surveyNumber}.
// Older records carry a single Crop instead of the Crops list.
type Subscriber struct {
	ID           string        `json:"id,omitempty"`
	SurveyNumber string        `json:"surveyNumber"`
	Name         string        `json:"name,omitempty"`
	Phone        string        `json:"phone"`
	Village      string        `json:"village,omitempty"`
	Crops        []CropHolding `json:"crops,omitempty"`
	Crop         *CropHolding  `json:"crop,omitempty"`
	CreatedAt    string        `json:"createdAt,omitempty"`
	UpdatedAt    string        `json:"updatedAt,omitempty"`
}

// PhoneIndex is the value stored under farmer:phone:{phone}
type PhoneIndex struct {
	SurveyNumber string `json:"surveyNumber"`
}

// Holdings returns the crops list, falling back to the legacy single crop
func (s *Subscriber) Holdings() []CropHolding {
	if s == nil {
		return nil
	}
	if len(s.Crops) > 0 {
		return s.Crops
	}
	if s.Crop != nil {
		return []CropHolding{*s.Crop}
	}
	return nil
}

// ActiveCropTypes returns the distinct crop types of the holdings in order
func (s *Subscriber) ActiveCropTypes() []string {
	seen := make(map[string]struct{})
	var types []string
	for _, h := range s.Holdings() {
		t := strings.TrimSpace(h.CropType)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	return types
}

// DisplayName returns the farmer's name or a generic greeting target
func (s *Subscriber) DisplayName() string {
	if s == nil || strings.TrimSpace(s.Name) == "" {
		return "Farmer"
	}
	return s.Name
}
