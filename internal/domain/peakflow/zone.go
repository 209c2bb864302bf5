package peakflow

import (
	"fmt"

	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
)

// Zone is the traffic-light band a peak-flow reading falls into relative
// to the patient's personal best.
type Zone string

const (
	ZoneGreen  Zone = "green"
	ZoneYellow Zone = "yellow"
	ZoneRed    Zone = "red"
)

// Classification carries the zone verdict together with the ratio that
// produced it, so callers can render "RED ZONE (42%)" style messages.
type Classification struct {
	Zone  Zone    `json:"zone"`
	Label string  `json:"label"`
	Ratio float64 `json:"ratio"`
}

// Classify maps a reading against a personal best. Ratio is the reading
// as a percentage of the personal best; bands are lower-inclusive:
// ratio >= 80 is green, 50 <= ratio < 80 is yellow, ratio < 50 is red.
func Classify(reading, personalBest float64) (Classification, error) {
	if personalBest <= 0 {
		return Classification{}, fmt.Errorf("personal best must be positive: %w", apperror.ErrValidation)
	}
	if reading <= 0 {
		return Classification{}, fmt.Errorf("reading must be positive: %w", apperror.ErrValidation)
	}

	ratio := reading / personalBest * 100

	switch {
	case ratio >= 80:
		return Classification{Zone: ZoneGreen, Label: "Stable", Ratio: ratio}, nil
	case ratio >= 50:
		return Classification{Zone: ZoneYellow, Label: "Caution", Ratio: ratio}, nil
	default:
		return Classification{Zone: ZoneRed, Label: "Emergency", Ratio: ratio}, nil
	}
}
