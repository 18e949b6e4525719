// Package valuation turns a free-text material description into a
// weight/value estimate. The estimate is a deterministic placeholder: the
// same description always yields the same numbers, so the implied price per
// kilogram survives until a collector records the measured weight.
package valuation

import (
	"hash/fnv"
	"math"
	"strings"
)

const (
	// PricePerKg is the flat buy-back rate in centavos per kilogram.
	PricePerKg = 280

	minWeightKg  = 1.5
	weightSteps  = 5000 // thousandths of a kg across the [1.5, 6.5) range
	fallbackKg   = 2.5
	fallbackNote = "default estimate applied"
)

type Estimate struct {
	Weight        float64 `json:"weight"` // kg
	Value         int64   `json:"value"`  // centavos
	Justification string  `json:"justification"`
}

// EstimateWeightAndValue never fails; a blank description falls back to a
// fixed default estimate.
func EstimateWeightAndValue(description string) Estimate {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return Estimate{
			Weight:        fallbackKg,
			Value:         ValueFor(fallbackKg),
			Justification: fallbackNote,
		}
	}

	h := fnv.New32a()
	h.Write([]byte(desc))
	weight := minWeightKg + float64(h.Sum32()%weightSteps)/1000.0

	return Estimate{
		Weight:        weight,
		Value:         ValueFor(weight),
		Justification: "estimated from material description",
	}
}

// ValueFor prices a weight at the flat buy-back rate, rounded to the centavo.
func ValueFor(weightKg float64) int64 {
	return int64(math.Round(weightKg * PricePerKg))
}
