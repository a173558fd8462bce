package services

import (
	"math"

	"expressia/internal/core/domain/model/order"
)

const (
	// unitRate is the price per kilogram of parcel weight.
	unitRate = 5.0

	// volumeRate is the price per cubic meter of parcel volume.
	volumeRate = 100.0

	// crossBorderFee applies when origin and destination differ.
	crossBorderFee = 15.0

	// flatFee applies to every shipment.
	flatFee = 5.0
)

// CostCalculator computes the deterministic shipping cost estimate shown at
// order intake. The result is an estimate, not billing: it flows into the
// order record as a plain monetary amount.
type CostCalculator struct{}

// NewCostCalculator creates a new CostCalculator instance.
func NewCostCalculator() CostCalculator {
	return CostCalculator{}
}

// Estimate computes
//
//	max(weight x unit_rate, volume x volume_rate) x modality_multiplier
//	  + cross_border_fee (only if origin != destination) + flat_fee
//
// rounded to cents. Weight is in kilograms, dimensions in centimeters.
func (c CostCalculator) Estimate(
	weight float64,
	dimensions order.Dimensions,
	modality order.Modality,
	origin string,
	destination string,
) float64 {
	base := math.Max(weight*unitRate, dimensions.Volume()*volumeRate) * modality.Multiplier()

	total := base + flatFee
	if origin != "" && destination != "" && origin != destination {
		total += crossBorderFee
	}

	return math.Round(total*100) / 100
}
