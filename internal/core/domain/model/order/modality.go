package order

import (
	"fmt"

	"expressia/internal/pkg/errs"
)

// Modality is the service tier of a shipment. The tier drives the cost
// multiplier applied by the estimate formula.
type Modality int

const (
	// ModalityUnknown represents an invalid or undefined modality.
	ModalityUnknown Modality = iota

	// ModalityExpress is the 24-48h tier.
	ModalityExpress

	// ModalityStandard is the 3-5 day tier.
	ModalityStandard

	// ModalityEconomy is the 5-7 day tier.
	ModalityEconomy
)

func getModalityStrings() map[Modality]string {
	return map[Modality]string{
		ModalityExpress:  "express",
		ModalityStandard: "standard",
		ModalityEconomy:  "economy",
	}
}

func getModalityMultipliers() map[Modality]float64 {
	return map[Modality]float64{
		ModalityExpress:  2.5,
		ModalityStandard: 1.5,
		ModalityEconomy:  1.0,
	}
}

// ModalityFromString resolves a persisted wire string back to its Modality.
func ModalityFromString(s string) (Modality, error) {
	for m, str := range getModalityStrings() {
		if str == s {
			return m, nil
		}
	}
	return ModalityUnknown, errs.NewValueIsInvalidErrorWithCause(
		"modality",
		fmt.Errorf("%q is not a valid modality", s),
	)
}

// String returns the wire representation of the modality.
func (m Modality) String() string {
	if str, ok := getModalityStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// Multiplier returns the cost multiplier of the service tier.
// Unknown modalities fall back to the standard multiplier.
func (m Modality) Multiplier() float64 {
	if mult, ok := getModalityMultipliers()[m]; ok {
		return mult
	}
	return getModalityMultipliers()[ModalityStandard]
}

// Validate checks if the Modality value is valid.
func (m Modality) Validate() error {
	if _, ok := getModalityStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"modality",
			fmt.Errorf("%d is not a valid modality", m),
		)
	}
	return nil
}
