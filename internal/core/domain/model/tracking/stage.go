package tracking

import (
	"fmt"

	"expressia/internal/pkg/errs"
)

// Stage identifies one milestone of the shipment flow. Stages have a fixed
// total order; the deriver and the validator key off the Stage value rather
// than matching display labels.
//
// Canonical flow:
//
//	Confirmed -> PickedUp -> InTransit -> LocalDelivery -> Delivered
type Stage int

const (
	// StageUnknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	StageUnknown Stage = iota

	// StageConfirmed is the initial stage: the order has been confirmed.
	StageConfirmed

	// StagePickedUp indicates the carrier has collected the parcel at origin.
	StagePickedUp

	// StageInTransit indicates the parcel is traveling toward its destination.
	StageInTransit

	// StageLocalDelivery indicates the parcel entered local distribution
	// at the destination.
	StageLocalDelivery

	// StageDelivered is the terminal stage: the parcel reached the recipient.
	StageDelivered
)

// getStageLabels returns the display label of every stage. The labels are
// stable identities persisted with each milestone and must not be renamed.
func getStageLabels() map[Stage]string {
	return map[Stage]string{
		StageConfirmed:     "Pedido Confirmado",
		StagePickedUp:      "Recogido por Transportista",
		StageInTransit:     "En Tránsito",
		StageLocalDelivery: "En Distribución Local",
		StageDelivered:     "Entregado",
	}
}

// CanonicalStages returns the five stages in their canonical order.
func CanonicalStages() []Stage {
	return []Stage{StageConfirmed, StagePickedUp, StageInTransit, StageLocalDelivery, StageDelivered}
}

// StageFromLabel resolves a persisted display label back to its Stage.
// Returns an error for labels outside the canonical flow.
func StageFromLabel(label string) (Stage, error) {
	for stage, l := range getStageLabels() {
		if l == label {
			return stage, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause(
		"stage",
		fmt.Errorf("%q is not a canonical stage label", label),
	)
}

// Label returns the human-readable stage label shown in the timeline.
// Returns an empty string for invalid stages.
func (s Stage) Label() string {
	return getStageLabels()[s]
}

// String implements fmt.Stringer using the stage label.
func (s Stage) String() string {
	if label, ok := getStageLabels()[s]; ok {
		return label
	}
	return "Unknown"
}

// Validate checks that the Stage belongs to the canonical flow.
func (s Stage) Validate() error {
	if _, ok := getStageLabels()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("%d is not a valid stage", s),
		)
	}
	return nil
}
