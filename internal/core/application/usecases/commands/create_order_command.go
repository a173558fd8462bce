package commands

import (
	"errors"

	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
	"expressia/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOriginIsRequired      = errors.New("origin is required")
	ErrDestinationIsRequired = errors.New("destination is required")
	ErrWeightIsInvalid       = errors.New("weight must be greater than 0")
)

// CreateOrderCommand represents a request from the order-intake flow to
// register a new shipment. The order is created pending with no timeline and
// a deterministic cost estimate.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "Guatemala", "Costa Rica", 2.5,
//	    order.Dimensions{Length: 30, Width: 20, Height: 10},
//	    order.ModalityStandard, "Documentos", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	origin      string
	destination string
	weight      float64
	dimensions  order.Dimensions
	modality    order.Modality
	description string
	owner       *order.Owner

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new shipment.
// Validates that the order ID is valid, the route is complete, the weight is
// positive, and the modality is a known service tier. The owner is optional;
// unowned orders are only visible in admin contexts.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	origin string,
	destination string,
	weight float64,
	dimensions order.Dimensions,
	modality order.Modality,
	description string,
	owner *order.Owner,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		dimensions:  dimensions,
		description: description,
		owner:       owner,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRoute(origin, destination),
		cmd.setWeight(weight),
		cmd.setModality(modality),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Origin returns the route's origin country.
func (c CreateOrderCommand) Origin() string {
	return c.origin
}

// Destination returns the route's destination country.
func (c CreateOrderCommand) Destination() string {
	return c.destination
}

// Weight returns the parcel weight in kilograms.
func (c CreateOrderCommand) Weight() float64 {
	return c.weight
}

// Dimensions returns the parcel's edge lengths in centimeters.
func (c CreateOrderCommand) Dimensions() order.Dimensions {
	return c.dimensions
}

// Modality returns the requested service tier.
func (c CreateOrderCommand) Modality() order.Modality {
	return c.modality
}

// Description returns the free-text parcel description.
func (c CreateOrderCommand) Description() string {
	return c.description
}

// Owner returns the owning identity, or nil for unowned orders.
func (c CreateOrderCommand) Owner() *order.Owner {
	return c.owner
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRoute(origin, destination string) error {
	if origin == "" {
		return ErrOriginIsRequired
	}
	if destination == "" {
		return ErrDestinationIsRequired
	}
	c.origin = origin
	c.destination = destination
	return nil
}

func (c *CreateOrderCommand) setWeight(weight float64) error {
	if weight <= 0 {
		return ErrWeightIsInvalid
	}
	c.weight = weight
	return nil
}

func (c *CreateOrderCommand) setModality(modality order.Modality) error {
	if err := modality.Validate(); err != nil {
		return err
	}
	c.modality = modality
	return nil
}
