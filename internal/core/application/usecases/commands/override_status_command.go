package commands

import (
	"errors"

	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
	"expressia/internal/pkg/guard"
)

var ErrOverrideStatusCommandIsNotConstructed = errors.New(
	"OverrideStatusCommand must be created via NewOverrideStatusCommand constructor",
)

// OverrideStatusCommand represents a direct coarse-status change from the
// admin view, bypassing the timeline. The timeline is left untouched, so the
// stored status may diverge from the timeline-derivable value until the next
// timeline commit; that divergence is accepted, documented behavior.
type OverrideStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewOverrideStatusCommand creates a command to set an order's coarse status
// directly. Validates the order ID and the target status.
func NewOverrideStatusCommand(orderID kernel.UUID, status order.Status) (OverrideStatusCommand, error) {
	cmd := OverrideStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return OverrideStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OverrideStatusCommand) Validate() error {
	return c.guard.Validate(ErrOverrideStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c OverrideStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the new coarse status.
func (c OverrideStatusCommand) Status() order.Status {
	return c.status
}

func (c *OverrideStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *OverrideStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
